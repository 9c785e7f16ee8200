package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/zalepa/ridership/export"
	"github.com/zalepa/ridership/ridership"
)

// MinFilesWarning is shown when a batch has too few files for a meaningful
// comparison. It is advisory; a single file still ingests.
const MinFilesWarning = "2개 이상의 CSV 파일을 업로드해주세요."

const multipartMemory = 32 << 20

type errorResponse struct {
	Error string          `json:"error"`
	Files []fileErrorJSON `json:"files,omitempty"`
}

type fileErrorJSON struct {
	File    string `json:"file"`
	Message string `json:"message"`
}

type batchResponse struct {
	ID      string          `json:"id"`
	Years   []string        `json:"years"`
	Lines   []string        `json:"lines"`
	Errors  []fileErrorJSON `json:"errors"`
	Warning string          `json:"warning,omitempty"`
}

type comparisonResponse struct {
	Line      string                    `json:"line"`
	Station   string                    `json:"station"`
	Title     string                    `json:"title"`
	Rows      ridership.ComparisonTable `json:"rows"`
	Years     []string                  `json:"years"`
	Boarding  []int64                   `json:"boarding"`
	Alighting []int64                   `json:"alighting"`
}

// selection is the (line, station) pair a comparison is computed for.
type selection struct {
	Line    string `validate:"required"`
	Station string `validate:"required"`
}

func fileErrors(failed []ridership.FileError) []fileErrorJSON {
	out := make([]fileErrorJSON, len(failed))
	for i, fe := range failed {
		out[i] = fileErrorJSON{File: fe.File, Message: fe.Err.Error()}
	}
	return out
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, errorResponse{Error: msg})
}

func (s *Server) handleCreateBatch(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > s.opts.MaxUploadBytes {
		writeError(w, r, http.StatusRequestEntityTooLarge, fmt.Sprintf("upload exceeds %d bytes", s.opts.MaxUploadBytes))
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeError(w, r, http.StatusRequestEntityTooLarge, fmt.Sprintf("upload exceeds %d bytes", tooBig.Limit))
			return
		}
		writeError(w, r, http.StatusBadRequest, "expected multipart form with files: "+err.Error())
		return
	}
	defer r.MultipartForm.RemoveAll()

	uploads, err := readUploads(r.MultipartForm.File["files"])
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	s.metrics.batches.Inc()
	start := time.Now()
	corpus, failed, err := ridership.Build(uploads, s.opts.Workers)
	s.metrics.ingest.Observe(time.Since(start).Seconds())
	if errors.Is(err, ridership.ErrEmptyBatch) {
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}
	s.recordFiles(r.Context(), uploads, failed)

	if corpus.Len() == 0 {
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, errorResponse{Error: "no file could be ingested", Files: fileErrors(failed)})
		return
	}

	b := s.batches.add(corpus, failed, len(uploads))
	s.log.Info("batch ingested",
		slog.String("batch_id", b.id),
		slog.Int("files", len(uploads)),
		slog.Int("failed", len(failed)),
		slog.Any("years", corpus.Years()),
	)

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, describe(b))
}

func describe(b *batch) batchResponse {
	resp := batchResponse{
		ID:     b.id,
		Years:  b.corpus.Years(),
		Lines:  b.corpus.Lines(),
		Errors: fileErrors(b.failed),
	}
	if b.files < 2 {
		resp.Warning = MinFilesWarning
	}
	return resp
}

func (s *Server) recordFiles(ctx context.Context, uploads []ridership.Upload, failed []ridership.FileError) {
	s.metrics.files.WithLabelValues("ok").Add(float64(len(uploads) - len(failed)))
	for _, fe := range failed {
		s.metrics.files.WithLabelValues(outcome(fe.Err)).Inc()
		s.log.WarnContext(ctx, "file skipped",
			slog.String("file", fe.File),
			slog.String("error", fe.Err.Error()),
		)
	}
}

func readUploads(headers []*multipart.FileHeader) ([]ridership.Upload, error) {
	uploads := make([]ridership.Upload, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fh.Filename, err)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fh.Filename, err)
		}
		uploads = append(uploads, ridership.Upload{Name: fh.Filename, Data: data})
	}
	return uploads, nil
}

type batchKey struct{}

func (s *Server) loadBatch(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, ok := s.batches.get(chi.URLParam(r, "id"))
		if !ok {
			writeError(w, r, http.StatusNotFound, "unknown or expired batch")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), batchKey{}, b)))
	})
}

func batchFrom(r *http.Request) *batch {
	return r.Context().Value(batchKey{}).(*batch)
}

func (s *Server) handleGetBatch(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, describe(batchFrom(r)))
}

func (s *Server) handleLines(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, batchFrom(r).corpus.Lines())
}

func (s *Server) handleStations(w http.ResponseWriter, r *http.Request) {
	line := r.URL.Query().Get("line")
	if line == "" {
		writeError(w, r, http.StatusBadRequest, "line is required")
		return
	}
	render.JSON(w, r, batchFrom(r).corpus.Stations(line))
}

func (s *Server) selection(r *http.Request) (selection, error) {
	q := r.URL.Query()
	sel := selection{Line: q.Get("line"), Station: q.Get("station")}
	if err := s.validate.Struct(sel); err != nil {
		return selection{}, fmt.Errorf("line and station are required")
	}
	return sel, nil
}

func (s *Server) handleComparison(w http.ResponseWriter, r *http.Request) {
	sel, err := s.selection(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	table := ridership.Compare(batchFrom(r).corpus, sel.Line, sel.Station)
	s.metrics.comparisons.Inc()

	years, boarding, alighting := table.Series()
	render.JSON(w, r, comparisonResponse{
		Line:      sel.Line,
		Station:   sel.Station,
		Title:     export.Title(sel.Station),
		Rows:      table,
		Years:     years,
		Boarding:  boarding,
		Alighting: alighting,
	})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	kind := export.Kind(chi.URLParam(r, "format"))
	switch kind {
	case export.KindXLSX, export.KindPNG, export.KindPDF, export.KindCSV:
	default:
		writeError(w, r, http.StatusNotFound, fmt.Sprintf("unknown export format %q", kind))
		return
	}
	sel, err := s.selection(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	table := ridership.Compare(batchFrom(r).corpus, sel.Line, sel.Station)

	var buf bytes.Buffer
	if err := export.Write(&buf, kind, table, sel.Line, sel.Station); err != nil {
		s.log.ErrorContext(r.Context(), "export failed",
			slog.String("format", string(kind)),
			slog.String("error", err.Error()),
		)
		writeError(w, r, http.StatusInternalServerError, "export failed")
		return
	}
	s.metrics.exports.WithLabelValues(string(kind)).Inc()

	name := export.FileName(sel.Station, kind)
	w.Header().Set("Content-Type", export.ContentType(kind))
	w.Header().Set("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(name))
	w.Write(buf.Bytes())
}
