// Package server is the HTTP dashboard: upload a batch of yearly CSV files,
// pick a line and station, and view or download the comparison.
package server

import (
	"embed"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:embed web.html
var htmlContent embed.FS

// Options configures a Server.
type Options struct {
	Workers        int
	MaxUploadBytes int64
	BatchCapacity  int
	BatchTTL       time.Duration
	// Registry receives the server's metrics and backs /metrics. A fresh
	// registry is created when nil.
	Registry *prometheus.Registry
}

// Server holds uploaded batches and serves the dashboard.
type Server struct {
	opts     Options
	log      *slog.Logger
	batches  *batchStore
	metrics  *metrics
	registry *prometheus.Registry
	validate *validator.Validate
}

// New returns a Server. A nil logger discards logs.
func New(opts Options, log *slog.Logger) *Server {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if opts.BatchCapacity <= 0 {
		opts.BatchCapacity = 64
	}
	if opts.BatchTTL <= 0 {
		opts.BatchTTL = time.Hour
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 256 << 20
	}
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	s := &Server{
		opts:     opts,
		log:      log,
		batches:  newBatchStore(opts.BatchCapacity, opts.BatchTTL),
		registry: reg,
		validate: validator.New(),
	}
	s.metrics = newMetrics(reg, s.batches)
	return s
}

// Handler returns the dashboard's routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Route("/api/batches", func(r chi.Router) {
		r.Post("/", s.handleCreateBatch)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(s.loadBatch)
			r.Get("/", s.handleGetBatch)
			r.Get("/lines", s.handleLines)
			r.Get("/stations", s.handleStations)
			r.Get("/comparison", s.handleComparison)
			r.Get("/export/{format}", s.handleExport)
		})
	})
	return r
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data, err := htmlContent.ReadFile("web.html")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(data)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Int("bytes", ww.BytesWritten()),
			slog.Duration("duration", time.Since(start)),
		)
	})
}
