package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/zalepa/ridership/ridership"
)

const sheetName = "연도별 이용자수"

// WriteXLSX writes table as a single-sheet workbook with one row per year.
func WriteXLSX(w io.Writer, table ridership.ComparisonTable) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}
	if err := f.SetSheetRow(sheetName, "A1", &[]any{LabelYear, LabelBoarding, LabelAlighting}); err != nil {
		return err
	}
	for i, r := range table {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &[]any{r.Year, r.Boarding, r.Alighting}); err != nil {
			return err
		}
	}

	if len(table) > 0 {
		style, err := f.NewStyle(&excelize.Style{NumFmt: 3}) // #,##0
		if err != nil {
			return err
		}
		last := fmt.Sprintf("C%d", len(table)+1)
		if err := f.SetCellStyle(sheetName, "B2", last, style); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(sheetName, "B", "C", 18); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

// WriteCSV writes table with the same columns as the spreadsheet.
func WriteCSV(w io.Writer, table ridership.ComparisonTable) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{LabelYear, LabelBoarding, LabelAlighting}); err != nil {
		return err
	}
	for _, r := range table {
		row := []string{r.Year, strconv.FormatInt(r.Boarding, 10), strconv.FormatInt(r.Alighting, 10)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Kind identifies an export format.
type Kind string

const (
	KindXLSX Kind = "xlsx"
	KindPNG  Kind = "png"
	KindPDF  Kind = "pdf"
	KindCSV  Kind = "csv"
)

// FileName is the download name offered for a station's export.
func FileName(station string, kind Kind) string {
	switch kind {
	case KindPNG:
		return station + "_연도별_그래프.png"
	case KindPDF:
		return station + "_연도별_보고서.pdf"
	case KindCSV:
		return station + "_연도별_이용자수.csv"
	}
	return station + "_연도별_이용자수.xlsx"
}

// ContentType is the MIME type for kind.
func ContentType(kind Kind) string {
	switch kind {
	case KindPNG:
		return "image/png"
	case KindPDF:
		return "application/pdf"
	case KindCSV:
		return "text/csv; charset=utf-8"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// FormatCount renders n with thousands separators.
func FormatCount(n int64) string {
	s := strconv.FormatInt(n, 10)
	if n < 0 {
		return "-" + addCommas(s[1:])
	}
	return addCommas(s)
}

func addCommas(s string) string {
	if len(s) <= 3 {
		return s
	}
	var sb strings.Builder
	pre := len(s) % 3
	if pre > 0 {
		sb.WriteString(s[:pre])
	}
	for i := pre; i < len(s); i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(s[i : i+3])
	}
	return sb.String()
}

// Write renders table in the given format.
func Write(w io.Writer, kind Kind, table ridership.ComparisonTable, line, station string) error {
	switch kind {
	case KindXLSX:
		return WriteXLSX(w, table)
	case KindPNG:
		return WritePNG(w, table, station)
	case KindPDF:
		return WritePDF(w, table, line, station)
	case KindCSV:
		return WriteCSV(w, table)
	}
	return fmt.Errorf("unknown export format %q", kind)
}
