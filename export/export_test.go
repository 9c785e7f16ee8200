package export

import (
	"bytes"
	"encoding/csv"
	"image/png"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/zalepa/ridership/ridership"
)

var sample = ridership.ComparisonTable{
	{Year: "2022", Boarding: 100, Alighting: 90},
	{Year: "2023", Boarding: 1500000, Alighting: 1400000},
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sample))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{sheetName}, f.GetSheetList())
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{LabelYear, LabelBoarding, LabelAlighting},
		{"2022", "100", "90"},
		{"2023", "1500000", "1400000"},
	}, rows)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sample))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{LabelYear, LabelBoarding, LabelAlighting},
		{"2022", "100", "90"},
		{"2023", "1500000", "1400000"},
	}, rows)
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, sample, "강남"))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Positive(t, img.Bounds().Dx())
	assert.Positive(t, img.Bounds().Dy())
}

func TestWritePNGEmptyTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, nil, "강남"))
	_, err := png.Decode(&buf)
	require.NoError(t, err)
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, sample, "2호선", "강남"))
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))

	ctx, err := pdfcpu.Read(bytes.NewReader(buf.Bytes()), model.NewDefaultConfiguration())
	require.NoError(t, err)
	require.NoError(t, ctx.EnsurePageCount())
	assert.Equal(t, 1, ctx.PageCount)
}

func TestWriteUnknownKind(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Write(&buf, Kind("gif"), sample, "2호선", "강남"))
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "강남_연도별_이용자수.xlsx", FileName("강남", KindXLSX))
	assert.Equal(t, "강남_연도별_그래프.png", FileName("강남", KindPNG))
	assert.Equal(t, "강남_연도별_보고서.pdf", FileName("강남", KindPDF))
}

func TestFormatCount(t *testing.T) {
	tests := []struct {
		input int64
		want  string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{123456, "123,456"},
		{1234567, "1,234,567"},
		{-1234, "-1,234"},
	}
	for _, tt := range tests {
		if got := FormatCount(tt.input); got != tt.want {
			t.Errorf("FormatCount(%d) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	assert.Equal(t, "500", formatCompact(500))
	assert.Equal(t, "15k", formatCompact(15000))
	assert.Equal(t, "1.5M", formatCompact(1.5e6))
}
