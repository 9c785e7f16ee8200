// Package export renders a ridership comparison table as a chart image, a PDF
// report, a spreadsheet, or CSV.
package export

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"strconv"

	"golang.org/x/image/font/opentype"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/zalepa/ridership/ridership"
)

const (
	chartWidth  = 8 * vg.Inch
	chartHeight = 5 * vg.Inch
	barWidth    = 0.35 * vg.Inch
)

var (
	boardingColor  = color.RGBA{R: 65, G: 105, B: 225, A: 255} // royalblue
	alightingColor = color.RGBA{R: 205, G: 92, B: 92, A: 255}  // indianred
)

// Labels used on charts and in exported tables.
const (
	LabelYear      = "연도"
	LabelBoarding  = "총 승차 승객 수"
	LabelAlighting = "총 하차 승객 수"
	seriesBoarding = "승차"
	seriesAlight   = "하차"
)

// Title is the chart heading for a station.
func Title(station string) string {
	return station + "역 연도별 승하차 비교"
}

// Chart builds a grouped bar chart with one boarding bar and one alighting
// bar per year.
func Chart(table ridership.ComparisonTable, station string) (*plot.Plot, error) {
	years, boarding, alighting := table.Series()

	p := plot.New()
	p.Title.Text = Title(station)
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = LabelYear
	p.Y.Label.Text = "이용자 수"
	p.BackgroundColor = color.White

	if len(years) == 0 {
		return p, nil
	}

	b, err := plotter.NewBarChart(values(boarding), barWidth)
	if err != nil {
		return nil, fmt.Errorf("boarding bars: %w", err)
	}
	b.Color = boardingColor
	b.LineStyle.Width = 0
	b.Offset = -barWidth / 2

	a, err := plotter.NewBarChart(values(alighting), barWidth)
	if err != nil {
		return nil, fmt.Errorf("alighting bars: %w", err)
	}
	a.Color = alightingColor
	a.LineStyle.Width = 0
	a.Offset = barWidth / 2

	p.Add(plotter.NewGrid(), b, a)
	p.Legend.Add(seriesBoarding, b)
	p.Legend.Add(seriesAlight, a)
	p.Legend.Top = true
	p.NominalX(years...)
	p.Y.Min = 0
	p.Y.Tick.Marker = numTicks{}

	return p, nil
}

func values(xs []int64) plotter.Values {
	v := make(plotter.Values, len(xs))
	for i, x := range xs {
		v[i] = float64(x)
	}
	return v
}

// WritePNG renders the chart for table as a PNG image.
func WritePNG(w io.Writer, table ridership.ComparisonTable, station string) error {
	p, err := Chart(table, station)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(chartWidth, chartHeight, "png")
	if err != nil {
		return fmt.Errorf("png canvas: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}

// UseFont makes the TrueType/OpenType font at path the default for all
// charts. The bundled Liberation fonts have no Hangul glyphs, so Korean line
// and station names render as boxes unless a CJK font is loaded.
func UseFont(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("parse font %s: %w", path, err)
	}
	name := font.Font{Typeface: font.Typeface("custom")}
	font.DefaultCache.Add(font.Collection{{Font: name, Face: f}})
	plot.DefaultFont = name
	plotter.DefaultFont = name
	return nil
}

type numTicks struct{}

func (numTicks) Ticks(min, max float64) []plot.Tick {
	t := plot.DefaultTicks{}
	ticks := t.Ticks(min, max)
	for i := range ticks {
		if ticks[i].Label != "" {
			ticks[i].Label = formatCompact(ticks[i].Value)
		}
	}
	return ticks
}

func formatCompact(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1e6:
		return strconv.FormatFloat(v/1e6, 'f', 1, 64) + "M"
	case abs >= 1e3:
		return strconv.FormatFloat(v/1e3, 'f', 0, 64) + "k"
	default:
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
}
