package export

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgpdf"

	"github.com/zalepa/ridership/ridership"
)

const (
	pageWidth    = 8.5 * vg.Inch
	pageHeight   = 11 * vg.Inch
	pdfMargin    = 0.75 * vg.Inch
	tableRowH    = 0.28 * vg.Inch
	tableColW    = 2.2 * vg.Inch
	reportChartH = 4.5 * vg.Inch
)

// WritePDF writes a one-page report: the chart followed by the comparison
// table. The vgpdf output is passed through pdfcpu to optimize it before it
// reaches w.
func WritePDF(w io.Writer, table ridership.ComparisonTable, line, station string) error {
	p, err := Chart(table, station)
	if err != nil {
		return err
	}

	c := vgpdf.New(pageWidth, pageHeight)
	dc := draw.New(c)
	area := draw.Crop(dc, pdfMargin, -pdfMargin, pdfMargin, -pdfMargin)

	top := area.Max.Y
	fillText(area, sanitize(line+" "+Title(station)), vg.Points(14), area.Min.X, top-vg.Points(14), color.Black)

	chartArea := draw.Canvas{
		Canvas: area.Canvas,
		Rectangle: vg.Rectangle{
			Min: vg.Point{X: area.Min.X, Y: top - 0.4*vg.Inch - reportChartH},
			Max: vg.Point{X: area.Max.X, Y: top - 0.4*vg.Inch},
		},
	}
	p.Draw(chartArea)

	y := chartArea.Min.Y - 0.5*vg.Inch
	x := area.Min.X
	gray := color.Gray{Y: 80}
	fillText(area, LabelYear, vg.Points(10), x, y, gray)
	fillText(area, LabelBoarding, vg.Points(10), x+tableColW, y, gray)
	fillText(area, LabelAlighting, vg.Points(10), x+2*tableColW, y, gray)
	strokeHLine(area, x, area.Max.X, y-vg.Points(6), color.Gray{Y: 180})

	for _, r := range table {
		y -= tableRowH
		if y < area.Min.Y {
			break
		}
		fillText(area, r.Year, vg.Points(10), x, y, color.Black)
		fillText(area, FormatCount(r.Boarding), vg.Points(10), x+tableColW, y, color.Black)
		fillText(area, FormatCount(r.Alighting), vg.Points(10), x+2*tableColW, y, color.Black)
	}

	var raw bytes.Buffer
	if _, err := c.WriteTo(&raw); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	if err := api.Optimize(bytes.NewReader(raw.Bytes()), w, model.NewDefaultConfiguration()); err != nil {
		return fmt.Errorf("optimize pdf: %w", err)
	}
	return nil
}

// sanitize replaces dashes the embedded PDF fonts don't render.
func sanitize(s string) string {
	s = strings.ReplaceAll(s, "—", "-")
	return strings.ReplaceAll(s, "–", "-")
}

func fillText(c draw.Canvas, txt string, size vg.Length, x, y vg.Length, clr color.Color) {
	sty := draw.TextStyle{
		Color:   clr,
		Font:    plot.DefaultFont,
		Handler: plot.DefaultTextHandler,
	}
	sty.Font.Size = size
	c.FillText(sty, vg.Point{X: x, Y: y}, txt)
}

func strokeHLine(c draw.Canvas, x0, x1, y vg.Length, clr color.Color) {
	c.StrokeLine2(draw.LineStyle{
		Color: clr,
		Width: vg.Points(0.5),
	}, x0, y, x1, y)
}
