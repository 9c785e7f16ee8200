package cmd

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/zalepa/ridership/export"
	"github.com/zalepa/ridership/ridership"
)

func renderTable(w io.Writer, line, station string, table ridership.ComparisonTable) {
	fmt.Fprintf(w, "%s %s역 연도별 이용자 비교\n\n", line, station)

	fmt.Fprintf(w, "%-6s  %14s  %14s\n", "Year", "Boarding", "Alighting")
	fmt.Fprintln(w, strings.Repeat("─", 6+2+14+2+14))
	for _, r := range table {
		fmt.Fprintf(w, "%-6s  %14s  %14s\n", r.Year, export.FormatCount(r.Boarding), export.FormatCount(r.Alighting))
	}

	if len(table) < 2 {
		return
	}
	_, boarding, alighting := table.Series()
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Trend: boarding %s   alighting %s\n", sparkline(floats(boarding)), sparkline(floats(alighting)))
}

func floats(xs []int64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = float64(x)
	}
	return out
}

func sparkline(values []float64) string {
	blocks := []rune("▁▂▃▄▅▆▇█")
	n := len(blocks)

	min, max := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if len(values) == 0 {
		return ""
	}

	spread := max - min
	var sb strings.Builder
	for _, v := range values {
		idx := n / 2
		if spread > 0 {
			idx = int((v - min) / spread * float64(n-1))
		}
		sb.WriteRune(blocks[idx])
	}
	return sb.String()
}
