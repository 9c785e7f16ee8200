package cmd

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/zalepa/ridership/export"
	"github.com/zalepa/ridership/ridership"
)

// Compare implements the "compare" subcommand: ingest yearly CSV files, print
// the year-over-year totals for one station, and write any requested exports.
func Compare(args []string) {
	fs := flag.NewFlagSet("compare", flag.ExitOnError)
	line := fs.String("line", "", "line name, e.g. 2호선")
	station := fs.String("station", "", "station name, e.g. 강남")
	xlsxOut := fs.String("xlsx", "", "write the table as an Excel workbook")
	pngOut := fs.String("png", "", "write the chart as a PNG image")
	pdfOut := fs.String("pdf", "", "write a PDF report")
	csvOut := fs.String("csv", "", "write the table as CSV")
	workers := fs.Int("workers", 0, "files decoded concurrently (0 = GOMAXPROCS)")
	fontPath := fs.String("font", "", "TTF/OTF font with Hangul glyphs for charts")
	quiet := fs.Bool("quiet", false, "do not print the table")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: ridership compare <file.csv | dir | url>... --line L --station S [flags]

Compare boarding and alighting totals for one station across yearly ridership
files. Each file's year is the most common year among its usage dates.

Flags:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  ridership compare 2022.csv 2023.csv --line 2호선 --station 강남
  ridership compare ./data --line 2호선 --station 강남 --xlsx out.xlsx --png out.png
`)
	}
	fs.Parse(reorderArgs(args))

	if fs.NArg() < 1 {
		fs.Usage()
		os.Exit(1)
	}
	if *fontPath != "" {
		if err := export.UseFont(*fontPath); err != nil {
			fmt.Fprintf(os.Stderr, "error loading font: %v\n", err)
			os.Exit(1)
		}
	}

	corpus := ingest(fs.Args(), *workers)
	if corpus == nil {
		os.Exit(1)
	}

	if *line == "" || *station == "" {
		fmt.Fprintf(os.Stderr, "--line and --station are required\n")
		printChoices(corpus, *line)
		os.Exit(1)
	}
	if !contains(corpus.Stations(*line), *station) {
		fmt.Fprintf(os.Stderr, "warning: %s %s is not listed in the %s data; its totals may be zero\n",
			*line, *station, firstYear(corpus))
	}

	table := ridership.Compare(corpus, *line, *station)
	if !*quiet {
		renderTable(os.Stdout, *line, *station, table)
	}

	outputs := []struct {
		path string
		kind export.Kind
	}{
		{*xlsxOut, export.KindXLSX},
		{*pngOut, export.KindPNG},
		{*pdfOut, export.KindPDF},
		{*csvOut, export.KindCSV},
	}
	failed := false
	for _, o := range outputs {
		if o.path == "" {
			continue
		}
		if err := writeExport(o.path, o.kind, table, *line, *station); err != nil {
			fmt.Fprintf(os.Stderr, "error writing %s: %v\n", o.path, err)
			failed = true
			continue
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", o.path)
	}
	if failed {
		os.Exit(1)
	}
}

func writeExport(path string, kind export.Kind, table ridership.ComparisonTable, line, station string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.Write(f, kind, table, line, station); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printChoices(corpus *ridership.Corpus, line string) {
	if line != "" && len(corpus.Stations(line)) > 0 {
		fmt.Fprintf(os.Stderr, "stations on %s: %s\n", line, strings.Join(corpus.Stations(line), ", "))
		return
	}
	fmt.Fprintf(os.Stderr, "lines: %s\n", strings.Join(corpus.Lines(), ", "))
}

func firstYear(corpus *ridership.Corpus) string {
	ds, _ := corpus.Representative()
	return ds.Year
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
