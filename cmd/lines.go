package cmd

import (
	"flag"
	"fmt"
	"os"
)

// Lines implements the "lines" subcommand: list the line names found in the
// input files, or the stations of one line.
func Lines(args []string) {
	fs := flag.NewFlagSet("lines", flag.ExitOnError)
	line := fs.String("line", "", "list stations on this line instead of lines")
	workers := fs.Int("workers", 0, "files decoded concurrently (0 = GOMAXPROCS)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ridership lines <file.csv | dir | url>... [--line L]\n\n")
		fs.PrintDefaults()
	}
	fs.Parse(reorderArgs(args))

	if fs.NArg() < 1 {
		fs.Usage()
		os.Exit(1)
	}

	corpus := ingest(fs.Args(), *workers)
	if corpus == nil {
		os.Exit(1)
	}

	names := corpus.Lines()
	if *line != "" {
		names = corpus.Stations(*line)
		if len(names) == 0 {
			fmt.Fprintf(os.Stderr, "no stations on line %q\n", *line)
			os.Exit(1)
		}
	}
	for _, n := range names {
		fmt.Println(n)
	}
}
