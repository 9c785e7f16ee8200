package main

import (
	"fmt"
	"os"

	"github.com/zalepa/ridership/cmd"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "compare":
		cmd.Compare(os.Args[2:])
	case "lines":
		cmd.Lines(os.Args[2:])
	case "web":
		cmd.Web(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: ridership <command>\n\nCommands:\n  compare    Compare a station's yearly boarding/alighting totals\n  lines      List lines, or stations on a line, found in ridership files\n  web        Start the upload-and-compare web dashboard\n")
}
