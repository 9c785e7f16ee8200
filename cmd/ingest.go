package cmd

import (
	"fmt"
	"os"

	"github.com/zalepa/ridership/ridership"
)

// ingest loads the input arguments and builds a corpus, reporting per-file
// failures on stderr. It returns nil when nothing could be ingested.
func ingest(args []string, workers int) *ridership.Corpus {
	uploads, err := loadInputs(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return nil
	}
	if len(uploads) == 1 {
		fmt.Fprintf(os.Stderr, "warning: only one file given; a comparison needs two or more years\n")
	}

	corpus, failed, err := ridership.Build(uploads, workers)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return nil
	}

	fmt.Fprintf(os.Stderr, "%d files, %d ingested, %d errors → years %v\n",
		len(uploads), len(uploads)-len(failed), len(failed), corpus.Years())
	for _, fe := range failed {
		fmt.Fprintf(os.Stderr, "  %s\n", fe.Error())
	}
	if corpus.Len() == 0 {
		fmt.Fprintf(os.Stderr, "no file could be ingested\n")
		return nil
	}
	return corpus
}
