package cmd

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/zalepa/ridership/ridership"
)

var httpClient = &http.Client{Timeout: 2 * time.Minute}

// loadInputs reads every argument into an Upload, in argument order. An
// argument may be a CSV file, a directory (all *.csv files in it, sorted by
// name), or an http(s) URL.
func loadInputs(args []string) ([]ridership.Upload, error) {
	var uploads []ridership.Upload
	for _, arg := range args {
		if strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://") {
			data, err := fetch(arg)
			if err != nil {
				return nil, fmt.Errorf("fetching %s: %w", arg, err)
			}
			uploads = append(uploads, ridership.Upload{Name: path.Base(arg), Data: data})
			continue
		}

		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		paths := []string{arg}
		if info.IsDir() {
			paths, err = filepath.Glob(filepath.Join(arg, "*.csv"))
			if err != nil {
				return nil, fmt.Errorf("globbing %s: %w", arg, err)
			}
			sort.Strings(paths)
		}
		for _, p := range paths {
			data, err := os.ReadFile(p)
			if err != nil {
				return nil, fmt.Errorf("reading %s: %w", p, err)
			}
			uploads = append(uploads, ridership.Upload{Name: filepath.Base(p), Data: data})
		}
	}
	return uploads, nil
}

func fetch(url string) ([]byte, error) {
	resp, err := httpClient.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
