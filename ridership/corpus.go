package ridership

import (
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
)

// Corpus maps year labels to the dataset ingested for that year. A Corpus is
// never modified after it is returned; Ingest builds a new one.
type Corpus struct {
	byYear map[string]YearDataset
	// order lists years in first-insertion order. Replacing a year keeps its
	// original position.
	order []string
}

// NewCorpus returns an empty corpus.
func NewCorpus() *Corpus {
	return &Corpus{byYear: make(map[string]YearDataset)}
}

// Len is the number of distinct years.
func (c *Corpus) Len() int {
	if c == nil {
		return 0
	}
	return len(c.byYear)
}

// Years returns the year labels in ascending order.
func (c *Corpus) Years() []string {
	if c == nil {
		return nil
	}
	years := make([]string, 0, len(c.byYear))
	for y := range c.byYear {
		years = append(years, y)
	}
	sort.Strings(years)
	return years
}

// Dataset returns the dataset stored for year.
func (c *Corpus) Dataset(year string) (YearDataset, bool) {
	if c == nil {
		return YearDataset{}, false
	}
	ds, ok := c.byYear[year]
	return ds, ok
}

func (c *Corpus) clone() *Corpus {
	n := &Corpus{
		byYear: make(map[string]YearDataset, c.Len()+1),
	}
	if c == nil {
		return n
	}
	for y, ds := range c.byYear {
		n.byYear[y] = ds
	}
	n.order = append(n.order, c.order...)
	return n
}

func (c *Corpus) put(ds YearDataset) {
	if _, ok := c.byYear[ds.Year]; !ok {
		c.order = append(c.order, ds.Year)
	}
	c.byYear[ds.Year] = ds
}

// LoadFile runs one upload through decode, parse and year inference.
func LoadFile(u Upload) (YearDataset, Encoding, error) {
	text, enc, err := Decode(u.Data)
	if err != nil {
		return YearDataset{}, "", err
	}
	rows, err := ParseRows(text)
	if err != nil {
		return YearDataset{}, enc, err
	}
	year, err := InferYear(rows)
	if err != nil {
		return YearDataset{}, enc, err
	}
	return YearDataset{Year: year, Source: u.Name, Rows: rows}, enc, nil
}

type loadResult struct {
	ds  YearDataset
	err error
}

// Ingest folds a batch of uploads into c and returns the resulting corpus
// together with one FileError per file that failed. c is left untouched.
//
// Files are loaded concurrently on up to workers goroutines (GOMAXPROCS when
// workers <= 0) but applied in upload order, so when two files resolve to the
// same year the later one wins.
func Ingest(c *Corpus, batch []Upload, workers int) (*Corpus, []FileError) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]loadResult, len(batch))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, u := range batch {
		g.Go(func() error {
			ds, _, err := LoadFile(u)
			results[i] = loadResult{ds: ds, err: err}
			return nil
		})
	}
	g.Wait()

	next := c.clone()
	var failed []FileError
	for i, res := range results {
		if res.err != nil {
			failed = append(failed, FileError{File: batch[i].Name, Err: res.err})
			continue
		}
		next.put(res.ds)
	}
	return next, failed
}

// Build ingests a fresh batch into an empty corpus. It fails only when the
// batch itself is empty; per-file failures are returned alongside the corpus.
func Build(batch []Upload, workers int) (*Corpus, []FileError, error) {
	if len(batch) == 0 {
		return nil, nil, ErrEmptyBatch
	}
	c, failed := Ingest(nil, batch, workers)
	return c, failed, nil
}
