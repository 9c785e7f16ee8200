package ridership

import "sort"

// Representative returns the dataset selection lists are drawn from: the
// first year inserted into the corpus. Line and station names are assumed to
// be the same across years; mismatches are not reconciled.
func (c *Corpus) Representative() (YearDataset, bool) {
	if c.Len() == 0 {
		return YearDataset{}, false
	}
	return c.byYear[c.order[0]], true
}

// Lines returns the distinct line names of the representative dataset,
// sorted ascending.
func (c *Corpus) Lines() []string {
	ds, ok := c.Representative()
	if !ok {
		return nil
	}
	set := make(map[string]bool)
	for _, r := range ds.Rows {
		set[r.Line] = true
	}
	return sortedKeys(set)
}

// Stations returns the distinct station names on line in the representative
// dataset, sorted ascending.
func (c *Corpus) Stations(line string) []string {
	ds, ok := c.Representative()
	if !ok {
		return nil
	}
	set := make(map[string]bool)
	for _, r := range ds.Rows {
		if r.Line == line {
			set[r.Station] = true
		}
	}
	return sortedKeys(set)
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
