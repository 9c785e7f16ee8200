// Package ridership ingests yearly subway ridership CSV files and compares
// boarding and alighting totals for one station across years.
package ridership

// RawRow is one data line of a ridership CSV. Only the first five columns of
// the file are read, by position.
type RawRow struct {
	UsageDate string `json:"usageDate"`
	Line      string `json:"line"`
	Station   string `json:"station"`
	Boarding  int64  `json:"boarding"`
	Alighting int64  `json:"alighting"`
}

// YearDataset holds every row parsed from one uploaded file together with the
// year that file was inferred to represent.
type YearDataset struct {
	Year   string
	Source string
	Rows   []RawRow
}

// ComparisonRow is the per-year total for one (line, station) selection.
type ComparisonRow struct {
	Year      string `json:"year"`
	Boarding  int64  `json:"totalBoarding"`
	Alighting int64  `json:"totalAlighting"`
}

// ComparisonTable is ordered ascending by year.
type ComparisonTable []ComparisonRow

// Series returns the table as parallel arrays, the shape chart renderers want.
func (t ComparisonTable) Series() (years []string, boarding, alighting []int64) {
	years = make([]string, len(t))
	boarding = make([]int64, len(t))
	alighting = make([]int64, len(t))
	for i, r := range t {
		years[i] = r.Year
		boarding[i] = r.Boarding
		alighting[i] = r.Alighting
	}
	return years, boarding, alighting
}

// Upload is one named byte stream handed to the pipeline.
type Upload struct {
	Name string
	Data []byte
}
