package ridership

// Compare totals boarding and alighting counts for the (line, station) pair
// in every year of the corpus. Names match exactly. A year with no matching
// rows still gets a row, with zero totals. The result is ascending by year.
func Compare(c *Corpus, line, station string) ComparisonTable {
	years := c.Years()
	table := make(ComparisonTable, 0, len(years))
	for _, y := range years {
		row := ComparisonRow{Year: y}
		for _, r := range c.byYear[y].Rows {
			if r.Line != line || r.Station != station {
				continue
			}
			row.Boarding += r.Boarding
			row.Alighting += r.Alighting
		}
		table = append(table, row)
	}
	return table
}
