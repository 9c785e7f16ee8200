package ridership

// yearPrefix is the number of leading characters of a usage date that name
// its year.
const yearPrefix = 4

// YearOf returns the first four characters of a usage date, or the whole
// value when it is shorter.
func YearOf(usageDate string) string {
	r := []rune(usageDate)
	if len(r) > yearPrefix {
		r = r[:yearPrefix]
	}
	return string(r)
}

// InferYear returns the most frequent year prefix among rows. Files often
// carry a few stray rows dated in a neighbouring year, so the label is the
// mode rather than any single row's value. Ties go to the value seen first.
func InferYear(rows []RawRow) (string, error) {
	if len(rows) == 0 {
		return "", &EmptyDatasetError{}
	}

	counts := make(map[string]int)
	var order []string
	for _, r := range rows {
		y := YearOf(r.UsageDate)
		if _, ok := counts[y]; !ok {
			order = append(order, y)
		}
		counts[y]++
	}

	best := order[0]
	for _, y := range order[1:] {
		if counts[y] > counts[best] {
			best = y
		}
	}
	return best, nil
}
