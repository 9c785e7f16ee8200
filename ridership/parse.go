package ridership

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Column positions. Header labels differ between years and publishers, so
// only position is trusted.
const (
	colUsageDate = iota
	colLine
	colStation
	colBoarding
	colAlighting
	numColumns
)

// ParseRows reads CSV text, discards the first line as a header, and returns
// one RawRow per remaining line. Columns beyond the fifth are ignored.
//
// A single malformed row fails the whole file: the caller gets a *ParseError
// naming the offending line and no rows at all.
func ParseRows(text string) ([]RawRow, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	if _, err := r.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ParseError{Err: ErrNoHeader}
		}
		return nil, wrapCSVError(err)
	}

	var rows []RawRow
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, wrapCSVError(err)
		}
		line, _ := r.FieldPos(0)
		if len(rec) < numColumns {
			return nil, &ParseError{Line: line, Err: fmt.Errorf("%w: got %d, need %d", ErrShortRow, len(rec), numColumns)}
		}

		boarding, err := parseCount(rec[colBoarding])
		if err != nil {
			return nil, &ParseError{Line: line, Column: "boarding", Err: err}
		}
		alighting, err := parseCount(rec[colAlighting])
		if err != nil {
			return nil, &ParseError{Line: line, Column: "alighting", Err: err}
		}

		rows = append(rows, RawRow{
			UsageDate: strings.TrimSpace(rec[colUsageDate]),
			Line:      rec[colLine],
			Station:   rec[colStation],
			Boarding:  boarding,
			Alighting: alighting,
		})
	}
	return rows, nil
}

func wrapCSVError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &ParseError{Line: pe.Line, Err: pe.Err}
	}
	return &ParseError{Err: err}
}

// parseCount accepts plain integers, integers with thousands separators
// ("1,234"), and integral floats ("120.0") as written by spreadsheet tools.
func parseCount(s string) (int64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrBadCount)
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		if v < 0 {
			return 0, fmt.Errorf("%w: %q is negative", ErrBadCount, s)
		}
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("%w: %q", ErrBadCount, s)
	}
	if f < 0 || f >= math.MaxInt64 {
		return 0, fmt.Errorf("%w: %q out of range", ErrBadCount, s)
	}
	return int64(f), nil
}
