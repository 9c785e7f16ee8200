package ridership

import (
	"errors"
	"fmt"
)

var (
	// ErrUndecodable means the bytes are neither valid UTF-8 nor valid CP949.
	ErrUndecodable = errors.New("not valid UTF-8 or CP949 text")
	// ErrNoHeader means the file has no lines at all, not even a header.
	ErrNoHeader = errors.New("file is empty")
	// ErrShortRow means a data row has fewer than the five required columns.
	ErrShortRow = errors.New("too few columns")
	// ErrBadCount means a boarding or alighting field is not a non-negative integer.
	ErrBadCount = errors.New("invalid passenger count")
	// ErrEmptyDataset means a file had a header but no data rows.
	ErrEmptyDataset = errors.New("no data rows")
	// ErrEmptyBatch means no files were handed to the builder.
	ErrEmptyBatch = errors.New("no files uploaded")
)

// DecodeError reports a file whose encoding could not be determined.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "decode: " + e.Err.Error() }
func (e *DecodeError) Unwrap() error { return e.Err }

// ParseError reports a malformed file. Line is the 1-based line number in the
// source file, or 0 when the problem is not tied to a line.
type ParseError struct {
	Line   int
	Column string
	Err    error
}

func (e *ParseError) Error() string {
	switch {
	case e.Line > 0 && e.Column != "":
		return fmt.Sprintf("parse: line %d: %s: %v", e.Line, e.Column, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("parse: line %d: %v", e.Line, e.Err)
	}
	return "parse: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

// EmptyDatasetError reports a file with nothing to infer a year from.
type EmptyDatasetError struct{}

func (e *EmptyDatasetError) Error() string { return "year inference: " + ErrEmptyDataset.Error() }
func (e *EmptyDatasetError) Unwrap() error { return ErrEmptyDataset }

// FileError attributes a pipeline failure to the uploaded file that caused it.
type FileError struct {
	File string
	Err  error
}

func (e FileError) Error() string { return e.File + ": " + e.Err.Error() }
func (e FileError) Unwrap() error { return e.Err }
