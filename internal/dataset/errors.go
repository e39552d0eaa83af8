package dataset

import "fmt"

// NotFoundError indicates the configured data file does not exist.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found. Please ensure the file exists.", e.Path)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// ParseError indicates the file exists but could not be read as a table
// (malformed CSV, invalid encoding, broken workbook, duplicate columns).
type ParseError struct {
	Path string
	Line int // 0 when unknown
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("error loading %s (line %d): %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("error loading %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
