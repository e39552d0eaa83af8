package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type csvReader struct{}

func (csvReader) CanRead(path string) bool {
	name := strings.ToLower(path)
	return strings.HasSuffix(name, ".csv") || strings.HasSuffix(name, ".tsv") || strings.HasSuffix(name, ".txt")
}

func (csvReader) Read(path string, opt Options) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	return readCSV(f, filepath.Base(path), delimiterFor(path, opt.Delimiter), opt)
}

func delimiterFor(path string, delim rune) rune {
	if delim != 0 {
		return delim
	}
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}

func readCSV(src io.Reader, name string, delim rune, opt Options) (*Table, error) {
	r := csv.NewReader(src)
	r.FieldsPerRecord = -1
	r.Comma = delim

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ParseError{Path: name, Err: errors.New("file is empty")}
		}
		return nil, csvParseError(name, err)
	}
	rt, err := newRawTable(header)
	if err != nil {
		return nil, &ParseError{Path: name, Line: 1, Err: err}
	}
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, csvParseError(name, err)
		}
		if err := rt.addRow(rec); err != nil {
			line, _ := r.FieldPos(0)
			return nil, &ParseError{Path: name, Line: line, Err: err}
		}
	}
	return rt.build(name, opt.allocator())
}

func csvParseError(name string, err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &ParseError{Path: name, Line: pe.Line, Err: pe.Err}
	}
	return &ParseError{Path: name, Err: err}
}
