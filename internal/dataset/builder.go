package dataset

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// nullTokens are cell values read as missing. They match the whole cell, so
// whitespace-only text stays a value.
var nullTokens = map[string]struct{}{
	"":     {},
	"NA":   {},
	"N/A":  {},
	"n/a":  {},
	"NaN":  {},
	"nan":  {},
	"null": {},
	"NULL": {},
	"None": {},
	"#N/A": {},
	"<NA>": {},
}

// rawTable accumulates text rows from a row-oriented source (CSV, XLSX)
// before the column types are known.
type rawTable struct {
	header []string
	cells  [][]string // per column
	valid  [][]bool   // per column; false marks a null
	rows   int
}

func newRawTable(header []string) (*rawTable, error) {
	if len(header) == 0 {
		return nil, fmt.Errorf("no header row")
	}
	h := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		if !utf8.ValidString(name) {
			return nil, fmt.Errorf("header column %d is not valid UTF-8", i+1)
		}
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate column name %q", name)
		}
		seen[name] = true
		h[i] = name
	}
	return &rawTable{
		header: h,
		cells:  make([][]string, len(h)),
		valid:  make([][]bool, len(h)),
	}, nil
}

// addRow appends one record as raw text. Short records are padded with
// nulls; long records are rejected.
func (rt *rawTable) addRow(rec []string) error {
	if len(rec) > len(rt.header) {
		return fmt.Errorf("expected %d fields, saw %d", len(rt.header), len(rec))
	}
	for j := range rt.header {
		v := ""
		if j < len(rec) {
			v = rec[j]
		}
		if !utf8.ValidString(v) {
			return fmt.Errorf("column %q is not valid UTF-8", rt.header[j])
		}
		_, isNull := nullTokens[v]
		rt.cells[j] = append(rt.cells[j], v)
		rt.valid[j] = append(rt.valid[j], !isNull)
	}
	rt.rows++
	return nil
}

// build infers a type per column and materializes the Arrow arrays.
func (rt *rawTable) build(name string, mem memory.Allocator) (*Table, error) {
	fields := make([]arrow.Field, len(rt.header))
	cols := make([]arrow.Array, len(rt.header))
	for j, h := range rt.header {
		dt := inferType(rt.cells[j], rt.valid[j])
		fields[j] = arrow.Field{Name: h, Type: dt, Nullable: true}
		cols[j] = buildArray(mem, dt, rt.cells[j], rt.valid[j])
	}
	t, err := NewTable(name, fields, cols)
	if err != nil {
		for _, c := range cols {
			c.Release()
		}
		return nil, err
	}
	return t, nil
}

// inferType picks the narrowest type that fits every non-null cell:
// int64, then float64, then bool, then string. Surrounding blanks are
// ignored when parsing numbers and booleans.
func inferType(vals []string, valid []bool) arrow.DataType {
	allInt, allFloat, allBool := true, true, true
	seen := false
	for i, v := range vals {
		if !valid[i] {
			continue
		}
		seen = true
		v = strings.TrimSpace(v)
		if allInt {
			if _, err := strconv.ParseInt(v, 10, 64); err != nil {
				allInt = false
			}
		}
		if allFloat {
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				allFloat = false
			}
		}
		if allBool {
			switch strings.ToLower(v) {
			case "true", "false":
			default:
				allBool = false
			}
		}
		if !allInt && !allFloat && !allBool {
			break
		}
	}
	switch {
	case !seen:
		return arrow.BinaryTypes.String
	case allInt:
		return arrow.PrimitiveTypes.Int64
	case allFloat:
		return arrow.PrimitiveTypes.Float64
	case allBool:
		return arrow.FixedWidthTypes.Boolean
	default:
		return arrow.BinaryTypes.String
	}
}

func buildArray(mem memory.Allocator, dt arrow.DataType, vals []string, valid []bool) arrow.Array {
	switch dt.ID() {
	case arrow.INT64:
		b := array.NewInt64Builder(mem)
		defer b.Release()
		b.Reserve(len(vals))
		for i, v := range vals {
			if !valid[i] {
				b.AppendNull()
				continue
			}
			n, _ := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
			b.Append(n)
		}
		return b.NewArray()
	case arrow.FLOAT64:
		b := array.NewFloat64Builder(mem)
		defer b.Release()
		b.Reserve(len(vals))
		for i, v := range vals {
			if !valid[i] {
				b.AppendNull()
				continue
			}
			f, _ := strconv.ParseFloat(strings.TrimSpace(v), 64)
			b.Append(f)
		}
		return b.NewArray()
	case arrow.BOOL:
		b := array.NewBooleanBuilder(mem)
		defer b.Release()
		b.Reserve(len(vals))
		for i, v := range vals {
			if !valid[i] {
				b.AppendNull()
				continue
			}
			b.Append(strings.EqualFold(strings.TrimSpace(v), "true"))
		}
		return b.NewArray()
	default:
		b := array.NewStringBuilder(mem)
		defer b.Release()
		b.Reserve(len(vals))
		for i, v := range vals {
			if !valid[i] {
				b.AppendNull()
				continue
			}
			b.Append(v)
		}
		return b.NewArray()
	}
}
