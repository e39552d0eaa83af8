package dataset

import (
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
)

// Table is an immutable, column-oriented dataset. Each column is a nullable
// Arrow array; all columns have the same length.
//
// Tables are reference counted. Whoever receives a Table from Load or a
// Loader owns one reference and must call Release when done.
type Table struct {
	Name string // base name of the source file
	Path string

	fields []arrow.Field
	cols   []arrow.Array
	index  map[string]int
	rows   int
	refs   atomic.Int64
}

// NewTable wraps the given arrays. Column names must be unique and all arrays
// must share one length. The table takes ownership of the arrays.
func NewTable(name string, fields []arrow.Field, cols []arrow.Array) (*Table, error) {
	if len(fields) != len(cols) {
		return nil, fmt.Errorf("table %s: %d fields for %d columns", name, len(fields), len(cols))
	}
	t := &Table{Name: name, fields: fields, cols: cols, index: make(map[string]int, len(fields))}
	for i, f := range fields {
		if _, dup := t.index[f.Name]; dup {
			return nil, fmt.Errorf("duplicate column name %q", f.Name)
		}
		t.index[f.Name] = i
		n := cols[i].Len()
		if i == 0 {
			t.rows = n
		} else if n != t.rows {
			return nil, fmt.Errorf("column %q has %d rows, want %d", f.Name, n, t.rows)
		}
	}
	t.refs.Store(1)
	return t, nil
}

// Retain adds a reference.
func (t *Table) Retain() { t.refs.Add(1) }

// Release drops a reference and frees the column buffers once none remain.
func (t *Table) Release() {
	if t == nil {
		return
	}
	if t.refs.Add(-1) == 0 {
		for _, c := range t.cols {
			c.Release()
		}
	}
}

func (t *Table) NumRows() int { return t.rows }
func (t *Table) NumCols() int { return len(t.cols) }

// ColumnNames returns the column names in declaration order.
func (t *Table) ColumnNames() []string {
	out := make([]string, len(t.fields))
	for i, f := range t.fields {
		out[i] = f.Name
	}
	return out
}

// Index returns the position of the named column.
func (t *Table) Index(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// Column returns the raw Arrow array at position i.
func (t *Table) Column(i int) arrow.Array { return t.cols[i] }

func (t *Table) IsNull(col, row int) bool { return t.cols[col].IsNull(row) }

// NullCount is the number of missing cells in column i.
func (t *Table) NullCount(i int) int { return t.cols[i].NullN() }

// Value renders a cell for display and grouping. Nulls render as "".
func (t *Table) Value(col, row int) string { return formatValue(t.cols[col], row) }

// Dtype returns the display label of column i's type.
func (t *Table) Dtype(i int) string { return DtypeLabel(t.fields[i].Type) }

// Float64s returns the non-null values of a numeric column. ok is false when
// the column is not numeric.
func (t *Table) Float64s(i int) (vals []float64, ok bool) {
	col := t.cols[i]
	get, ok := numericGetter(col)
	if !ok {
		return nil, false
	}
	vals = make([]float64, 0, col.Len()-col.NullN())
	for r := 0; r < col.Len(); r++ {
		if col.IsNull(r) {
			continue
		}
		vals = append(vals, get(r))
	}
	return vals, true
}

// DtypeLabel maps Arrow types onto the labels analysts know from dataframes.
func DtypeLabel(dt arrow.DataType) string {
	switch dt.ID() {
	case arrow.INT8, arrow.INT16, arrow.INT32, arrow.INT64,
		arrow.UINT8, arrow.UINT16, arrow.UINT32, arrow.UINT64:
		return "int64"
	case arrow.FLOAT16, arrow.FLOAT32, arrow.FLOAT64:
		return "float64"
	case arrow.BOOL:
		return "bool"
	case arrow.STRING, arrow.LARGE_STRING, arrow.BINARY, arrow.LARGE_BINARY:
		return "object"
	case arrow.TIMESTAMP, arrow.DATE32, arrow.DATE64:
		return "datetime64"
	default:
		return dt.Name()
	}
}

func numericGetter(col arrow.Array) (func(int) float64, bool) {
	switch a := col.(type) {
	case *array.Int64:
		return func(i int) float64 { return float64(a.Value(i)) }, true
	case *array.Int32:
		return func(i int) float64 { return float64(a.Value(i)) }, true
	case *array.Int16:
		return func(i int) float64 { return float64(a.Value(i)) }, true
	case *array.Int8:
		return func(i int) float64 { return float64(a.Value(i)) }, true
	case *array.Uint64:
		return func(i int) float64 { return float64(a.Value(i)) }, true
	case *array.Uint32:
		return func(i int) float64 { return float64(a.Value(i)) }, true
	case *array.Uint16:
		return func(i int) float64 { return float64(a.Value(i)) }, true
	case *array.Uint8:
		return func(i int) float64 { return float64(a.Value(i)) }, true
	case *array.Float64:
		return func(i int) float64 { return a.Value(i) }, true
	case *array.Float32:
		return func(i int) float64 { return float64(a.Value(i)) }, true
	case *array.Float16:
		return func(i int) float64 { return float64(a.Value(i).Float32()) }, true
	}
	return nil, false
}

func formatValue(col arrow.Array, pos int) string {
	if col.IsNull(pos) {
		return ""
	}
	switch a := col.(type) {
	case *array.String:
		return a.Value(pos)
	case *array.LargeString:
		return a.Value(pos)
	case *array.Int64:
		return strconv.FormatInt(a.Value(pos), 10)
	case *array.Float64:
		return strconv.FormatFloat(a.Value(pos), 'f', -1, 64)
	case *array.Boolean:
		return strconv.FormatBool(a.Value(pos))
	case *array.Date32:
		return a.Value(pos).ToTime().Format("2006-01-02")
	default:
		return col.ValueStr(pos)
	}
}
