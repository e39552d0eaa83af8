package analysis

import (
	"sort"

	"github.com/KaramelBytes/paperdash/internal/classify"
	"github.com/KaramelBytes/paperdash/internal/dataset"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// MissingLimit caps Summary.MissingByColumn.
const MissingLimit = 10

// ColumnMissing is the number of missing cells in one column.
type ColumnMissing struct {
	Column  string `json:"column"`
	Missing int    `json:"missing"`
}

// Summary holds the headline metrics of a table.
type Summary struct {
	Rows    int `json:"rows"`
	Columns int `json:"columns"`
	Nulls   int `json:"nulls"`
	// Dtypes is the number of distinct column type labels.
	Dtypes          int             `json:"dtypes"`
	MissingByColumn []ColumnMissing `json:"missing_by_column"`
}

// Summarize computes the headline metrics of t.
func Summarize(t *dataset.Table) Summary {
	s := Summary{Rows: t.NumRows(), Columns: t.NumCols(), MissingByColumn: []ColumnMissing{}}
	kinds := make(map[string]struct{})
	names := t.ColumnNames()
	for i, name := range names {
		kinds[t.Dtype(i)] = struct{}{}
		n := t.NullCount(i)
		s.Nulls += n
		if n > 0 {
			s.MissingByColumn = append(s.MissingByColumn, ColumnMissing{Column: name, Missing: n})
		}
	}
	s.Dtypes = len(kinds)
	sort.SliceStable(s.MissingByColumn, func(i, j int) bool {
		return s.MissingByColumn[i].Missing > s.MissingByColumn[j].Missing
	})
	if len(s.MissingByColumn) > MissingLimit {
		s.MissingByColumn = s.MissingByColumn[:MissingLimit]
	}
	return s
}

// DtypeCount is the number of columns sharing one type label.
type DtypeCount struct {
	Dtype   string `json:"dtype"`
	Columns int    `json:"columns"`
}

// DtypeCounts groups columns by type label, most common first. Ties keep the
// order in which the label first appears.
func DtypeCounts(t *dataset.Table) []DtypeCount {
	pos := make(map[string]int)
	var out []DtypeCount
	for i := 0; i < t.NumCols(); i++ {
		d := t.Dtype(i)
		if p, ok := pos[d]; ok {
			out[p].Columns++
			continue
		}
		pos[d] = len(out)
		out = append(out, DtypeCount{Dtype: d, Columns: 1})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Columns > out[j].Columns })
	return out
}

// Sample is a rectangular slice of a table rendered as display strings.
type Sample struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Head returns the first n rows of the named columns. Unknown names are
// skipped and nulls render as empty strings.
func Head(t *dataset.Table, cols []string, n int) Sample {
	var s Sample
	var idx []int
	for _, c := range cols {
		if i, ok := t.Index(c); ok {
			idx = append(idx, i)
			s.Columns = append(s.Columns, c)
		}
	}
	if n > t.NumRows() {
		n = t.NumRows()
	}
	if n < 0 || len(idx) == 0 {
		n = 0
	}
	s.Rows = make([][]string, n)
	for r := 0; r < n; r++ {
		row := make([]string, len(idx))
		for j, ci := range idx {
			row[j] = t.Value(ci, r)
		}
		s.Rows[r] = row
	}
	return s
}

// NumericStats describes the non-null values of one numeric column.
type NumericStats struct {
	Column string  `json:"column"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// DescribeNumeric summarizes every numeric column in declaration order.
// Columns without values report only their count. Std is the sample
// standard deviation and is zero for a single value.
func DescribeNumeric(t *dataset.Table) []NumericStats {
	var out []NumericStats
	for i, name := range t.ColumnNames() {
		vals, ok := t.Float64s(i)
		if !ok {
			continue
		}
		ns := NumericStats{Column: name, Count: len(vals)}
		if len(vals) > 0 {
			ns.Min = floats.Min(vals)
			ns.Max = floats.Max(vals)
			if len(vals) == 1 {
				ns.Mean = vals[0]
			} else {
				ns.Mean, ns.Std = stat.MeanStdDev(vals, nil)
			}
		}
		out = append(out, ns)
	}
	return out
}

// ColumnInfo describes one column for listings.
type ColumnInfo struct {
	Name    string        `json:"name"`
	Dtype   string        `json:"dtype"`
	Role    classify.Role `json:"role"`
	Missing int           `json:"missing"`
}

// Columns lists every column with its type, inferred role and missing count.
func Columns(t *dataset.Table) []ColumnInfo {
	descs := classify.Describe(t.ColumnNames())
	out := make([]ColumnInfo, len(descs))
	for i, d := range descs {
		out[i] = ColumnInfo{Name: d.Name, Dtype: t.Dtype(i), Role: d.Role, Missing: t.NullCount(i)}
	}
	return out
}
