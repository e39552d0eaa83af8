// Package analysis aggregates a loaded table into the figures shown on the
// dashboard: publication counts per year, the most frequent journals, missing
// value totals and per-column statistics.
package analysis

import (
	"sort"
	"strconv"

	"github.com/KaramelBytes/paperdash/internal/dataset"
	"github.com/KaramelBytes/paperdash/internal/utils"
)

// LabelLimit is the number of characters kept by DisplayLabel.
const LabelLimit = 40

// Count is one (key, count) pair of an aggregation result.
type Count struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// TimeSeries counts the non-null values of col and orders them by year.
// It returns nil when the column does not exist.
func TimeSeries(t *dataset.Table, col string) []Count {
	counts, ok := groupCounts(t, col)
	if !ok {
		return nil
	}
	sort.SliceStable(counts, func(i, j int) bool { return yearLess(counts[i].Key, counts[j].Key) })
	return counts
}

// yearLess orders keys numerically when both parse as numbers. Numbers sort
// before anything else, and the rest compares lexically.
func yearLess(a, b string) bool {
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	switch {
	case errA == nil && errB == nil:
		return fa < fb
	case errA == nil:
		return true
	case errB == nil:
		return false
	default:
		return a < b
	}
}

// TopN returns at most n of the most frequent non-null values in col, by
// descending count. Ties keep first-encountered order. n below 1 is treated
// as 1. It returns nil when the column does not exist.
func TopN(t *dataset.Table, col string, n int) []Count {
	if n < 1 {
		n = 1
	}
	counts, ok := groupCounts(t, col)
	if !ok {
		return nil
	}
	sort.SliceStable(counts, func(i, j int) bool { return counts[i].Count > counts[j].Count })
	if len(counts) > n {
		counts = counts[:n]
	}
	return counts
}

// DisplayLabel shortens long labels for charts and tables. Grouping always
// uses the full value.
func DisplayLabel(s string) string { return utils.TruncateRunes(s, LabelLimit) }

// groupCounts counts non-null display values of col in first-encountered order.
func groupCounts(t *dataset.Table, col string) ([]Count, bool) {
	if t == nil || col == "" {
		return nil, false
	}
	ci, ok := t.Index(col)
	if !ok {
		return nil, false
	}
	pos := make(map[string]int)
	var out []Count
	for r := 0; r < t.NumRows(); r++ {
		if t.IsNull(ci, r) {
			continue
		}
		v := t.Value(ci, r)
		if i, seen := pos[v]; seen {
			out[i].Count++
			continue
		}
		pos[v] = len(out)
		out = append(out, Count{Key: v, Count: 1})
	}
	if out == nil {
		out = []Count{}
	}
	return out, true
}

// Total sums the counts.
func Total(counts []Count) int {
	n := 0
	for _, c := range counts {
		n += c.Count
	}
	return n
}
