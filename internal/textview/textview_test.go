package textview

import (
	"strings"
	"testing"

	"github.com/KaramelBytes/paperdash/internal/analysis"
	"github.com/KaramelBytes/paperdash/internal/classify"
)

func TestDashboard(t *testing.T) {
	long := strings.Repeat("B", 45)
	d := &analysis.Dashboard{
		Summary: analysis.Summary{
			Rows: 12345, Columns: 4, Nulls: 3, Dtypes: 2,
			MissingByColumn: []analysis.ColumnMissing{{Column: "abstract", Missing: 3}},
		},
		Roles:       classify.Roles{Year: "year", Journal: "journal"},
		Series:      []analysis.Count{{Key: "2019", Count: 4}, {Key: "2020", Count: 8}},
		TopN:        5,
		TopJournals: []analysis.Count{{Key: long, Count: 7}},
	}
	out := Dashboard("CORD-19 Dataset Explorer", d)
	for _, want := range []string{
		"CORD-19 Dataset Explorer",
		"Total Papers",
		"12,345",
		"Publications Over Time",
		"2020",
		"Top 5 Publishing Journals",
		strings.Repeat("B", 40) + "...",
		"abstract",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, long) {
		t.Fatalf("journal label should be truncated")
	}
}

func TestDashboardWithoutRoles(t *testing.T) {
	out := Dashboard("x", &analysis.Dashboard{})
	if !strings.Contains(out, "No year column found") || !strings.Contains(out, "No journal or source column found") {
		t.Fatalf("expected omission notes:\n%s", out)
	}
}

func TestColumns(t *testing.T) {
	out := Columns([]analysis.ColumnInfo{
		{Name: "publish_year", Dtype: "int64", Role: classify.RoleYear, Missing: 1},
		{Name: "title", Dtype: "object", Role: classify.RoleUnclassified},
	})
	for _, want := range []string{"publish_year", "int64", "year", "title", "object"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "unclassified") {
		t.Fatalf("unclassified role should be blank")
	}
}
