package analysis

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/paperdash/internal/dataset"
)

const metadataCSV = `cord_uid,title,publish_year,journal,impact
a1,Alpha,2020,Lancet,1.5
a2,Beta,2019,Nature,2.5
a3,Gamma,2020,Lancet,
a4,Delta,,Science,3.5
a5,Epsilon,2021,Nature,4.5
a6,Zeta,2020,,5.5
a7,Eta,2019,Lancet,6.5
`

func loadTable(t *testing.T, content string) *dataset.Table {
	t.Helper()
	p := filepath.Join(t.TempDir(), "metadata.csv")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	tbl, err := dataset.Load(p, dataset.Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	t.Cleanup(tbl.Release)
	return tbl
}

func nonNull(t *testing.T, tbl *dataset.Table, col string) int {
	t.Helper()
	i, ok := tbl.Index(col)
	if !ok {
		t.Fatalf("missing column %s", col)
	}
	return tbl.NumRows() - tbl.NullCount(i)
}

func TestTimeSeries(t *testing.T) {
	tbl := loadTable(t, metadataCSV)
	got := TimeSeries(tbl, "publish_year")
	want := []Count{{"2019", 2}, {"2020", 3}, {"2021", 1}}
	if len(got) != len(want) {
		t.Fatalf("series = %#v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("series[%d] = %#v, want %#v", i, got[i], want[i])
		}
	}
	if Total(got) != nonNull(t, tbl, "publish_year") {
		t.Fatalf("total %d != non-null %d", Total(got), nonNull(t, tbl, "publish_year"))
	}
	if TimeSeries(tbl, "nope") != nil {
		t.Fatalf("expected nil for absent column")
	}
}

func TestTimeSeriesMixedKeys(t *testing.T) {
	tbl := loadTable(t, "year\n2021\nunknown\n2009\n2021\nearly\n")
	got := TimeSeries(tbl, "year")
	keys := make([]string, len(got))
	for i, c := range got {
		keys[i] = c.Key
	}
	if strings.Join(keys, ",") != "2009,2021,early,unknown" {
		t.Fatalf("order = %v", keys)
	}
}

func TestTopN(t *testing.T) {
	tbl := loadTable(t, metadataCSV)
	got := TopN(tbl, "journal", 2)
	want := []Count{{"Lancet", 3}, {"Nature", 2}}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("TopN = %#v, want %#v", got, want)
	}

	for _, n := range []int{-3, 0, 1, 2, 5, 50} {
		res := TopN(tbl, "journal", n)
		limit := n
		if limit < 1 {
			limit = 1
		}
		if len(res) > limit {
			t.Fatalf("n=%d: %d entries", n, len(res))
		}
		for i := 1; i < len(res); i++ {
			if res[i].Count > res[i-1].Count {
				t.Fatalf("n=%d: counts increase at %d: %#v", n, i, res)
			}
		}
		if Total(res) > nonNull(t, tbl, "journal") {
			t.Fatalf("n=%d: total exceeds non-null", n)
		}
	}
	if TopN(tbl, "nope", 5) != nil {
		t.Fatalf("expected nil for absent column")
	}
}

func TestTopNTiesKeepFirstSeen(t *testing.T) {
	tbl := loadTable(t, "source_x\nPMC\nMedline\nWHO\nMedline\nPMC\nWHO\n")
	got := TopN(tbl, "source_x", 3)
	if got[0].Key != "PMC" || got[1].Key != "Medline" || got[2].Key != "WHO" {
		t.Fatalf("tie order = %#v", got)
	}
}

func TestLongJournalGroupsByFullValue(t *testing.T) {
	long := strings.Repeat("J", 45)
	other := strings.Repeat("J", 40) + "Other"
	tbl := loadTable(t, "journal\n"+long+"\n"+long+"\n"+other+"\n")
	got := TopN(tbl, "journal", 10)
	if len(got) != 2 || got[0].Key != long || got[0].Count != 2 {
		t.Fatalf("TopN = %#v", got)
	}
	label := DisplayLabel(got[0].Key)
	if label != strings.Repeat("J", 40)+"..." {
		t.Fatalf("label = %q", label)
	}
	if DisplayLabel("Lancet") != "Lancet" {
		t.Fatalf("short labels must be unchanged")
	}
}

func TestSummarize(t *testing.T) {
	tbl := loadTable(t, metadataCSV)
	s := Summarize(tbl)
	if s.Rows != 7 || s.Columns != 5 {
		t.Fatalf("shape = %dx%d", s.Rows, s.Columns)
	}
	if s.Nulls != 3 {
		t.Fatalf("nulls = %d, want 3", s.Nulls)
	}
	// object, int64, float64
	if s.Dtypes != 3 {
		t.Fatalf("dtypes = %d, want 3", s.Dtypes)
	}
	wantCols := []string{"publish_year", "journal", "impact"}
	if len(s.MissingByColumn) != len(wantCols) {
		t.Fatalf("missing = %#v", s.MissingByColumn)
	}
	for i, c := range wantCols {
		if s.MissingByColumn[i].Column != c || s.MissingByColumn[i].Missing != 1 {
			t.Fatalf("missing[%d] = %#v", i, s.MissingByColumn[i])
		}
	}
}

func TestSummarizeNoMissing(t *testing.T) {
	tbl := loadTable(t, "title,year\nA,2020\nB,2021\n")
	s := Summarize(tbl)
	if s.Nulls != 0 || len(s.MissingByColumn) != 0 {
		t.Fatalf("summary = %#v", s)
	}
}

func TestSummarizeCapsMissingColumns(t *testing.T) {
	var header, row []string
	for i := 0; i < 12; i++ {
		header = append(header, "c"+strings.Repeat("x", i))
		row = append(row, "")
	}
	content := strings.Join(header, ",") + "\n" + strings.Join(row, ",") + "\n"
	tbl := loadTable(t, content)
	s := Summarize(tbl)
	if len(s.MissingByColumn) != MissingLimit {
		t.Fatalf("missing entries = %d, want %d", len(s.MissingByColumn), MissingLimit)
	}
	if s.MissingByColumn[0].Column != "c" {
		t.Fatalf("ties must keep column order, got %s first", s.MissingByColumn[0].Column)
	}
}

func TestDtypeCounts(t *testing.T) {
	tbl := loadTable(t, metadataCSV)
	got := DtypeCounts(tbl)
	if len(got) != 3 || got[0].Dtype != "object" || got[0].Columns != 3 {
		t.Fatalf("dtype counts = %#v", got)
	}
}

func TestHead(t *testing.T) {
	tbl := loadTable(t, metadataCSV)
	s := Head(tbl, []string{"title", "missing", "impact"}, 3)
	if strings.Join(s.Columns, ",") != "title,impact" {
		t.Fatalf("columns = %v", s.Columns)
	}
	if len(s.Rows) != 3 {
		t.Fatalf("rows = %d", len(s.Rows))
	}
	if s.Rows[2][0] != "Gamma" || s.Rows[2][1] != "" {
		t.Fatalf("row 2 = %#v", s.Rows[2])
	}
	if len(Head(tbl, []string{"title"}, 100).Rows) != 7 {
		t.Fatalf("head must stop at table length")
	}
	if len(Head(tbl, nil, 5).Rows) != 0 {
		t.Fatalf("no columns means no rows")
	}
}

func TestDescribeNumeric(t *testing.T) {
	tbl := loadTable(t, metadataCSV)
	stats := DescribeNumeric(tbl)
	if len(stats) != 2 {
		t.Fatalf("stats = %#v", stats)
	}
	imp := stats[1]
	if imp.Column != "impact" || imp.Count != 6 {
		t.Fatalf("impact = %#v", imp)
	}
	if imp.Min != 1.5 || imp.Max != 6.5 || imp.Mean != 4 {
		t.Fatalf("impact stats = %#v", imp)
	}
	if imp.Std <= 0 {
		t.Fatalf("std = %v", imp.Std)
	}
}

func TestDashboardMarkdown(t *testing.T) {
	tbl := loadTable(t, metadataCSV)
	d := BuildDashboard(tbl, 2)
	if d.Roles.Year != "publish_year" || d.Roles.Journal != "journal" {
		t.Fatalf("roles = %#v", d.Roles)
	}
	if len(d.TopJournals) != 2 || len(d.JournalTable) != 3 {
		t.Fatalf("top = %d, table = %d", len(d.TopJournals), len(d.JournalTable))
	}
	md := d.Markdown()
	for _, want := range []string{
		"[DATASET SUMMARY]",
		"File: metadata.csv",
		"Total Papers: 7",
		"| 2019 | 2 |",
		"| Lancet | 3 |",
		"- impact: 1",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q:\n%s", want, md)
		}
	}
	if strings.Contains(md, "[NOTES]") {
		t.Fatalf("unexpected notes:\n%s", md)
	}
}

func TestDashboardWithoutRoles(t *testing.T) {
	tbl := loadTable(t, "Title,Abstract\nA,x\n")
	d := BuildDashboard(tbl, 10)
	if d.Series != nil || d.TopJournals != nil || d.JournalTable != nil {
		t.Fatalf("expected no charts, got %#v", d)
	}
	md := d.Markdown()
	if !strings.Contains(md, "no year column found") || !strings.Contains(md, "no journal or source column found") {
		t.Fatalf("markdown notes missing:\n%s", md)
	}
}

func TestColumns(t *testing.T) {
	tbl := loadTable(t, metadataCSV)
	cols := Columns(tbl)
	if len(cols) != 5 {
		t.Fatalf("columns = %d", len(cols))
	}
	year := cols[2]
	if year.Name != "publish_year" || year.Dtype != "int64" || year.Role != "year" || year.Missing != 1 {
		t.Fatalf("year column = %#v", year)
	}
	if cols[0].Role != "unclassified" || cols[3].Role != "journal" {
		t.Fatalf("roles = %#v", cols)
	}
}
