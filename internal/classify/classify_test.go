package classify

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
		want    Roles
	}{
		{
			name:    "bibliographic",
			columns: []string{"cord_uid", "Title", "Publish Year", "Journal Name", "Abstract"},
			want:    Roles{Year: "Publish Year", Journal: "Journal Name"},
		},
		{
			name:    "no_matches",
			columns: []string{"Title", "Abstract"},
			want:    Roles{},
		},
		{
			name:    "source_keyword",
			columns: []string{"title", "source_x", "YEAR"},
			want:    Roles{Year: "YEAR", Journal: "source_x"},
		},
		{
			name:    "first_column_wins",
			columns: []string{"source_x", "journal", "pub_year", "year"},
			want:    Roles{Year: "pub_year", Journal: "source_x"},
		},
		{
			name:    "known_false_positive",
			columns: []string{"journal_impact_factor", "journal"},
			want:    Roles{Journal: "journal_impact_factor"},
		},
		{
			name:    "both_keywords_in_one_name",
			columns: []string{"Journal Source"},
			want:    Roles{Journal: "Journal Source"},
		},
		{
			name:    "empty",
			columns: nil,
			want:    Roles{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.columns)
			if got != tt.want {
				t.Fatalf("Classify(%v) = %+v, want %+v", tt.columns, got, tt.want)
			}
		})
	}
}

func TestClassifyRolePresence(t *testing.T) {
	r := Classify([]string{"Title", "Abstract"})
	if r.HasYear() || r.HasJournal() {
		t.Fatalf("expected no roles, got %+v", r)
	}
}

func TestMatchKeywordPriority(t *testing.T) {
	if kw := matchKeyword("Source Journal", journalKeywords); kw != "journal" {
		t.Fatalf("keyword = %q, want journal first", kw)
	}
}

func TestDescribe(t *testing.T) {
	got := Describe([]string{"title", "publish_time_year", "journal", "source_x"})
	want := []Role{RoleUnclassified, RoleYear, RoleJournal, RoleUnclassified}
	if len(got) != len(want) {
		t.Fatalf("len = %d", len(got))
	}
	for i, d := range got {
		if d.Role != want[i] {
			t.Errorf("%s role = %s, want %s", d.Name, d.Role, want[i])
		}
	}
}
