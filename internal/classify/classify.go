// Package classify guesses the semantic role of dataset columns from their
// names alone.
//
// Matching is a case-insensitive substring test and the first column in
// declaration order wins. Names like "journal_impact_factor" are matched as
// the journal column; the heuristic is kept simple so results stay
// reproducible.
package classify

import "strings"

// Role is the inferred meaning of a column.
type Role string

const (
	RoleYear         Role = "year"
	RoleJournal      Role = "journal"
	RoleUnclassified Role = "unclassified"
)

var (
	yearKeywords = []string{"year"}
	// Checked in priority order for each column.
	journalKeywords = []string{"journal", "source"}
)

// Roles holds the selected column per role. An empty name means no column
// matched.
type Roles struct {
	Year    string `json:"year,omitempty"`
	Journal string `json:"journal,omitempty"`
}

func (r Roles) HasYear() bool    { return r.Year != "" }
func (r Roles) HasJournal() bool { return r.Journal != "" }

// Descriptor pairs a column name with its inferred role.
type Descriptor struct {
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// Classify picks the year and journal/source columns.
func Classify(columns []string) Roles {
	var r Roles
	for _, c := range columns {
		if r.Year == "" && matchKeyword(c, yearKeywords) != "" {
			r.Year = c
		}
		if r.Journal == "" && matchKeyword(c, journalKeywords) != "" {
			r.Journal = c
		}
	}
	return r
}

// Describe returns a descriptor for every column. A column chosen for a role
// by Classify carries that role; every other column is unclassified, even when
// its name would also match.
func Describe(columns []string) []Descriptor {
	roles := Classify(columns)
	out := make([]Descriptor, len(columns))
	for i, c := range columns {
		role := RoleUnclassified
		switch c {
		case roles.Year:
			role = RoleYear
		case roles.Journal:
			role = RoleJournal
		}
		out[i] = Descriptor{Name: c, Role: role}
	}
	return out
}

// matchKeyword returns the first keyword contained in the lowercased name.
func matchKeyword(name string, keywords []string) string {
	lower := strings.ToLower(name)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return kw
		}
	}
	return ""
}
