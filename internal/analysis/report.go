package analysis

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/paperdash/internal/classify"
	"github.com/KaramelBytes/paperdash/internal/dataset"
	"github.com/KaramelBytes/paperdash/internal/utils"
)

// JournalTableSize is the fixed length of the top journals table.
const JournalTableSize = 10

// Dashboard bundles everything the dashboard page shows for one table.
type Dashboard struct {
	File    string         `json:"file"`
	Summary Summary        `json:"summary"`
	Roles   classify.Roles `json:"roles"`
	// Series is nil when no year column was found.
	Series []Count `json:"time_series"`
	// TopJournals follows the requested n; JournalTable is always the top 10.
	// Both are nil when no journal column was found.
	TopN         int     `json:"top_n"`
	TopJournals  []Count `json:"top_journals"`
	JournalTable []Count `json:"journal_table"`
}

// BuildDashboard classifies the columns of t and runs every aggregation.
func BuildDashboard(t *dataset.Table, topN int) *Dashboard {
	if topN < 1 {
		topN = 1
	}
	d := &Dashboard{
		File:    t.Name,
		Summary: Summarize(t),
		Roles:   classify.Classify(t.ColumnNames()),
		TopN:    topN,
	}
	if d.Roles.HasYear() {
		d.Series = TimeSeries(t, d.Roles.Year)
	}
	if d.Roles.HasJournal() {
		d.TopJournals = TopN(t, d.Roles.Journal, topN)
		d.JournalTable = TopN(t, d.Roles.Journal, JournalTableSize)
	}
	return d
}

// Markdown renders the dashboard as a plain document for export.
func (d *Dashboard) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if d.File != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", d.File))
	}
	b.WriteString(fmt.Sprintf("Total Papers: %s\n", utils.FormatThousands(d.Summary.Rows)))
	b.WriteString(fmt.Sprintf("Columns: %d\n", d.Summary.Columns))
	b.WriteString(fmt.Sprintf("Missing Values: %s\n", utils.FormatThousands(d.Summary.Nulls)))
	b.WriteString(fmt.Sprintf("Data Types: %d\n", d.Summary.Dtypes))

	b.WriteString("\n[COLUMNS]\n")
	b.WriteString(fmt.Sprintf("- year: %s\n", roleName(d.Roles.Year)))
	b.WriteString(fmt.Sprintf("- journal: %s\n", roleName(d.Roles.Journal)))

	if d.Series != nil {
		b.WriteString("\n[PUBLICATIONS OVER TIME]\n")
		b.WriteString("| Year | Papers |\n| --- | --- |\n")
		for _, c := range d.Series {
			b.WriteString(fmt.Sprintf("| %s | %d |\n", safeVal(c.Key), c.Count))
		}
	}
	if d.JournalTable != nil {
		b.WriteString(fmt.Sprintf("\n[TOP %d JOURNALS]\n", JournalTableSize))
		b.WriteString("| Journal | Papers |\n| --- | --- |\n")
		for _, c := range d.JournalTable {
			b.WriteString(fmt.Sprintf("| %s | %d |\n", safeVal(DisplayLabel(c.Key)), c.Count))
		}
	}
	if len(d.Summary.MissingByColumn) > 0 {
		b.WriteString("\n[MISSING VALUES]\n")
		for _, m := range d.Summary.MissingByColumn {
			b.WriteString(fmt.Sprintf("- %s: %d\n", m.Column, m.Missing))
		}
	}
	var notes []string
	if !d.Roles.HasYear() {
		notes = append(notes, "no year column found; time series omitted")
	}
	if !d.Roles.HasJournal() {
		notes = append(notes, "no journal or source column found; journal charts omitted")
	}
	if len(notes) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, n := range notes {
			b.WriteString("- ")
			b.WriteString(n)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func roleName(col string) string {
	if col == "" {
		return "(none)"
	}
	return col
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
