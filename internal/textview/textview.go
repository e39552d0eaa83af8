// Package textview renders dashboard data as styled terminal text.
package textview

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/KaramelBytes/paperdash/internal/analysis"
	"github.com/KaramelBytes/paperdash/internal/utils"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	sectionStyle = lipgloss.NewStyle().Bold(true).MarginTop(1)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle   = lipgloss.NewStyle().Bold(true).PaddingRight(4)
	noteStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	numStyle     = cellStyle.Align(lipgloss.Right)
)

// Dashboard renders the metrics, time series and journal tables.
func Dashboard(title string, d *analysis.Dashboard) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	metrics := []struct{ label, value string }{
		{"Total Papers", utils.FormatThousands(d.Summary.Rows)},
		{"Columns", strconv.Itoa(d.Summary.Columns)},
		{"Missing Values", utils.FormatThousands(d.Summary.Nulls)},
		{"Data Types", strconv.Itoa(d.Summary.Dtypes)},
	}
	blocks := make([]string, len(metrics))
	for i, m := range metrics {
		blocks[i] = lipgloss.JoinVertical(lipgloss.Left, labelStyle.Render(m.label), valueStyle.Render(m.value))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, blocks...))
	b.WriteString("\n")

	if d.Series != nil {
		b.WriteString(sectionStyle.Render("Publications Over Time"))
		b.WriteString("\n")
		b.WriteString(countTable(d.Roles.Year, d.Series, false))
		b.WriteString("\n")
	} else {
		b.WriteString(noteStyle.Render("⚠ No year column found; time series omitted"))
		b.WriteString("\n")
	}
	if d.TopJournals != nil {
		b.WriteString(sectionStyle.Render(fmt.Sprintf("Top %d Publishing Journals", d.TopN)))
		b.WriteString("\n")
		b.WriteString(countTable(d.Roles.Journal, d.TopJournals, true))
		b.WriteString("\n")
	} else {
		b.WriteString(noteStyle.Render("⚠ No journal or source column found; journal rankings omitted"))
		b.WriteString("\n")
	}
	if len(d.Summary.MissingByColumn) > 0 {
		b.WriteString(sectionStyle.Render("Missing Values (Top 10)"))
		b.WriteString("\n")
		rows := make([][]string, len(d.Summary.MissingByColumn))
		for i, m := range d.Summary.MissingByColumn {
			rows[i] = []string{m.Column, utils.FormatThousands(m.Missing)}
		}
		b.WriteString(newTable([]string{"column", "missing"}, rows))
		b.WriteString("\n")
	}
	return b.String()
}

// Columns renders the column listing.
func Columns(cols []analysis.ColumnInfo) string {
	rows := make([][]string, len(cols))
	for i, c := range cols {
		role := string(c.Role)
		if role == "unclassified" {
			role = ""
		}
		rows[i] = []string{c.Name, c.Dtype, role, utils.FormatThousands(c.Missing)}
	}
	return newTable([]string{"column", "dtype", "role", "missing"}, rows)
}

func countTable(keyHeader string, counts []analysis.Count, truncate bool) string {
	rows := make([][]string, len(counts))
	for i, c := range counts {
		key := c.Key
		if truncate {
			key = analysis.DisplayLabel(key)
		}
		rows[i] = []string{key, utils.FormatThousands(c.Count)}
	}
	return newTable([]string{keyHeader, "count"}, rows)
}

// newTable right-aligns every column after the first whose header is a count.
func newTable(headers []string, rows [][]string) string {
	numeric := map[int]bool{}
	for i, h := range headers {
		if i > 0 && (h == "count" || h == "missing") {
			numeric[i] = true
		}
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case numeric[col]:
				return numStyle
			default:
				return cellStyle
			}
		})
	return t.String()
}
