// Package report renders a Markdown analysis report from a pipeline result
// and an optional narrative summary, and writes it to a timestamped file.
//
// The report is the downloadable artifact counterpart of the dashboard: it
// must always render, even when the narrative collaborator is disabled or
// failed (the narrative section then carries the placeholder text).
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"hrpulse/internal/hr"
)

// Generator writes analysis reports. Now is the clock used for the report
// timestamp and filename; tests can freeze it.
type Generator struct {
	OutputDir string
	Now       func() time.Time
}

// NewGenerator creates a Generator writing into outputDir.
func NewGenerator(outputDir string) *Generator {
	return &Generator{OutputDir: outputDir, Now: time.Now}
}

// severityRank orders issues from most to least severe in the issue table.
var severityRank = map[hr.Severity]int{
	hr.SeverityCritical: 0,
	hr.SeverityHigh:     1,
	hr.SeverityMedium:   2,
	hr.SeverityLow:      3,
}

// Render produces the Markdown report body.
func (g *Generator) Render(result hr.Result, narrative string) string {
	now := g.Now()

	var sb strings.Builder
	sb.WriteString("# Human Capital Dashboard Analysis Report\n\n")
	fmt.Fprintf(&sb, "Generated on: %s\n\n", now.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&sb, "Run ID: %s — %d records, %d issues\n\n",
		result.RunID, len(result.Records), len(result.Issues))

	sb.WriteString("## 1. KPI Summary\n\n")
	sb.WriteString(renderKPITable(result.KPIs))
	sb.WriteString("\n\n")

	sb.WriteString("## 2. Data Quality Issues\n\n")
	if len(result.Issues) == 0 {
		sb.WriteString("No issues detected.\n")
	} else {
		sb.WriteString(renderIssueTable(result.Issues))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	sb.WriteString("## 3. Insights & Recommendations\n\n")
	sb.WriteString(strings.TrimSpace(narrative))
	sb.WriteString("\n")

	return sb.String()
}

// Write renders the report and writes it under OutputDir, creating the
// directory if needed. Returns the path of the written file.
func (g *Generator) Write(result hr.Result, narrative string) (string, error) {
	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}

	name := fmt.Sprintf("HR_Analysis_Report_%s.md", g.Now().Format("20060102_150405"))
	path := filepath.Join(g.OutputDir, name)

	if err := os.WriteFile(path, []byte(g.Render(result, narrative)), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}

	return path, nil
}

// renderKPITable renders the KPI snapshot as a Markdown table.
func renderKPITable(kpis hr.KPISnapshot) string {
	avgAge := "undefined"
	if kpis.AverageAge.Valid {
		avgAge = fmt.Sprintf("%.1f", kpis.AverageAge.Float64)
	}

	t := table.NewWriter()
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRows([]table.Row{
		{"Total Headcount", kpis.Headcount},
		{"Attrition Rate", fmt.Sprintf("%.2f%%", kpis.AttritionRate)},
		{"Average Age", avgAge},
		{"Average Tenure", fmt.Sprintf("%.1f years", kpis.AverageTenure)},
	})
	for _, dept := range sortedDepartments(kpis.DeptHeadcount) {
		t.AppendRow(table.Row{"Headcount: " + dept, kpis.DeptHeadcount[dept]})
	}

	return t.RenderMarkdown()
}

// renderIssueTable renders the issue list as a Markdown table, most severe
// first, preserving detection order within a severity.
func renderIssueTable(issues []hr.Issue) string {
	sorted := make([]hr.Issue, len(issues))
	copy(sorted, issues)
	sort.SliceStable(sorted, func(i, j int) bool {
		return severityRank[sorted[i].Severity] < severityRank[sorted[j].Severity]
	})

	t := table.NewWriter()
	t.AppendHeader(table.Row{"Employee", "Issue", "Value", "Severity"})
	for _, i := range sorted {
		t.AppendRow(table.Row{i.EmployeeID, i.Type, i.Value, i.Severity})
	}

	return t.RenderMarkdown()
}

// sortedDepartments returns department names in stable alphabetical order.
func sortedDepartments(counts map[string]int) []string {
	depts := make([]string, 0, len(counts))
	for d := range counts {
		depts = append(depts, d)
	}
	sort.Strings(depts)
	return depts
}
