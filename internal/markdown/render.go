// Package markdown renders collected SARIF findings as a Markdown report for CI job summaries.
package markdown

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/scan-io-git/sarif2md/internal/sarif"
)

const (
	noIssues           = "No issues found."
	noCategorizedIssue = "No categorized issues found."

	summaryHeader    = "| Severity | Issues |\n| --- | --- |"
	issueTableHeader = "| Rule | Severity | Message | Location | Tags | Help |\n| --- | --- | --- | --- | --- | --- |"
)

// severityOrder ranks severity labels in the summary table. Labels not listed sort after these.
var severityOrder = []string{
	"Critical",
	"High",
	"Moderate",
	"Medium",
	"Low",
	"Note",
	"Warning",
	"Error",
	"Info",
	"Information",
	"Unknown",
}

// Options controls optional parts of the document.
type Options struct {
	// SourcePath, when set, is shown under the title.
	SourcePath string
}

// FromReport collects and renders report. A report without a run sequence is rejected before anything is rendered.
func FromReport(report *sarif.Report, opts Options) (string, error) {
	if report == nil || report.Runs == nil {
		return "", sarif.ErrNoRuns
	}
	return Render(sarif.Collect(report.Runs), opts), nil
}

// Render builds the Markdown document for c.
func Render(c *sarif.Collection, opts Options) string {
	lines := []string{"# SARIF Report"}

	if opts.SourcePath != "" {
		lines = append(lines, "", fmt.Sprintf("*Source: %s*", EscapeHTML(opts.SourcePath)))
	}

	sections := buildCategorySections(c.Categories)
	if sections == "" {
		sections = noCategorizedIssue
	}

	lines = append(lines,
		"",
		"## Summary",
		"",
		buildSummaryTable(c.Counts, c.Total),
		"",
		"## Problem Categories",
		"",
		sections,
	)

	return strings.Join(lines, "\n")
}

// SortSeverities orders labels by severityOrder; unlisted labels follow, alphabetically.
func SortSeverities(labels []string) {
	rank := make(map[string]int, len(severityOrder))
	for i, s := range severityOrder {
		rank[s] = i
	}
	col := collate.New(language.Und)

	sort.SliceStable(labels, func(i, j int) bool {
		ri, iKnown := rank[labels[i]]
		rj, jKnown := rank[labels[j]]
		switch {
		case iKnown && jKnown:
			return ri < rj
		case iKnown != jKnown:
			return iKnown
		default:
			return col.CompareString(labels[i], labels[j]) < 0
		}
	})
}

func buildSummaryTable(counts map[string]int, total int) string {
	if len(counts) == 0 {
		return noIssues
	}

	severities := make([]string, 0, len(counts))
	for severity := range counts {
		severities = append(severities, severity)
	}
	SortSeverities(severities)

	rows := []string{summaryHeader}
	for _, severity := range severities {
		rows = append(rows, fmt.Sprintf("| %s | %d |", EscapeTableCell(severity), counts[severity]))
	}
	rows = append(rows, fmt.Sprintf("| Total | %d |", total))

	return strings.Join(rows, "\n")
}

// sortCategories orders by descending issue count, then by label.
func sortCategories(categories []*sarif.Category) []*sarif.Category {
	sorted := make([]*sarif.Category, len(categories))
	copy(sorted, categories)
	col := collate.New(language.Und)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if len(a.Issues) != len(b.Issues) {
			return len(a.Issues) > len(b.Issues)
		}
		return col.CompareString(a.Label, b.Label) < 0
	})
	return sorted
}

func buildCategorySections(categories []*sarif.Category) string {
	sections := make([]string, 0, len(categories))
	for _, category := range sortCategories(categories) {
		sections = append(sections, buildCategorySection(category))
	}
	return strings.Join(sections, "\n")
}

func buildCategorySection(category *sarif.Category) string {
	rows := make([]string, 0, len(category.Issues))
	for _, issue := range category.Issues {
		rows = append(rows, buildIssueRow(issue))
	}

	return strings.Join([]string{
		"<details>",
		fmt.Sprintf("<summary>%s (%d)</summary>", EscapeHTML(category.Label), len(category.Issues)),
		"",
		issueTableHeader,
		strings.Join(rows, "\n"),
		"",
		"</details>",
		"",
	}, "\n")
}

func buildIssueRow(issue *sarif.Issue) string {
	ruleCell := fmt.Sprintf("**%s**", EscapeTableCell(issue.RuleID))
	if issue.RuleDescription != "" {
		ruleCell += lineBreak + EscapeTableCell(issue.RuleDescription)
	}

	tagsCell := ""
	if len(issue.Tags) > 0 {
		tagsCell = EscapeTableCell(strings.Join(issue.Tags, ", "))
	}

	helpCell := ""
	if issue.HelpURI != "" {
		helpCell = fmt.Sprintf("[Docs](%s)", EscapeTableCell(issue.HelpURI))
	}

	return fmt.Sprintf("| %s | %s | %s | %s | %s | %s |",
		ruleCell,
		EscapeTableCell(issue.Severity),
		EscapeTableCell(issue.Message),
		EscapeTableCell(issue.Location),
		tagsCell,
		helpCell,
	)
}
