package markdown

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scan-io-git/sarif2md/internal/sarif"
)

func parse(t *testing.T, doc string) *sarif.Report {
	t.Helper()
	report, err := sarif.ParseReport([]byte(doc))
	require.NoError(t, err)
	return report
}

func TestFromReportMatchesGolden(t *testing.T) {
	data, err := os.ReadFile("testdata/qodana.sarif.json")
	require.NoError(t, err)
	expected, err := os.ReadFile("testdata/expected-qodana-report.md")
	require.NoError(t, err)

	markdown, err := FromReport(parse(t, string(data)), Options{SourcePath: "testdata/qodana.sarif.json"})
	require.NoError(t, err)
	assert.Equal(t, strings.TrimSpace(string(expected)), strings.TrimSpace(markdown))
}

func TestFromReportTwoRuns(t *testing.T) {
	report := parse(t, `{
		"version": "2.1.0",
		"runs": [
			{
				"tool": {"driver": {"name": "qodana", "rules": [
					{"id": "PyEval", "relationships": [{"target": {"id": "PYTHON.SECURITY"}}]}
				]}},
				"results": [
					{"ruleId": "PyEval", "message": {"text": "eval used"}, "properties": {"qodanaSeverity": "CRITICAL"}}
				]
			},
			{
				"tool": {"driver": {"name": "other"}},
				"results": [
					{"ruleId": "Nope", "message": {"text": "no rule"}}
				]
			}
		]
	}`)

	markdown, err := FromReport(report, Options{})
	require.NoError(t, err)

	assert.Contains(t, markdown, "| Critical | 1 |\n| Unknown | 1 |\n| Total | 2 |")
	python := strings.Index(markdown, "<summary>Python › Security (1)</summary>")
	uncategorized := strings.Index(markdown, "<summary>Uncategorized (1)</summary>")
	require.NotEqual(t, -1, python)
	require.NotEqual(t, -1, uncategorized)
	assert.Less(t, python, uncategorized)
	assert.NotContains(t, markdown, "*Source:")
}

func TestFromReportMultiCategoryRowsAreIdentical(t *testing.T) {
	markdown, err := FromReport(parse(t, `{"runs": [{
		"tool": {"driver": {"name": "t", "rules": [
			{"id": "R", "relationships": [{"target": {"id": "A"}}, {"target": {"id": "B"}}]}
		]}},
		"results": [{"ruleId": "R", "ruleIndex": -1, "level": "error", "message": {"text": "shared"}}]
	}]}`), Options{})
	require.NoError(t, err)

	row := "| **R** | Error | shared | Unknown location |  |  |"
	assert.Equal(t, 2, strings.Count(markdown, row))
	assert.Contains(t, markdown, "<summary>A (1)</summary>")
	assert.Contains(t, markdown, "<summary>B (1)</summary>")
	assert.NotContains(t, markdown, "Uncategorized")
}

func TestFromReportWithoutRuns(t *testing.T) {
	for _, doc := range []string{`{}`, `{"runs": null}`} {
		markdown, err := FromReport(parse(t, doc), Options{})
		assert.True(t, errors.Is(err, sarif.ErrNoRuns), doc)
		assert.Empty(t, markdown)
	}

	_, err := FromReport(nil, Options{})
	assert.ErrorIs(t, err, sarif.ErrNoRuns)
}

func TestFromReportWithoutResults(t *testing.T) {
	markdown, err := FromReport(parse(t, `{"runs": [{"tool": {"driver": {"name": "t"}}, "results": []}]}`), Options{})
	require.NoError(t, err)

	assert.Equal(t, strings.Join([]string{
		"# SARIF Report",
		"",
		"## Summary",
		"",
		"No issues found.",
		"",
		"## Problem Categories",
		"",
		"No categorized issues found.",
	}, "\n"), markdown)

	markdown, err = FromReport(parse(t, `{"runs": []}`), Options{})
	require.NoError(t, err)
	assert.Contains(t, markdown, "No issues found.")
	assert.Contains(t, markdown, "No categorized issues found.")
	assert.NotContains(t, markdown, "| --- |")
}

func TestRenderSourceLineIsEscaped(t *testing.T) {
	markdown := Render(&sarif.Collection{Counts: map[string]int{}}, Options{SourcePath: "reports/<a&b>.sarif"})
	assert.True(t, strings.HasPrefix(markdown, "# SARIF Report\n\n*Source: reports/&lt;a&amp;b&gt;.sarif*\n\n## Summary"))
}

func TestRenderMultiCategoryIssueIsIdentical(t *testing.T) {
	issue := &sarif.Issue{
		Severity: "High",
		RuleID:   "R|1",
		Message:  "multi\nline",
		Location: "x.go:1",
		HelpURI:  "https://docs.example.com/R1",
		Tags:     []string{"a", "b"},
	}
	c := &sarif.Collection{
		Counts: map[string]int{"High": 1},
		Total:  1,
		Categories: []*sarif.Category{
			{ID: "A", Label: "A", Issues: []*sarif.Issue{issue}},
			{ID: "B", Label: "B", Issues: []*sarif.Issue{issue}},
		},
	}

	markdown := Render(c, Options{})
	row := `| **R\|1** | High | multi<br>line | x.go:1 | a, b | [Docs](https://docs.example.com/R1) |`
	assert.Equal(t, 2, strings.Count(markdown, row))
}

func TestSortCategories(t *testing.T) {
	issues := func(n int) []*sarif.Issue {
		out := make([]*sarif.Issue, n)
		for i := range out {
			out[i] = &sarif.Issue{}
		}
		return out
	}

	sorted := sortCategories([]*sarif.Category{
		{Label: "Uncategorized", Issues: issues(1)},
		{Label: "beta", Issues: issues(1)},
		{Label: "Alpha", Issues: issues(1)},
		{Label: "Most", Issues: issues(5)},
	})

	var labels []string
	for _, c := range sorted {
		labels = append(labels, c.Label)
	}
	assert.Equal(t, []string{"Most", "Alpha", "beta", "Uncategorized"}, labels)
}

func TestSortSeverities(t *testing.T) {
	labels := []string{"Zeta", "Unknown", "Low", "alpha", "Critical", "Warning", "Information", "High"}
	SortSeverities(labels)
	assert.Equal(t, []string{"Critical", "High", "Low", "Warning", "Information", "Unknown", "alpha", "Zeta"}, labels)
}

func TestSummaryTable(t *testing.T) {
	assert.Equal(t, "No issues found.", buildSummaryTable(map[string]int{}, 0))
	assert.Equal(t,
		"| Severity | Issues |\n| --- | --- |\n| High | 2 |\n| Note | 1 |\n| Custom | 4 |\n| Total | 7 |",
		buildSummaryTable(map[string]int{"Custom": 4, "Note": 1, "High": 2}, 7),
	)
}
