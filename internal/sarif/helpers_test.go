package sarif

import (
	"testing"

	"github.com/owenrumney/go-sarif/v2/sarif"
	"github.com/stretchr/testify/require"
)

// mustParse decodes a SARIF document literal.
func mustParse(t *testing.T, doc string) *Report {
	t.Helper()
	report, err := ParseReport([]byte(doc))
	require.NoError(t, err)
	return report
}

// mustParseRun decodes a single run literal.
func mustParseRun(t *testing.T, run string) *Run {
	t.Helper()
	report := mustParse(t, `{"version": "2.1.0", "runs": [`+run+`]}`)
	require.Len(t, report.Runs, 1)
	return report.Runs[0]
}

// mustParseResult decodes a single result literal.
func mustParseResult(t *testing.T, result string) *sarif.Result {
	t.Helper()
	run := mustParseRun(t, `{"tool": {"driver": {"name": "t"}}, "results": [`+result+`]}`)
	require.Len(t, run.Results, 1)
	return run.Results[0]
}
