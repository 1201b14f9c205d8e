package sarif

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixturePath = "testdata/qodana.sarif.json"

func mustReadFixture(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(fixturePath)
	require.NoError(t, err)
	return string(data)
}

func TestReadReport(t *testing.T) {
	report, err := ReadReport(fixturePath, hclog.NewNullLogger(), ReadOptions{})
	require.NoError(t, err)
	require.Len(t, report.Runs, 2)
	assert.Len(t, report.Runs[0].Results, 2)
	assert.Len(t, report.Runs[1].Results, 1)
}

func TestReadReportExcludeSuppressed(t *testing.T) {
	report, err := ReadReport(fixturePath, hclog.NewNullLogger(), ReadOptions{ExcludeSuppressed: true})
	require.NoError(t, err)
	require.Len(t, report.Runs[0].Results, 1)
	assert.Equal(t, "PyUnresolvedReferences", *report.Runs[0].Results[0].RuleID)
	assert.Len(t, report.Runs[1].Results, 1)
}

func TestReadReportErrors(t *testing.T) {
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.sarif")
	require.NoError(t, os.WriteFile(broken, []byte(`{"runs": [`), 0o644))

	tests := []struct {
		name string
		path string
	}{
		{name: "missing file", path: filepath.Join(dir, "missing.sarif")},
		{name: "directory", path: dir},
		{name: "invalid JSON", path: broken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadReport(tt.path, hclog.NewNullLogger(), ReadOptions{})
			require.Error(t, err)

			var readErr *ReadError
			require.True(t, errors.As(err, &readErr))
			assert.Equal(t, tt.path, readErr.Path)
			assert.Contains(t, err.Error(), "failed to read SARIF input at "+tt.path)
		})
	}
}

func TestParseReportWithoutRuns(t *testing.T) {
	for _, doc := range []string{`{}`, `{"version": "2.1.0"}`, `{"runs": null}`, `null`} {
		report, err := ParseReport([]byte(doc))
		require.NoError(t, err, doc)
		assert.Nil(t, report.Runs, doc)
	}

	report, err := ParseReport([]byte(`{"runs": []}`))
	require.NoError(t, err)
	assert.NotNil(t, report.Runs)
	assert.Empty(t, report.Runs)
}

func TestParseReportToleratesUnsetIndexes(t *testing.T) {
	report, err := ParseReport([]byte(`{"runs": [{
		"tool": {"driver": {"name": "t", "rules": [
			{"id": "R1", "relationships": [{"target": {"id": "PYTHON.SECURITY", "index": -1}}]}
		]}},
		"results": [{
			"ruleId": "R1",
			"ruleIndex": -1,
			"rank": -1,
			"message": {"text": "kept"},
			"locations": [{"id": -1, "physicalLocation": {"artifactLocation": {"uri": "a.py", "index": -1}, "region": {"startLine": 3}}}]
		}]
	}]}`))
	require.NoError(t, err)
	require.Len(t, report.Runs, 1)
	require.Len(t, report.Runs[0].Results, 1)

	result := report.Runs[0].Results[0]
	assert.Nil(t, result.RuleIndex)
	assert.Equal(t, "a.py:3", FormatLocation(result.Locations[0]))
	assert.Equal(t, [][]string{{"PYTHON.SECURITY"}}, report.Runs[0].RuleCategories)
}

func TestParseReportKeepsValidIndexes(t *testing.T) {
	report, err := ParseReport([]byte(`{"runs": [{"tool": {"driver": {"name": "t"}}, "results": [{"ruleId": "R", "ruleIndex": 4, "message": {"text": ""}}]}]}`))
	require.NoError(t, err)
	require.NotNil(t, report.Runs[0].Results[0].RuleIndex)
	assert.Equal(t, uint(4), *report.Runs[0].Results[0].RuleIndex)
}

func TestParseReportRejectsMalformedJSON(t *testing.T) {
	for _, doc := range []string{`{"runs": [`, `{"runs": []} trailing`, `[1, 2]`} {
		_, err := ParseReport([]byte(doc))
		assert.ErrorContains(t, err, "invalid JSON", doc)
	}
}

func TestParseReportWrapsRuns(t *testing.T) {
	report := mustParse(t, `{"runs": [null, {"tool": {"driver": {"name": "t"}}, "results": []}]}`)
	require.Len(t, report.Runs, 2)
	assert.Nil(t, report.Runs[0])
	assert.Same(t, report.Document.Runs[1], report.Runs[1].Run)
}
