package sarif

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/scan-io-git/sarif2md/pkg/shared/files"
)

// ErrNoRuns is returned for documents without a run sequence.
var ErrNoRuns = errors.New("provided SARIF content does not contain any runs")

// ReadError reports a SARIF input that could not be read or decoded.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read SARIF input at %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// ReadOptions tunes how a report is loaded.
type ReadOptions struct {
	// ExcludeSuppressed drops results that carry suppressions.
	ExcludeSuppressed bool
}

// Report is a decoded SARIF document.
type Report struct {
	Document *sarif.Report
	// Runs wraps Document.Runs and is nil when the document has no run sequence.
	Runs []*Run
}

// Run is a go-sarif run plus the rule relationships go-sarif does not decode.
type Run struct {
	*sarif.Run
	// RuleCategories holds the relationship targets of each rule, indexed like Tool.Driver.Rules.
	RuleCategories [][]string
}

// ParseReport decodes raw SARIF JSON. Index properties set to -1 ("not set") are dropped
// before decoding, since go-sarif models them as unsigned.
func ParseReport(data []byte) (*Report, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var tree interface{}
	if err := decoder.Decode(&tree); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if _, err := decoder.Token(); err != io.EOF {
		return nil, fmt.Errorf("invalid JSON: unexpected data after the top-level value")
	}
	dropUnsetIndexes(tree)

	normalized, err := json.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	var document sarif.Report
	if err := json.Unmarshal(normalized, &document); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	report := &Report{Document: &document}
	if document.Runs == nil {
		return report, nil
	}

	categories := ruleCategoriesFromTree(tree)
	report.Runs = make([]*Run, len(document.Runs))
	for i, run := range document.Runs {
		if run == nil {
			continue
		}
		report.Runs[i] = &Run{Run: run}
		if i < len(categories) {
			report.Runs[i].RuleCategories = categories[i]
		}
	}
	return report, nil
}

// ReadReport loads the SARIF document at inputPath.
func ReadReport(inputPath string, logger hclog.Logger, opts ReadOptions) (*Report, error) {
	if err := files.ValidatePath(inputPath); err != nil {
		return nil, &ReadError{Path: inputPath, Err: err}
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, &ReadError{Path: inputPath, Err: err}
	}

	report, err := ParseReport(data)
	if err != nil {
		return nil, &ReadError{Path: inputPath, Err: err}
	}
	logger.Debug("SARIF report decoded", "path", inputPath, "bytes", len(data), "runs", len(report.Runs))

	if opts.ExcludeSuppressed {
		removed := removeSuppressedResults(report)
		logger.Debug("suppressed results removed", "count", removed)
	}

	return report, nil
}

// removeSuppressedResults drops every result with a Suppressions entry and returns how many were dropped.
func removeSuppressedResults(report *Report) int {
	removed := 0
	for _, run := range report.Runs {
		if run == nil || run.Run == nil {
			continue
		}
		var filteredResults []*sarif.Result

		for _, result := range run.Results {
			if result != nil && len(result.Suppressions) == 0 {
				filteredResults = append(filteredResults, result)
				continue
			}
			removed++
		}

		run.Results = filteredResults
	}
	return removed
}
