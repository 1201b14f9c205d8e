package publish

import (
	"context"
	"fmt"
	"strings"

	"github.com/scan-io-git/sarif2md/pkg/shared/files"
)

// JobSummary appends the report to the GitHub Actions step summary file.
type JobSummary struct {
	Path string
}

// Publish appends markdown followed by a newline to the summary file.
func (s JobSummary) Publish(_ context.Context, markdown string) error {
	if strings.TrimSpace(s.Path) == "" {
		return fmt.Errorf("job summary requested but GITHUB_STEP_SUMMARY is not set")
	}
	if err := files.AppendFile(s.Path, []byte(markdown+"\n")); err != nil {
		return fmt.Errorf("failed to append job summary to %q: %w", s.Path, err)
	}
	return nil
}
