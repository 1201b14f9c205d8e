// Package action implements the GitHub Action entrypoint. Inputs arrive as
// INPUT_* environment variables and failures are reported as workflow commands.
package action

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/scan-io-git/sarif2md/internal/markdown"
	"github.com/scan-io-git/sarif2md/internal/publish"
	internalsarif "github.com/scan-io-git/sarif2md/internal/sarif"
	"github.com/scan-io-git/sarif2md/pkg/shared/config"
	"github.com/scan-io-git/sarif2md/pkg/shared/errors"
	"github.com/scan-io-git/sarif2md/pkg/shared/files"
	"github.com/scan-io-git/sarif2md/pkg/shared/logger"
)

const (
	inputFilePath      = "file-path"
	inputAddJobSummary = "add-job-summary"
)

// RunOptions holds the action inputs.
type RunOptions struct {
	FilePath      string `json:"file_path,omitempty"`
	AddJobSummary bool   `json:"add_job_summary,omitempty"`
}

var (
	AppConfig *config.Config

	// ActionCmd is the GitHub Action entrypoint.
	ActionCmd = &cobra.Command{
		Use:                   "action",
		Short:                 "Run as a GitHub Action using INPUT_FILE-PATH and INPUT_ADD-JOB-SUMMARY",
		Args:                  cobra.NoArgs,
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		RunE:                  runAction,
	}
)

// Init wires config into this command.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

func runAction(cmd *cobra.Command, _ []string) error {
	lg := logger.NewLogger(AppConfig, "action")

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, config.Timeout(AppConfig))
	defer cancel()

	err := run(ctx, os.Getenv, lg)
	if err != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "::error::%s\n", escapeCommandData(err.Error()))
		// Actions only distinguish success from failure.
		return errors.NewCommandError(nil, err, errors.ExitUsage)
	}
	return nil
}

// run mirrors the action: relative paths resolve against an absolute GITHUB_WORKSPACE, else the working directory.
func run(ctx context.Context, lookup func(string) string, lg hclog.Logger) error {
	o, err := readInputs(lookup)
	if err != nil {
		return err
	}

	sarifPath, err := files.ResolvePath(o.FilePath, lookup("GITHUB_WORKSPACE"))
	if err != nil {
		return err
	}

	report, err := internalsarif.ReadReport(sarifPath, lg, internalsarif.ReadOptions{ExcludeSuppressed: config.ExcludeSuppressed(AppConfig)})
	if err != nil {
		return err
	}
	md, err := markdown.FromReport(report, markdown.Options{SourcePath: files.RelativeToWorkingDir(sarifPath)})
	if err != nil {
		return err
	}
	lg.Debug("Markdown report generated successfully.")

	if o.AddJobSummary {
		if err := (publish.JobSummary{Path: lookup("GITHUB_STEP_SUMMARY")}).Publish(ctx, md); err != nil {
			return err
		}
		lg.Debug("Markdown report appended to the job summary.")
	}
	return nil
}

// readInputs reads the action inputs the way the runner exposes them.
func readInputs(lookup func(string) string) (RunOptions, error) {
	filePath := getInput(lookup, inputFilePath)
	if filePath == "" {
		return RunOptions{}, fmt.Errorf("input required and not supplied: %s", inputFilePath)
	}

	addSummary, err := getBooleanInput(lookup, inputAddJobSummary)
	if err != nil {
		return RunOptions{}, err
	}

	return RunOptions{FilePath: filePath, AddJobSummary: addSummary}, nil
}
