package report

import (
	"context"
	"fmt"
	"io"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/scan-io-git/sarif2md/internal/ci"
	"github.com/scan-io-git/sarif2md/internal/markdown"
	"github.com/scan-io-git/sarif2md/internal/publish"
	internalsarif "github.com/scan-io-git/sarif2md/internal/sarif"
	"github.com/scan-io-git/sarif2md/pkg/shared/config"
	"github.com/scan-io-git/sarif2md/pkg/shared/errors"
	"github.com/scan-io-git/sarif2md/pkg/shared/files"
	"github.com/scan-io-git/sarif2md/pkg/shared/logger"
)

// RunOptions holds flags for the report command.
type RunOptions struct {
	InputPath         string `json:"input_path,omitempty"`
	OutputPath        string `json:"output_path,omitempty"`
	Workspace         string `json:"workspace,omitempty"`
	VCS               string `json:"vcs,omitempty"`
	AddJobSummary     bool   `json:"add_job_summary,omitempty"`
	ExcludeSuppressed bool   `json:"exclude_suppressed,omitempty"`
	Comment           bool   `json:"comment,omitempty"`
}

var (
	AppConfig *config.Config
	opts      RunOptions

	exampleReportUsage = `  # Print the Markdown report to stdout
  sarif2md report results/qodana.sarif.json

  # Write the report to a folder and append it to the GitHub job summary
  sarif2md report qodana.sarif.json --output reports/ --add-job-summary

  # Upload the report to S3 and drop suppressed results
  sarif2md report qodana.sarif.json -o s3://ci-reports/main/report.md --exclude-suppressed

  # Comment on the pull/merge request of the current CI job
  GITLAB_TOKEN=... sarif2md report qodana.sarif.json --comment --vcs gitlab`

	// ReportCmd renders a SARIF file as Markdown.
	ReportCmd = &cobra.Command{
		Use:                   "report PATH [--output DEST] [--add-job-summary] [--workspace DIR] [--exclude-suppressed] [--comment] [--vcs github|gitlab]",
		Short:                 "Render a SARIF report as Markdown",
		Example:               exampleReportUsage,
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		RunE:                  runReport,
	}
)

// Init wires config into this command.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

func runReport(cmd *cobra.Command, args []string) error {
	lg := logger.NewLogger(AppConfig, "report")

	if err := validate(args, &opts); err != nil {
		lg.Error("invalid arguments", "error", err)
		return errors.NewCommandError(opts, fmt.Errorf("invalid arguments: %w", err), errors.ExitUsage)
	}
	opts.InputPath = args[0]
	applyConfigFallbacks(cmd.Flags(), &opts, AppConfig)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, config.Timeout(AppConfig))
	defer cancel()

	return run(ctx, opts, ci.CurrentEnvironment(), cmd.OutOrStdout(), lg)
}

// run renders the report and hands it to every enabled destination.
func run(ctx context.Context, o RunOptions, env ci.CIEnvironment, stdout io.Writer, lg hclog.Logger) error {
	inputPath, err := files.ResolvePath(o.InputPath, resolveWorkspace(o.Workspace, env))
	if err != nil {
		return errors.NewCommandError(o, err, errors.ExitUsage)
	}

	report, err := internalsarif.ReadReport(inputPath, lg, internalsarif.ReadOptions{ExcludeSuppressed: o.ExcludeSuppressed})
	if err != nil {
		lg.Error("failed to read SARIF report", "error", err)
		return errors.NewCommandError(o, err, errors.ExitInput)
	}

	md, err := markdown.FromReport(report, markdown.Options{SourcePath: files.RelativeToWorkingDir(inputPath)})
	if err != nil {
		lg.Error("failed to render SARIF report", "path", inputPath, "error", err)
		return errors.NewCommandError(o, fmt.Errorf("failed to render %s: %w", inputPath, err), errors.ExitInput)
	}

	if _, err := fmt.Fprint(stdout, md); err != nil {
		return errors.NewCommandError(o, fmt.Errorf("failed to print report: %w", err), errors.ExitPublish)
	}

	if o.AddJobSummary {
		if err := (publish.JobSummary{Path: env.StepSummary}).Publish(ctx, md); err != nil {
			lg.Error("failed to publish job summary", "error", err)
			return errors.NewCommandError(o, err, errors.ExitPublish)
		}
		lg.Info("report appended to job summary", "path", env.StepSummary)
	}

	if o.OutputPath != "" {
		writer := &publish.OutputWriter{Destination: o.OutputPath, Logger: lg, Region: s3Region(AppConfig)}
		written, err := writer.Write(ctx, md)
		if err != nil {
			lg.Error("failed to write report", "destination", o.OutputPath, "error", err)
			return errors.NewCommandError(o, err, errors.ExitPublish)
		}
		lg.Info("report written", "path", written)
	}

	if o.Comment {
		publisher, err := newCommentPublisher(ctx, o.VCS, lg)
		if err != nil {
			lg.Error("failed to prepare pull request comment", "error", err)
			return errors.NewCommandError(o, err, errors.ExitPublish)
		}
		if err := publisher.Publish(ctx, md); err != nil {
			lg.Error("failed to comment on pull request", "error", err)
			return errors.NewCommandError(o, err, errors.ExitPublish)
		}
	}

	return nil
}

func init() {
	ReportCmd.Flags().StringVarP(&opts.OutputPath, "output", "o", "", "Optional: write the report to a file, folder or s3://bucket/key (defaults to $SARIF2MD_OUTPUT or report.output)")
	ReportCmd.Flags().BoolVar(&opts.AddJobSummary, "add-job-summary", false, "Append the report to the GitHub Actions job summary ($GITHUB_STEP_SUMMARY)")
	ReportCmd.Flags().StringVar(&opts.Workspace, "workspace", "", "Optional: folder relative PATH values resolve against (defaults to the CI workspace)")
	ReportCmd.Flags().BoolVar(&opts.ExcludeSuppressed, "exclude-suppressed", false, "Drop results that carry suppressions")
	ReportCmd.Flags().BoolVar(&opts.Comment, "comment", false, "Post the report to the pull/merge request of the current CI job")
	ReportCmd.Flags().StringVar(&opts.VCS, "vcs", "", "Optional: VCS to comment on, github or gitlab (defaults to the detected CI)")
}
