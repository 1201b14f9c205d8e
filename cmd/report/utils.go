package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/pflag"

	"github.com/scan-io-git/sarif2md/internal/ci"
	"github.com/scan-io-git/sarif2md/internal/publish"
	"github.com/scan-io-git/sarif2md/pkg/shared/config"
)

// applyConfigFallbacks fills options the user did not set on the command line from config and environment.
func applyConfigFallbacks(flags *pflag.FlagSet, o *RunOptions, cfg *config.Config) {
	if !flags.Changed("add-job-summary") {
		o.AddJobSummary = config.AddJobSummary(cfg)
	}
	if !flags.Changed("exclude-suppressed") {
		o.ExcludeSuppressed = config.ExcludeSuppressed(cfg)
	}
	if o.OutputPath == "" {
		o.OutputPath = config.OutputPath(cfg)
	}
}

// resolveWorkspace picks the folder relative inputs are resolved against.
// GitHub workspaces are used only when absolute.
func resolveWorkspace(flagValue string, env ci.CIEnvironment) string {
	if flagValue != "" {
		if abs, err := filepath.Abs(flagValue); err == nil {
			return abs
		}
		return flagValue
	}
	if env.Kind == ci.CIGitHub && !filepath.IsAbs(env.Workspace) {
		return ""
	}
	return env.Workspace
}

func s3Region(cfg *config.Config) string {
	if cfg == nil {
		return ""
	}
	return cfg.S3.Region
}

// newCommentPublisher builds the GitHub or GitLab publisher for the pull request of the current job.
func newCommentPublisher(ctx context.Context, vcs string, lg hclog.Logger) (publish.Publisher, error) {
	target, err := ci.ResolvePullRequest(lg, vcs)
	if err != nil {
		return nil, err
	}

	switch target.Kind {
	case ci.CIGitHub:
		apiURL := target.APIURL
		if AppConfig != nil && AppConfig.GitHub.APIURL != "" {
			apiURL = AppConfig.GitHub.APIURL
		}
		issues, err := publish.NewGitHubIssues(ctx, os.Getenv("GITHUB_TOKEN"), apiURL)
		if err != nil {
			return nil, err
		}
		return &publish.GitHubComment{Issues: issues, Target: target, Logger: lg}, nil
	case ci.CIGitLab:
		baseURL := target.APIURL
		if AppConfig != nil && AppConfig.GitLab.BaseURL != "" {
			baseURL = AppConfig.GitLab.BaseURL
		}
		notes, err := publish.NewGitLabNotes(os.Getenv("GITLAB_TOKEN"), baseURL)
		if err != nil {
			return nil, err
		}
		return &publish.GitLabNote{Notes: notes, Target: target, Logger: lg}, nil
	default:
		return nil, fmt.Errorf("pull request comments are not supported for %s", target.Kind)
	}
}
