package publish

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v47/github"
	"github.com/hashicorp/go-hclog"
	"golang.org/x/oauth2"

	"github.com/scan-io-git/sarif2md/internal/ci"
)

const (
	// GitHubCommentLimit is the maximum body length GitHub accepts for issue comments.
	GitHubCommentLimit = 65536

	truncationNotice = "\n\n> Report truncated: the full version is available in the job summary or the output file."
)

// GitHubIssues is the part of the go-github issues service used to post comments.
type GitHubIssues interface {
	CreateComment(ctx context.Context, owner, repo string, number int, comment *github.IssueComment) (*github.IssueComment, *github.Response, error)
}

// GitHubComment posts the report as a pull request comment.
type GitHubComment struct {
	Issues GitHubIssues
	Target ci.PullRequestTarget
	Logger hclog.Logger
}

// NewGitHubIssues builds an authenticated issues client. A non-default apiURL selects GitHub Enterprise.
func NewGitHubIssues(ctx context.Context, token, apiURL string) (GitHubIssues, error) {
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("GITHUB_TOKEN is required to comment on pull requests")
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := oauth2.NewClient(ctx, ts)

	client, err := newGitHubClient(httpClient, apiURL)
	if err != nil {
		return nil, err
	}
	return client.Issues, nil
}

func newGitHubClient(httpClient *http.Client, apiURL string) (*github.Client, error) {
	apiURL = strings.TrimRight(strings.TrimSpace(apiURL), "/")
	if apiURL == "" || apiURL == "https://api.github.com" {
		return github.NewClient(httpClient), nil
	}

	client, err := github.NewEnterpriseClient(apiURL+"/", apiURL+"/", httpClient)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub Enterprise client for %q: %w", apiURL, err)
	}
	return client, nil
}

// Publish creates the comment on the target pull request.
func (g *GitHubComment) Publish(ctx context.Context, markdown string) error {
	if g.Issues == nil {
		return fmt.Errorf("github client is not configured")
	}
	owner, repo, err := splitFullName(g.Target)
	if err != nil {
		return err
	}

	body := truncateBody(markdown, GitHubCommentLimit)
	comment, _, err := g.Issues.CreateComment(ctx, owner, repo, g.Target.PullRequest, &github.IssueComment{Body: github.String(body)})
	if err != nil {
		return fmt.Errorf("failed to comment on %s#%d: %w", g.Target.FullName, g.Target.PullRequest, err)
	}

	if g.Logger != nil {
		g.Logger.Info("report posted to pull request",
			"repository", g.Target.FullName, "pr", g.Target.PullRequest, "url", comment.GetHTMLURL())
	}
	return nil
}

func splitFullName(target ci.PullRequestTarget) (string, string, error) {
	owner, repo, ok := strings.Cut(target.FullName, "/")
	if !ok || owner == "" || repo == "" {
		return "", "", fmt.Errorf("invalid repository name %q", target.FullName)
	}
	return owner, repo, nil
}

// truncateBody shortens body to at most limit runes, replacing the tail with a notice.
func truncateBody(body string, limit int) string {
	runes := []rune(body)
	if len(runes) <= limit {
		return body
	}
	notice := []rune(truncationNotice)
	keep := limit - len(notice)
	if keep < 0 {
		keep = 0
	}
	return string(runes[:keep]) + truncationNotice
}
