package publish

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/xanzy/go-gitlab"

	"github.com/scan-io-git/sarif2md/internal/ci"
)

// GitLabNotes is the part of the go-gitlab notes service used to post merge request notes.
type GitLabNotes interface {
	CreateMergeRequestNote(pid interface{}, mergeRequest int, opt *gitlab.CreateMergeRequestNoteOptions, options ...gitlab.RequestOptionFunc) (*gitlab.Note, *gitlab.Response, error)
}

// GitLabNote posts the report as a merge request note.
type GitLabNote struct {
	Notes  GitLabNotes
	Target ci.PullRequestTarget
	Logger hclog.Logger
}

// NewGitLabNotes builds an authenticated notes client for baseURL (e.g. https://gitlab.example.com/api/v4).
func NewGitLabNotes(token, baseURL string) (GitLabNotes, error) {
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("GITLAB_TOKEN is required to comment on merge requests")
	}

	var opts []gitlab.ClientOptionFunc
	if baseURL = strings.TrimSpace(baseURL); baseURL != "" {
		opts = append(opts, gitlab.WithBaseURL(baseURL))
	}

	client, err := gitlab.NewClient(token, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gitlab client: %w", err)
	}
	return client.Notes, nil
}

// Publish creates the note on the target merge request.
func (g *GitLabNote) Publish(ctx context.Context, markdown string) error {
	if g.Notes == nil {
		return fmt.Errorf("gitlab client is not configured")
	}
	if g.Target.FullName == "" {
		return fmt.Errorf("gitlab project is unknown")
	}

	note, _, err := g.Notes.CreateMergeRequestNote(g.Target.FullName, g.Target.PullRequest,
		&gitlab.CreateMergeRequestNoteOptions{Body: gitlab.Ptr(markdown)},
		gitlab.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to comment on %s!%d: %w", g.Target.FullName, g.Target.PullRequest, err)
	}

	if g.Logger != nil && note != nil {
		g.Logger.Info("report posted to merge request",
			"project", g.Target.FullName, "mr", g.Target.PullRequest, "note", note.ID)
	}
	return nil
}
