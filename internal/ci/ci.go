// Package ci discovers the CI provider and the job metadata the report commands need.
package ci

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
)

// CIKind represents the type of CI.
type CIKind int

const (
	// CIUnknown indicates the CI provider could not be identified.
	CIUnknown CIKind = iota
	// CIGitHub identifies GitHub Actions.
	CIGitHub
	// CIGitLab identifies GitLab CI.
	CIGitLab
	// CIBitbucket identifies Bitbucket Pipelines.
	CIBitbucket
)

// LookupFunc fetches environment variables and defaults to os.Getenv.
type LookupFunc func(string) string

// CIEnvironment captures CI metadata derived from environment variables.
type CIEnvironment struct {
	Kind               CIKind // Kind identifies the CI provider.
	CI                 bool   // CI reports whether the execution runs inside a CI environment.
	Workspace          string // Workspace is the checkout directory relative inputs resolve against.
	StepSummary        string // StepSummary is the job summary file, GitHub only.
	VCSServerURL       string // VCSServerURL is the scheme and host of the VCS server.
	APIURL             string // APIURL is the REST API root of the VCS server.
	Reference          string // Reference is the fully qualified git reference (e.g. refs/pull/42/merge).
	ReferenceName      string // ReferenceName is the short reference or branch name.
	RepositoryName     string // RepositoryName is the repository slug without namespace.
	RepositoryFullName string // RepositoryFullName is the namespace-qualified repository name.
	Namespace          string // Namespace is the owner or project namespace.
	PullRequestID      string // PullRequestID is the pull/merge request number when the job runs for one.
}

// String returns the human-readable string representation of a CIKind.
func (c CIKind) String() string {
	switch c {
	case CIGitHub:
		return "github"
	case CIGitLab:
		return "gitlab"
	case CIBitbucket:
		return "bitbucket"
	default:
		return "unknown"
	}
}

// ParseCIKind converts a string identifier into a CIKind value.
func ParseCIKind(raw string) (CIKind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "github":
		return CIGitHub, nil
	case "gitlab":
		return CIGitLab, nil
	case "bitbucket":
		return CIBitbucket, nil
	default:
		return CIUnknown, fmt.Errorf("unsupported ci kind %q", raw)
	}
}

// DetectCIKind attempts to infer the CI provider from well-known environment variables.
func DetectCIKind() CIKind {
	return detectCIKindWithLookup(os.Getenv)
}

func detectCIKindWithLookup(lookup LookupFunc) CIKind {
	if lookup == nil {
		lookup = os.Getenv
	}

	if strings.EqualFold(lookup("GITHUB_ACTIONS"), "true") || lookup("GITHUB_REPOSITORY") != "" {
		return CIGitHub
	}
	if strings.EqualFold(lookup("GITLAB_CI"), "true") || lookup("CI_PROJECT_PATH") != "" {
		return CIGitLab
	}
	if lookup("BITBUCKET_WORKSPACE") != "" || lookup("BITBUCKET_REPO_SLUG") != "" {
		return CIBitbucket
	}

	return CIUnknown
}

// CurrentEnvironment detects the provider and reads its variables from the process environment.
// Outside a known CI an empty environment with Kind CIUnknown is returned.
func CurrentEnvironment() CIEnvironment {
	return currentEnvironmentWithLookup(os.Getenv)
}

func currentEnvironmentWithLookup(lookup LookupFunc) CIEnvironment {
	env, err := getCIDefaultEnvVars(detectCIKindWithLookup(lookup), lookup)
	if err != nil {
		return CIEnvironment{}
	}
	return env
}

// GetCIDefaultEnvVars returns CI environment variables for the provided kind using the process environment.
func GetCIDefaultEnvVars(kind CIKind) (CIEnvironment, error) {
	return getCIDefaultEnvVars(kind, os.Getenv)
}

// getCIDefaultEnvVars resolves CI environment variables with the supplied lookup function.
func getCIDefaultEnvVars(kind CIKind, lookup LookupFunc) (CIEnvironment, error) {
	if lookup == nil {
		lookup = os.Getenv
	}

	switch kind {
	case CIGitHub:
		return extractGitHubVariables(lookup), nil
	case CIGitLab:
		return extractGitLabVariables(lookup), nil
	case CIBitbucket:
		return extractBitbucketVariables(lookup), nil
	default:
		return CIEnvironment{}, fmt.Errorf("unsupported ci kind: %s", kind)
	}
}

// extractGitHubVariables builds the CIEnvironment from GitHub-specific variables.
// See https://docs.github.com/en/actions/reference/workflows-and-actions/variables.
func extractGitHubVariables(lookup LookupFunc) CIEnvironment {
	ci, _ := strconv.ParseBool(lookup("CI"))

	fullName := lookup("GITHUB_REPOSITORY")
	repoName := ""
	if i := strings.LastIndex(fullName, "/"); i >= 0 && i < len(fullName)-1 {
		repoName = fullName[i+1:]
	}

	reference := lookup("GITHUB_REF")
	return CIEnvironment{
		Kind:               CIGitHub,
		CI:                 ci,
		Workspace:          lookup("GITHUB_WORKSPACE"),
		StepSummary:        lookup("GITHUB_STEP_SUMMARY"),
		VCSServerURL:       lookup("GITHUB_SERVER_URL"),
		APIURL:             lookup("GITHUB_API_URL"),
		Reference:          reference,
		ReferenceName:      lookup("GITHUB_REF_NAME"),
		RepositoryName:     repoName,
		RepositoryFullName: fullName,
		Namespace:          lookup("GITHUB_REPOSITORY_OWNER"),
		PullRequestID:      extractPRFromRef(reference),
	}
}

// extractGitLabVariables builds the CIEnvironment from GitLab-specific variables.
// See https://docs.gitlab.com/ci/variables/predefined_variables/.
func extractGitLabVariables(lookup LookupFunc) CIEnvironment {
	ci, _ := strconv.ParseBool(lookup("CI"))

	var fullRef, refName string
	if tag := lookup("CI_COMMIT_TAG"); tag != "" {
		fullRef = "refs/tags/" + tag
		refName = tag
	} else if mrRef := lookup("CI_MERGE_REQUEST_REF_PATH"); mrRef != "" {
		// Merge request pipeline (e.g., refs/merge-requests/42/head).
		fullRef = mrRef
		refName = lookup("CI_MERGE_REQUEST_IID")
	} else {
		refName = lookup("CI_COMMIT_REF_NAME")
		if refName != "" {
			fullRef = "refs/heads/" + refName
		}
	}

	return CIEnvironment{
		Kind:               CIGitLab,
		CI:                 ci,
		Workspace:          lookup("CI_PROJECT_DIR"),
		VCSServerURL:       lookup("CI_SERVER_URL"),
		APIURL:             lookup("CI_API_V4_URL"),
		Reference:          fullRef,
		ReferenceName:      refName,
		RepositoryName:     lookup("CI_PROJECT_NAME"),
		RepositoryFullName: lookup("CI_PROJECT_PATH"),
		Namespace:          lookup("CI_PROJECT_NAMESPACE"),
		PullRequestID:      lookup("CI_MERGE_REQUEST_IID"),
	}
}

// extractBitbucketVariables builds the CIEnvironment from Bitbucket-specific variables.
// See https://support.atlassian.com/bitbucket-cloud/docs/variables-and-secrets/.
func extractBitbucketVariables(lookup LookupFunc) CIEnvironment {
	ci, _ := strconv.ParseBool(lookup("CI"))

	var reference, refName string
	if tag := lookup("BITBUCKET_TAG"); tag != "" {
		reference = "refs/tags/" + tag
		refName = tag
	} else if branch := lookup("BITBUCKET_BRANCH"); branch != "" {
		reference = "refs/heads/" + branch
		refName = branch
	}

	origin := lookup("BITBUCKET_GIT_HTTP_ORIGIN")
	var serverURL string
	if u, err := url.Parse(origin); err == nil && u.Scheme != "" && u.Host != "" {
		serverURL = u.Scheme + "://" + u.Host
	}

	return CIEnvironment{
		Kind:               CIBitbucket,
		CI:                 ci,
		Workspace:          lookup("BITBUCKET_CLONE_DIR"),
		VCSServerURL:       serverURL,
		Reference:          reference,
		ReferenceName:      refName,
		RepositoryName:     lookup("BITBUCKET_REPO_SLUG"),
		RepositoryFullName: lookup("BITBUCKET_REPO_FULL_NAME"),
		Namespace:          lookup("BITBUCKET_WORKSPACE"),
		PullRequestID:      lookup("BITBUCKET_PR_ID"),
	}
}

// extractPRFromRef returns N from refs/pull/N/... style references.
func extractPRFromRef(ref string) string {
	parts := strings.Split(ref, "/")
	for i := 0; i < len(parts); i++ {
		if parts[i] == "pull" || parts[i] == "merge-requests" {
			if i+1 < len(parts) && allDigits(parts[i+1]) {
				return parts[i+1]
			}
		}
	}
	return ""
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
