package ci

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCIKindString(t *testing.T) {
	testCases := []struct {
		name string
		kind CIKind
		want string
	}{
		{name: "GitHub", kind: CIGitHub, want: "github"},
		{name: "GitLab", kind: CIGitLab, want: "gitlab"},
		{name: "Bitbucket", kind: CIBitbucket, want: "bitbucket"},
		{name: "Unknown", kind: CIUnknown, want: "unknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.kind.String())
		})
	}
}

func TestParseCIKind(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    CIKind
		wantErr bool
	}{
		{name: "GitHub", input: "github", want: CIGitHub},
		{name: "GitLab", input: " GitLab ", want: CIGitLab},
		{name: "Bitbucket", input: "BITBUCKET", want: CIBitbucket},
		{name: "Unsupported", input: "ado", want: CIUnknown, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseCIKind(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDetectCIKind(t *testing.T) {
	assert.Equal(t, CIGitHub, detectCIKindWithLookup(mapLookup(map[string]string{"GITHUB_ACTIONS": "true"})))
	assert.Equal(t, CIGitLab, detectCIKindWithLookup(mapLookup(map[string]string{"GITLAB_CI": "true"})))
	assert.Equal(t, CIBitbucket, detectCIKindWithLookup(mapLookup(map[string]string{"BITBUCKET_REPO_SLUG": "repo"})))
	assert.Equal(t, CIUnknown, detectCIKindWithLookup(mapLookup(nil)))
}

func TestGetCIDefaultEnvVars(t *testing.T) {
	t.Run("GitHub", func(t *testing.T) {
		env := map[string]string{
			"CI":                      "true",
			"GITHUB_ACTIONS":          "true",
			"GITHUB_WORKSPACE":        "/home/runner/work/hello-world/hello-world",
			"GITHUB_STEP_SUMMARY":     "/home/runner/_temp/_runner_file_commands/step_summary_1",
			"GITHUB_REPOSITORY":       "octocat/hello-world",
			"GITHUB_SERVER_URL":       "https://github.example.com",
			"GITHUB_API_URL":          "https://github.example.com/api/v3",
			"GITHUB_REF":              "refs/pull/42/merge",
			"GITHUB_REF_NAME":         "42/merge",
			"GITHUB_REPOSITORY_OWNER": "octocat",
		}

		got, err := getCIDefaultEnvVars(CIGitHub, mapLookup(env))
		require.NoError(t, err)
		assert.Equal(t, CIEnvironment{
			Kind:               CIGitHub,
			CI:                 true,
			Workspace:          "/home/runner/work/hello-world/hello-world",
			StepSummary:        "/home/runner/_temp/_runner_file_commands/step_summary_1",
			VCSServerURL:       "https://github.example.com",
			APIURL:             "https://github.example.com/api/v3",
			Reference:          "refs/pull/42/merge",
			ReferenceName:      "42/merge",
			RepositoryName:     "hello-world",
			RepositoryFullName: "octocat/hello-world",
			Namespace:          "octocat",
			PullRequestID:      "42",
		}, got)
	})

	t.Run("GitLabMergeRequest", func(t *testing.T) {
		env := map[string]string{
			"CI":                        "true",
			"CI_PROJECT_DIR":            "/builds/group/demo",
			"CI_SERVER_URL":             "https://gitlab.example.com",
			"CI_API_V4_URL":             "https://gitlab.example.com/api/v4",
			"CI_MERGE_REQUEST_REF_PATH": "refs/merge-requests/42/head",
			"CI_MERGE_REQUEST_IID":      "42",
			"CI_PROJECT_NAME":           "demo",
			"CI_PROJECT_PATH":           "group/demo",
			"CI_PROJECT_NAMESPACE":      "group",
		}

		got, err := getCIDefaultEnvVars(CIGitLab, mapLookup(env))
		require.NoError(t, err)
		assert.Equal(t, CIEnvironment{
			Kind:               CIGitLab,
			CI:                 true,
			Workspace:          "/builds/group/demo",
			VCSServerURL:       "https://gitlab.example.com",
			APIURL:             "https://gitlab.example.com/api/v4",
			Reference:          "refs/merge-requests/42/head",
			ReferenceName:      "42",
			RepositoryName:     "demo",
			RepositoryFullName: "group/demo",
			Namespace:          "group",
			PullRequestID:      "42",
		}, got)
	})

	t.Run("BitbucketBranch", func(t *testing.T) {
		env := map[string]string{
			"CI":                        "true",
			"BITBUCKET_CLONE_DIR":       "/opt/atlassian/pipelines/agent/build",
			"BITBUCKET_GIT_HTTP_ORIGIN": "https://bitbucket.org/workspace/repo",
			"BITBUCKET_BRANCH":          "main",
			"BITBUCKET_REPO_SLUG":       "repo",
			"BITBUCKET_REPO_FULL_NAME":  "workspace/repo",
			"BITBUCKET_WORKSPACE":       "workspace",
		}

		got, err := getCIDefaultEnvVars(CIBitbucket, mapLookup(env))
		require.NoError(t, err)
		assert.Equal(t, CIEnvironment{
			Kind:               CIBitbucket,
			CI:                 true,
			Workspace:          "/opt/atlassian/pipelines/agent/build",
			VCSServerURL:       "https://bitbucket.org",
			Reference:          "refs/heads/main",
			ReferenceName:      "main",
			RepositoryName:     "repo",
			RepositoryFullName: "workspace/repo",
			Namespace:          "workspace",
		}, got)
	})

	t.Run("UnknownKind", func(t *testing.T) {
		_, err := getCIDefaultEnvVars(CIUnknown, mapLookup(nil))
		assert.Error(t, err)
	})
}

func TestCurrentEnvironment(t *testing.T) {
	env := currentEnvironmentWithLookup(mapLookup(map[string]string{
		"GITHUB_ACTIONS":   "true",
		"GITHUB_WORKSPACE": "/ws",
	}))
	assert.Equal(t, CIGitHub, env.Kind)
	assert.Equal(t, "/ws", env.Workspace)

	assert.Equal(t, CIEnvironment{}, currentEnvironmentWithLookup(mapLookup(nil)))
}

func TestExtractPRFromRef(t *testing.T) {
	assert.Equal(t, "42", extractPRFromRef("refs/pull/42/merge"))
	assert.Equal(t, "7", extractPRFromRef("refs/merge-requests/7/head"))
	assert.Equal(t, "", extractPRFromRef("refs/heads/main"))
	assert.Equal(t, "", extractPRFromRef("refs/pull/abc/merge"))
}

func mapLookup(values map[string]string) LookupFunc {
	return func(key string) string {
		if values == nil {
			return ""
		}
		return values[key]
	}
}
