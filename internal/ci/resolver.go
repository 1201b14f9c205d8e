package ci

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// PullRequestTarget identifies the pull or merge request a report comment goes to.
type PullRequestTarget struct {
	Kind        CIKind
	Domain      string
	APIURL      string
	Namespace   string
	Repository  string
	FullName    string
	PullRequest int
}

// ResolvePullRequest determines the pull request of the current job from the
// process environment. A non-empty providedVCS is validated and preferred,
// while conflicts with the detected provider are logged.
func ResolvePullRequest(log hclog.Logger, providedVCS string) (PullRequestTarget, error) {
	return resolvePullRequestWithLookup(log, providedVCS, os.Getenv)
}

func resolvePullRequestWithLookup(log hclog.Logger, providedVCS string, lookup LookupFunc) (PullRequestTarget, error) {
	if log == nil {
		log = hclog.NewNullLogger()
	}

	detectedKind := detectCIKindWithLookup(lookup)
	kind := detectedKind

	if vcs := strings.TrimSpace(providedVCS); vcs != "" {
		providedKind, err := ParseCIKind(vcs)
		if err != nil {
			return PullRequestTarget{}, fmt.Errorf("ci: %w", err)
		}
		if detectedKind != CIUnknown && providedKind != detectedKind {
			log.Warn("provided VCS differs from detected CI environment",
				"detected", detectedKind.String(), "provided", providedKind.String())
		}
		kind = providedKind
	}

	if kind == CIUnknown {
		return PullRequestTarget{}, fmt.Errorf("ci: unable to detect VCS from CI environment; specify --vcs option")
	}
	if kind == CIBitbucket {
		return PullRequestTarget{}, fmt.Errorf("ci: pull request comments are not supported for %s", kind)
	}

	env, err := getCIDefaultEnvVars(kind, lookup)
	if err != nil {
		return PullRequestTarget{}, err
	}

	if env.PullRequestID == "" {
		return PullRequestTarget{}, fmt.Errorf("ci: the %s job does not run for a pull request (ref %q)", kind, env.Reference)
	}
	number, err := strconv.Atoi(env.PullRequestID)
	if err != nil {
		return PullRequestTarget{}, fmt.Errorf("ci: invalid pull request id %q: %w", env.PullRequestID, err)
	}

	target := PullRequestTarget{
		Kind:        kind,
		Domain:      hostFromURL(env.VCSServerURL),
		APIURL:      env.APIURL,
		Namespace:   env.Namespace,
		Repository:  env.RepositoryName,
		FullName:    env.RepositoryFullName,
		PullRequest: number,
	}
	if target.FullName == "" {
		return PullRequestTarget{}, fmt.Errorf("ci: repository is unknown for the %s job", kind)
	}

	log.Debug("resolved pull request from CI environment",
		"vcs", kind.String(), "repository", target.FullName, "pr", target.PullRequest)
	return target, nil
}

func hostFromURL(src string) string {
	if strings.TrimSpace(src) == "" {
		return ""
	}
	if parsed, err := url.Parse(src); err == nil {
		return parsed.Host
	}
	return ""
}
