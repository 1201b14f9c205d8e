package report

import (
	"fmt"
	"strings"
)

// validate validates the arguments and RunOptions for the report command.
func validate(args []string, o *RunOptions) error {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return fmt.Errorf("path to a SARIF file is required")
	}
	if len(args) > 1 {
		return fmt.Errorf("exactly one SARIF file is expected, got %d", len(args))
	}
	if o.VCS != "" && !o.Comment {
		return fmt.Errorf("--vcs requires --comment")
	}
	switch strings.ToLower(strings.TrimSpace(o.VCS)) {
	case "", "github", "gitlab":
	default:
		return fmt.Errorf("unsupported --vcs %q: use github or gitlab", o.VCS)
	}
	return nil
}
