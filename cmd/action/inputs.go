package action

import (
	"fmt"
	"strings"
)

// getInput returns the trimmed value of INPUT_<NAME>. Spaces in name become underscores, dashes are kept.
func getInput(lookup func(string) string, name string) string {
	key := "INPUT_" + strings.ToUpper(strings.ReplaceAll(name, " ", "_"))
	return strings.TrimSpace(lookup(key))
}

// getBooleanInput accepts the YAML 1.2 core schema booleans. An unset input is false.
func getBooleanInput(lookup func(string) string, name string) (bool, error) {
	switch value := getInput(lookup, name); value {
	case "":
		return false, nil
	case "true", "True", "TRUE":
		return true, nil
	case "false", "False", "FALSE":
		return false, nil
	default:
		return false, fmt.Errorf("input does not meet YAML 1.2 \"Core Schema\" specification: %s\n"+
			"Support boolean input list: `true | True | TRUE | false | False | FALSE`", name)
	}
}

// escapeCommandData escapes a workflow command message so it stays on one line.
func escapeCommandData(s string) string {
	return strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A").Replace(s)
}
