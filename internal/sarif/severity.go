package sarif

import (
	"strconv"
	"unicode/utf8"

	"github.com/owenrumney/go-sarif/v2/sarif"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// SeverityUnknown labels results whose severity cannot be resolved.
	SeverityUnknown = "Unknown"

	// severityOverrideProperty is the Qodana result property that overrides the SARIF level.
	severityOverrideProperty = "qodanaSeverity"
)

// NormalizeSeverity picks the tool override, then the result level, then the rule default.
// The chosen value is title-cased; nothing at all yields SeverityUnknown.
func NormalizeSeverity(result *sarif.Result, rule *RuleInfo) string {
	var severity string
	if result != nil {
		severity = propertyString(result.Properties, severityOverrideProperty)
		if severity == "" {
			severity = stringValue(result.Level)
		}
	}
	if severity == "" && rule != nil {
		severity = rule.DefaultLevel
	}

	if severity == "" {
		return SeverityUnknown
	}
	return TitleCase(severity)
}

// TitleCase upper-cases the first character and lower-cases the rest: "HIGH" and "high" both become "High".
func TitleCase(value string) string {
	if value == "" {
		return ""
	}
	_, size := utf8.DecodeRuneInString(value)
	// Casers keep state between calls, so each call gets its own.
	return cases.Upper(language.Und).String(value[:size]) + cases.Lower(language.Und).String(value[size:])
}

// propertyString renders a property bag value as text. Falsy JSON values (empty string, 0, false, null) read as empty.
func propertyString(props sarif.Properties, key string) string {
	if props == nil {
		return ""
	}
	switch v := props[key].(type) {
	case string:
		return v
	case float64:
		if v == 0 {
			return ""
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		if v {
			return "true"
		}
	}
	return ""
}
