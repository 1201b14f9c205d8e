package config

import (
	"os"
	"reflect"
	"strconv"
	"time"
)

const (
	envAddJobSummary = "SARIF2MD_ADD_JOB_SUMMARY"
	envOutput        = "SARIF2MD_OUTPUT"

	defaultTimeout = 30 * time.Second
)

// SetThen provides a utility to select the first value if set, otherwise defaults.
func SetThen[T any](value T, defaultValue T) T {
	if reflect.ValueOf(value).IsZero() {
		return defaultValue
	}
	return value
}

// boolValue dereferences an optional boolean, returning defaultValue when unset.
func boolValue(value *bool, defaultValue bool) bool {
	if value == nil {
		return defaultValue
	}
	return *value
}

// AddJobSummary reports whether the rendered report should be appended to the job summary.
// The environment variable takes priority over the config file.
func AddJobSummary(cfg *Config) bool {
	if v, err := strconv.ParseBool(os.Getenv(envAddJobSummary)); err == nil {
		return v
	}
	if cfg == nil {
		return false
	}
	return boolValue(cfg.Report.AddJobSummary, false)
}

// ExcludeSuppressed reports whether suppressed results should be dropped before rendering.
func ExcludeSuppressed(cfg *Config) bool {
	if cfg == nil {
		return false
	}
	return boolValue(cfg.Report.ExcludeSuppressed, false)
}

// OutputPath returns the configured output destination, environment first.
func OutputPath(cfg *Config) string {
	if v := os.Getenv(envOutput); v != "" {
		return v
	}
	if cfg == nil {
		return ""
	}
	return cfg.Report.Output
}

// Timeout returns the deadline applied to publishing operations.
func Timeout(cfg *Config) time.Duration {
	if cfg == nil {
		return defaultTimeout
	}
	return SetThen(cfg.Report.Timeout, defaultTimeout)
}
