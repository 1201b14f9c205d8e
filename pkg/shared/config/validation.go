package config

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
)

var awsRegionRegex = regexp.MustCompile(`^[a-z]{2}(-[a-z]+)+-\d$`)

// ValidateConfig checks if the global configurations have valid values.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("YAML global config: configuration object is nil")
	}
	if err := validateLogger(&cfg.Logger); err != nil {
		return fmt.Errorf("YAML global config: logger directive is invalid: %w", err)
	}
	if err := validateReport(&cfg.Report); err != nil {
		return fmt.Errorf("YAML global config: report directive is invalid: %w", err)
	}
	if err := validateURL(cfg.GitHub.APIURL); err != nil {
		return fmt.Errorf("YAML global config: github directive is invalid: %w", err)
	}
	if err := validateURL(cfg.GitLab.BaseURL); err != nil {
		return fmt.Errorf("YAML global config: gitlab directive is invalid: %w", err)
	}
	if cfg.S3.Region != "" && !awsRegionRegex.MatchString(cfg.S3.Region) {
		return fmt.Errorf("YAML global config: s3 directive is invalid: malformed region %q", cfg.S3.Region)
	}
	return nil
}

func validateLogger(l *Logger) error {
	switch strings.ToUpper(l.Level) {
	case "", "TRACE", "DEBUG", "INFO", "WARN", "ERROR":
		return nil
	default:
		return fmt.Errorf("unsupported level %q", l.Level)
	}
}

func validateReport(r *Report) error {
	return validateDuration(r.Timeout, "timeout", 10*time.Minute)
}

// validateDuration checks that a time.Duration is valid and within a specified maximum duration.
func validateDuration(d time.Duration, name string, max time.Duration) error {
	if d < 0 {
		return fmt.Errorf("invalid duration for %q: %v cannot be negative", name, d)
	}
	if d > max {
		return fmt.Errorf("%q duration is too long: %v exceeds maximum of %v", name, d, max)
	}
	return nil
}

// validateURL accepts an empty value or an absolute http(s) URL.
func validateURL(raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL %q must use http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("URL %q has no host", raw)
	}
	return nil
}
