package config

import (
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v2"
)

// DefaultConfigEnv names the variable holding the config file path when --config is not set.
const DefaultConfigEnv = "SARIF2MD_CONFIG"

type Config struct {
	Logger Logger `yaml:"logger"`
	Report Report `yaml:"report"`
	GitHub GitHub `yaml:"github"`
	GitLab GitLab `yaml:"gitlab"`
	S3     S3     `yaml:"s3"`
}

type Logger struct {
	Level string `yaml:"level"`
}

type Report struct {
	AddJobSummary     *bool         `yaml:"add_job_summary"`
	ExcludeSuppressed *bool         `yaml:"exclude_suppressed"`
	Output            string        `yaml:"output"`
	Timeout           time.Duration `yaml:"timeout"`
}

type GitHub struct {
	APIURL string `yaml:"api_url"`
}

type GitLab struct {
	BaseURL string `yaml:"base_url"`
}

type S3 struct {
	Region string `yaml:"region"`
}

func ValidateConfigPath(path string) error {
	s, err := os.Stat(path)
	if err != nil {
		return err
	}
	if s.IsDir() {
		return fmt.Errorf("'%s' is a directory, not a file", path)
	}
	return nil
}

func LoadYAML(configPath string, data interface{}) error {
	if err := ValidateConfigPath(configPath); err != nil {
		return err
	}

	file, err := os.Open(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	d := yaml.NewDecoder(file)
	if err := d.Decode(data); err != nil {
		return err
	}

	return nil
}

func NewConfig(configPath string) (*Config, error) {
	config := &Config{}

	if err := LoadYAML(configPath, config); err != nil {
		return nil, err
	}

	return config, nil
}

// LoadConfig loads the config file at configPath, falling back to $SARIF2MD_CONFIG.
// With neither set an empty configuration is returned, so every setting takes its default.
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = os.Getenv(DefaultConfigEnv)
	}
	if configPath == "" {
		return &Config{}, nil
	}

	cfg, err := NewConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %q: %w", configPath, err)
	}
	return cfg, nil
}
