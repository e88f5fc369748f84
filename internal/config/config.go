// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Environment variables consulted when neither a flag nor the config file sets a value
const (
	EnvDatabaseURL = "DATABASE_URL"
	EnvBaseURL     = "SITE_BASE_URL"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or CLI flags.
type Config struct {
	// Site
	BaseURL     string `json:"base_url,omitempty"`     // Origin every manifest URL is built from
	CatalogPath string `json:"catalog_path,omitempty"` // Route catalog YAML; empty uses the embedded catalog

	// Content store
	DatabaseURL  string `json:"database_url,omitempty"`  // PostgreSQL connection URL
	JobLimit     int    `json:"job_limit,omitempty"`     // Max job detail routes
	ArticleLimit int    `json:"article_limit,omitempty"` // Max article routes
	ReadTimeout  string `json:"read_timeout,omitempty"`  // Per-read timeout, e.g. "10s"

	// Server
	Port         int    `json:"port,omitempty"`
	BuildTimeout string `json:"build_timeout,omitempty"` // Whole-build timeout per request

	// Behavior
	LogLevel string `json:"log_level,omitempty"` // debug, info, warn, error
	Verbose  bool   `json:"verbose,omitempty"`   // Print a build summary
}

// Defaults returns the built-in configuration
func Defaults() Config {
	return Config{
		BaseURL:      "https://fractional.quest",
		JobLimit:     500,
		ArticleLimit: 200,
		ReadTimeout:  "10s",
		Port:         8080,
		BuildTimeout: "30s",
		LogLevel:     "info",
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}

// Validate checks that the configuration has valid values.
// Empty fields are allowed; they are filled by MergeWithDefaults.
func (c *Config) Validate() error {
	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("config error: 'base_url' must be an absolute http(s) URL, got %q", c.BaseURL)
		}
		if u.RawQuery != "" || u.Fragment != "" {
			return fmt.Errorf("config error: 'base_url' must not carry a query or fragment")
		}
	}

	// Validate numeric ranges
	if c.JobLimit < 0 {
		return fmt.Errorf("config error: 'job_limit' must be non-negative")
	}
	if c.ArticleLimit < 0 {
		return fmt.Errorf("config error: 'article_limit' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	if err := validateDuration("read_timeout", c.ReadTimeout); err != nil {
		return err
	}
	if err := validateDuration("build_timeout", c.BuildTimeout); err != nil {
		return err
	}

	if c.LogLevel != "" && !logLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("config error: unknown 'log_level' %q", c.LogLevel)
	}

	// Validate file paths exist (if specified)
	if c.CatalogPath != "" {
		if _, err := os.Stat(c.CatalogPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: catalog file not found: %s", c.CatalogPath)
		}
	}

	return nil
}

func validateDuration(field, value string) error {
	if value == "" {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("config error: '%s' is not a duration: %w", field, err)
	}
	if d <= 0 {
		return fmt.Errorf("config error: '%s' must be positive", field)
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.BaseURL == "" {
		result.BaseURL = defaults.BaseURL
	}
	if result.CatalogPath == "" {
		result.CatalogPath = defaults.CatalogPath
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.ReadTimeout == "" {
		result.ReadTimeout = defaults.ReadTimeout
	}
	if result.BuildTimeout == "" {
		result.BuildTimeout = defaults.BuildTimeout
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}

	// Int fields: use default if zero
	if result.JobLimit == 0 {
		result.JobLimit = defaults.JobLimit
	}
	if result.ArticleLimit == 0 {
		result.ArticleLimit = defaults.ArticleLimit
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// ApplyEnv fills the database URL and base URL from the environment when unset
func (c *Config) ApplyEnv() {
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv(EnvDatabaseURL)
	}
	if c.BaseURL == "" {
		c.BaseURL = os.Getenv(EnvBaseURL)
	}
}

// ReadTimeoutDuration parses ReadTimeout, returning 0 when unset or invalid
func (c *Config) ReadTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ReadTimeout)
	return d
}

// BuildTimeoutDuration parses BuildTimeout, returning 0 when unset or invalid
func (c *Config) BuildTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.BuildTimeout)
	return d
}
