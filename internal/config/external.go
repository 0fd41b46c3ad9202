// Package config loads application configuration from the environment and
// from optional YAML files. Invalid configuration is a startup error, not
// something to limp along with.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"person-api/internal/resilience/retry"
)

// ExternalConfig holds configuration for the external gender lookup service.
type ExternalConfig struct {
	// BaseURL is the lookup service address.
	// Default: "https://api.genderize.io"
	BaseURL string

	// Timeout is the per-request timeout for lookup calls.
	// Default: 10 seconds
	Timeout time.Duration

	// Retry configures how lookup failures are retried. MaxAttempts counts
	// retries after the initial call; Backoff is the fixed delay between tries.
	Retry retry.Config
}

// LoadExternalConfig loads external lookup configuration from environment variables.
// Returns a config with defaults if environment variables are not set.
func LoadExternalConfig() (*ExternalConfig, error) {
	config := &ExternalConfig{
		BaseURL: getEnvOrDefault("EXTERNAL_API_BASE_URL", "https://api.genderize.io"),
		Timeout: time.Duration(getEnvInt("EXTERNAL_API_TIMEOUT_SECONDS", 10)) * time.Second,
		Retry: retry.Config{
			MaxAttempts: getEnvInt("RETRY_MAX_ATTEMPTS", 2),
			Backoff:     time.Duration(getEnvInt("RETRY_BACKOFF_SECONDS", 1)) * time.Second,
		},
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid external API configuration: %w", err)
	}

	return config, nil
}

// Validate checks configuration correctness.
func (c *ExternalConfig) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("EXTERNAL_API_BASE_URL cannot be empty")
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("EXTERNAL_API_BASE_URL is not a valid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("EXTERNAL_API_BASE_URL must use http or https, got %q", c.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("EXTERNAL_API_BASE_URL must be an absolute URL, got %q", c.BaseURL)
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("EXTERNAL_API_TIMEOUT_SECONDS must be positive")
	}

	if c.Retry.MaxAttempts < 0 {
		return fmt.Errorf("RETRY_MAX_ATTEMPTS must not be negative")
	}

	if c.Retry.Backoff < 0 {
		return fmt.Errorf("RETRY_BACKOFF_SECONDS must not be negative")
	}

	return nil
}

// getEnvOrDefault returns environment variable value or default.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt parses integer environment variable with default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}
