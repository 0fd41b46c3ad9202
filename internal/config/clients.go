package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ClientsConfig declares additional named HTTP clients to register in the
// client pool at startup. The pool is sealed once the server starts serving,
// so this file is the only way to add clients.
type ClientsConfig struct {
	Clients []ClientEntry `yaml:"clients"`
}

// ClientEntry describes one named client.
type ClientEntry struct {
	Name           string `yaml:"name"`
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Timeout returns the per-request timeout for this client.
// Zero means the pool default applies.
func (e ClientEntry) Timeout() time.Duration {
	return time.Duration(e.TimeoutSeconds) * time.Second
}

// LoadClientsConfig loads the named client declarations from a YAML file.
// The path parameter is expected to come from a trusted source (environment variable or hardcoded default).
func LoadClientsConfig(path string) (*ClientsConfig, error) {
	// #nosec G304 -- path is provided by trusted source (env var or config), not user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read clients config file: %w", err)
	}

	var config ClientsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse clients config: %w", err)
	}

	if err := validateClientsConfig(&config); err != nil {
		return nil, fmt.Errorf("clients config validation failed: %w", err)
	}

	return &config, nil
}

// LoadClientsConfigFromEnv loads the clients file named by CLIENTS_CONFIG_PATH.
// When the variable is unset the file is optional and an empty config is returned.
func LoadClientsConfigFromEnv() (*ClientsConfig, error) {
	path := os.Getenv("CLIENTS_CONFIG_PATH")
	if path == "" {
		return &ClientsConfig{}, nil
	}
	return LoadClientsConfig(path)
}

// validateClientsConfig validates the loaded declarations.
func validateClientsConfig(config *ClientsConfig) error {
	seen := make(map[string]struct{}, len(config.Clients))

	for i, entry := range config.Clients {
		if entry.Name == "" {
			return fmt.Errorf("clients[%d]: name is required", i)
		}

		// Duplicate names would be rejected by the pool anyway; failing here
		// points at the file instead of a registration error at startup.
		if _, ok := seen[entry.Name]; ok {
			return fmt.Errorf("clients[%d]: duplicate client name %q", i, entry.Name)
		}
		seen[entry.Name] = struct{}{}

		if entry.BaseURL == "" {
			return fmt.Errorf("clients[%d] (%s): base_url is required", i, entry.Name)
		}
		u, err := url.Parse(entry.BaseURL)
		if err != nil {
			return fmt.Errorf("clients[%d] (%s): base_url is not a valid URL: %w", i, entry.Name, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("clients[%d] (%s): base_url must use http or https", i, entry.Name)
		}
		if u.Host == "" {
			return fmt.Errorf("clients[%d] (%s): base_url must be an absolute URL", i, entry.Name)
		}

		if entry.TimeoutSeconds < 0 {
			return fmt.Errorf("clients[%d] (%s): timeout_seconds must not be negative", i, entry.Name)
		}
	}

	return nil
}
