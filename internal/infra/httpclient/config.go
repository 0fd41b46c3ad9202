// Package httpclient provides a pool of named HTTP clients for calling
// external services. Clients are registered once at startup from
// configuration, share a single pooled transport, and are looked up by
// name at call time. The pool never mutates a registered configuration.
package httpclient

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// Registration and lookup failures. Callers match these with errors.Is.
var (
	// ErrDuplicateName is returned when a client name is registered twice.
	ErrDuplicateName = errors.New("duplicate client name")

	// ErrUnknownName is returned when no client was registered under a name.
	ErrUnknownName = errors.New("unknown client name")

	// ErrInvalidConfig is returned when a client configuration is rejected.
	ErrInvalidConfig = errors.New("invalid client config")
)

// Config describes one named HTTP client.
type Config struct {
	// Name identifies the client within the pool. Must be unique.
	Name string

	// BaseURL is the absolute URL request paths are resolved against,
	// e.g. "https://api.genderize.io".
	BaseURL string

	// Timeout bounds a single request through this client, including
	// connection setup and reading the response body.
	Timeout time.Duration
}

// Validate reports whether the configuration can be registered.
// All failures wrap ErrInvalidConfig.
func (c Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidConfig)
	}
	if c.BaseURL == "" {
		return fmt.Errorf("%w: base URL is required for client %q", ErrInvalidConfig, c.Name)
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("%w: base URL for client %q: %v", ErrInvalidConfig, c.Name, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: base URL for client %q must use http or https, got %q", ErrInvalidConfig, c.Name, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: base URL for client %q has no host", ErrInvalidConfig, c.Name)
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout for client %q must be positive, got %s", ErrInvalidConfig, c.Name, c.Timeout)
	}

	return nil
}
