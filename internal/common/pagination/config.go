// Package pagination provides a reusable pagination framework with support
// for offset-based pagination and extensibility for future strategies.
package pagination

import (
	pkgcfg "person-api/internal/pkg/config"
)

// Config holds pagination configuration settings.
type Config struct {
	DefaultPage  int // First page served when the query omits page
	DefaultLimit int // Page size served when the query omits limit
	MaxLimit     int // Upper bound a client may request per page
}

// DefaultConfig returns the default pagination configuration:
// page 1, twenty items per page, one hundred at most.
func DefaultConfig() Config {
	return Config{
		DefaultPage:  1,
		DefaultLimit: 20,
		MaxLimit:     100,
	}
}

// LoadFromEnv loads pagination settings from PAGINATION_DEFAULT_PAGE,
// PAGINATION_DEFAULT_LIMIT and PAGINATION_MAX_LIMIT. Loading is
// fail-open: a missing or unusable variable leaves the default in
// place, so a bad deploy degrades to stock paging instead of failing.
func LoadFromEnv() Config {
	defaults := DefaultConfig()

	positive := func(v int) error { return pkgcfg.ValidateIntRange(v, 1, 10000) }

	return Config{
		DefaultPage:  pkgcfg.LoadInt("PAGINATION_DEFAULT_PAGE", defaults.DefaultPage, positive).Value,
		DefaultLimit: pkgcfg.LoadInt("PAGINATION_DEFAULT_LIMIT", defaults.DefaultLimit, positive).Value,
		MaxLimit:     pkgcfg.LoadInt("PAGINATION_MAX_LIMIT", defaults.MaxLimit, positive).Value,
	}
}
