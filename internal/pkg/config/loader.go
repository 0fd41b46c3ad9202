package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Result carries a configuration value loaded from the environment
// together with any warnings produced while loading it.
//
// Loading is fail-open: an unusable environment value never aborts
// startup. The default takes its place, FallbackApplied is set and a
// warning describes what was rejected. Callers are expected to log the
// warnings and count the fallback in their metrics so that a fleet
// running on defaults is visible.
//
// Example:
//
//	result := LoadDuration("EXCHANGE_LOG_RETENTION", 14*24*time.Hour, nil)
//	if result.FallbackApplied {
//	    for _, w := range result.Warnings {
//	        logger.Warn("config fallback", "warning", w)
//	    }
//	}
//	retention := result.Value
type Result[T any] struct {
	Value           T
	Warnings        []string
	FallbackApplied bool
}

// fallback builds the Result for an environment value that could not
// be used. The warning format is stable; dashboards grep for it.
func fallback[T any](key, raw string, reason error, def T) Result[T] {
	warning := fmt.Sprintf("Invalid %s='%s': %v, falling back to default '%v'", key, raw, reason, def)
	return Result[T]{
		Value:           def,
		Warnings:        []string{warning},
		FallbackApplied: true,
	}
}

// loadEnv reads key and runs the raw value through parse and then
// validate. An unset or empty variable yields the default silently;
// that is the normal "not configured" case, not a fallback. A value
// that fails to parse or validate yields the default with a warning.
func loadEnv[T any](key string, def T, parse func(string) (T, error), validate func(T) error) Result[T] {
	raw := os.Getenv(key)
	if raw == "" {
		return Result[T]{Value: def}
	}

	value, err := parse(raw)
	if err != nil {
		return fallback(key, raw, err, def)
	}

	if validate != nil {
		if err := validate(value); err != nil {
			return fallback(key, raw, err, def)
		}
	}

	return Result[T]{Value: value}
}

// LoadString loads a string from an environment variable. The validator
// may be nil when any non-empty value is acceptable.
//
// Example:
//
//	result := LoadString("CRON_SCHEDULE", "0 4 * * *", ValidateCronSchedule)
//	schedule := result.Value
func LoadString(key, def string, validate func(string) error) Result[string] {
	return loadEnv(key, def, func(raw string) (string, error) { return raw, nil }, validate)
}

// LoadDuration loads a duration from an environment variable. The raw
// value must be a Go duration string such as "30s", "5m" or "336h".
//
// Example:
//
//	result := LoadDuration("SWEEP_TIMEOUT", 5*time.Minute, func(d time.Duration) error {
//	    return ValidateDuration(d, 10*time.Second, time.Hour)
//	})
func LoadDuration(key string, def time.Duration, validate func(time.Duration) error) Result[time.Duration] {
	return loadEnv(key, def, time.ParseDuration, validate)
}

// LoadInt loads an integer from an environment variable. Unlike a
// Sscanf-based parse, trailing garbage ("9091x") is rejected rather
// than silently truncated.
//
// Example:
//
//	result := LoadInt("WORKER_HEALTH_PORT", 9091, func(v int) error {
//	    return ValidateIntRange(v, 1024, 65535)
//	})
func LoadInt(key string, def int, validate func(int) error) Result[int] {
	return loadEnv(key, def, parseInt, validate)
}

// LoadBool loads a boolean from an environment variable. Accepted
// spellings are the strconv.ParseBool set: 1/0, t/f, true/false in any
// of their usual casings.
//
// Example:
//
//	result := LoadBool("SWAGGER_ENABLED", true)
func LoadBool(key string, def bool) Result[bool] {
	return loadEnv(key, def, parseBool, nil)
}

func parseInt(raw string) (int, error) {
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("invalid integer format")
	}
	return value, nil
}

func parseBool(raw string) (bool, error) {
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, errors.New("invalid boolean format, expected 'true' or 'false'")
	}
	return value, nil
}
