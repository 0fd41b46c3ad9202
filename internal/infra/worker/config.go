package worker

import (
	"fmt"
	"log/slog"
	"time"

	"person-api/internal/pkg/config"
)

// WorkerConfig holds the configuration for the retention worker component.
// This configuration controls the cron schedule, timezone, exchange log
// retention window, and other operational parameters for the worker service.
//
// Configuration sources:
//   - Environment variables (loaded via LoadConfigFromEnv)
//   - Default values (provided by DefaultConfig)
//
// All fields have sensible defaults and validation rules to ensure
// the worker can operate safely even with invalid or missing configuration.
//
// Example usage:
//
//	// Use defaults
//	config := DefaultConfig()
//
//	// Load from environment with fallback
//	config, err := LoadConfigFromEnv(logger, metrics)
//	if err != nil {
//	    // This should never happen with fail-open strategy
//	    log.Fatal("Unexpected configuration error: %v", err)
//	}
//
//	// Validate before use (optional, LoadConfigFromEnv already validates)
//	if err := config.Validate(); err != nil {
//	    log.Fatal("Invalid configuration: %v", err)
//	}
type WorkerConfig struct {
	// CronSchedule is the cron expression for the retention sweep.
	// Format: "minute hour day month weekday"
	// Example: "0 4 * * *" (every day at 4:00)
	// Validation: Must be a valid cron expression (5 fields)
	// Default: "0 4 * * *"
	CronSchedule string

	// Timezone is the IANA timezone name for cron scheduling.
	// Example: "UTC", "Europe/Rome", "America/New_York"
	// Validation: Must be a valid IANA timezone name
	// Default: "UTC"
	Timezone string

	// Retention is how long captured HTTP exchanges are kept before the
	// sweep deletes them.
	// Range: 1 hour - 1 year
	// Default: 14 days
	Retention time.Duration

	// SweepTimeout is the maximum duration for a single retention sweep.
	// After this timeout, the sweep is cancelled and retried on the next run.
	// Range: 10 seconds - 1 hour
	// Default: 5 minutes
	SweepTimeout time.Duration

	// HealthPort is the port number for the health check HTTP server.
	// Range: 1024-65535 (avoid privileged ports)
	// Default: 9091
	HealthPort int
}

// DefaultConfig returns a WorkerConfig with sensible default values.
// These defaults are optimized for:
//   - Typical usage: Daily sweep at 4:00 AM, outside peak traffic
//   - Safety: 5-minute timeout prevents a stuck sweep from holding locks
//   - Storage: Two weeks of exchange history covers most debugging sessions
//   - Standard ports: 9091 for health checks (common Prometheus exporter port)
//
// Returns:
//   - WorkerConfig with production-ready default values
//
// Example:
//
//	config := DefaultConfig()
//	config.CronSchedule = "0 */6 * * *"  // Customize to sweep every 6 hours
func DefaultConfig() WorkerConfig {
	return WorkerConfig{
		CronSchedule: "0 4 * * *",         // Every day at 4:00 AM
		Timezone:     "UTC",               // Container-friendly default
		Retention:    14 * 24 * time.Hour, // Two weeks of exchange history
		SweepTimeout: 5 * time.Minute,     // Bounded delete sweep
		HealthPort:   9091,                // Standard Prometheus exporter port
	}
}

// Validate checks if the configuration values are valid.
// This method validates each field using the reusable validators from internal/pkg/config.
// If multiple fields are invalid, all errors are collected and returned together.
//
// Validation rules:
//   - CronSchedule: Must be a valid cron expression (validated by robfig/cron parser)
//   - Timezone: Must be a valid IANA timezone name (validated by time.LoadLocation)
//   - Retention: Must be between 1 hour and 1 year (inclusive)
//   - SweepTimeout: Must be between 10 seconds and 1 hour (inclusive)
//   - HealthPort: Must be between 1024 and 65535 (avoid privileged ports)
//
// Returns:
//   - error: nil if configuration is valid, aggregated error if any validation fails
//
// Example:
//
//	config := DefaultConfig()
//	if err := config.Validate(); err != nil {
//	    log.Fatal("Invalid configuration: %v", err)
//	}
func (c *WorkerConfig) Validate() error {
	var errors []error

	// Validate CronSchedule
	if err := config.ValidateCronSchedule(c.CronSchedule); err != nil {
		errors = append(errors, fmt.Errorf("cron schedule: %w", err))
	}

	// Validate Timezone
	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errors = append(errors, fmt.Errorf("timezone: %w", err))
	}

	// Validate Retention (1 hour - 1 year)
	if err := config.ValidateDuration(c.Retention, 1*time.Hour, 365*24*time.Hour); err != nil {
		errors = append(errors, fmt.Errorf("retention: %w", err))
	}

	// Validate SweepTimeout (10 seconds - 1 hour)
	if err := config.ValidateDuration(c.SweepTimeout, 10*time.Second, 1*time.Hour); err != nil {
		errors = append(errors, fmt.Errorf("sweep timeout: %w", err))
	}

	// Validate HealthPort (range: 1024-65535)
	if err := config.ValidateIntRange(c.HealthPort, 1024, 65535); err != nil {
		errors = append(errors, fmt.Errorf("health port: %w", err))
	}

	// Return aggregated errors
	if len(errors) > 0 {
		return fmt.Errorf("validation failed: %v", errors)
	}

	return nil
}

// LoadConfigFromEnv loads worker configuration from environment variables
// with validation and automatic fallback to default values on failure.
//
// This function implements the fail-open strategy:
//  1. Start with DefaultConfig() as base
//  2. Load each field from environment variables
//  3. Validate each loaded value
//  4. If validation fails: use default value, log warning, increment metrics
//  5. Never return error - always return a valid configuration
//
// Environment variables:
//   - CRON_SCHEDULE: Cron expression (default: "0 4 * * *")
//   - WORKER_TIMEZONE: IANA timezone name (default: "UTC")
//   - EXCHANGE_LOG_RETENTION: Duration string, e.g., "336h" (default: 14 days)
//   - SWEEP_TIMEOUT: Duration string, e.g., "5m" (default: 5 minutes)
//   - WORKER_HEALTH_PORT: Integer 1024-65535 (default: 9091)
//
// Metrics updated:
//   - ValidationErrorsTotal: Incremented for each validation failure
//   - FallbacksTotal: Incremented for each fallback applied
//   - FallbackActive: Set to 1 if any fallback is active, 0 otherwise
//   - LoadTimestamp: Set to current time after successful load
//
// Parameters:
//   - logger: Structured logger for warnings
//   - metrics: Metrics instance for tracking fallbacks
//
// Returns:
//   - *WorkerConfig: Valid configuration (never nil)
//   - error: Always nil (fail-open strategy)
//
// Example:
//
//	logger := slog.Default()
//	metrics := NewWorkerMetrics()
//	config, _ := LoadConfigFromEnv(logger, metrics)
//	// config is always valid and ready to use
func LoadConfigFromEnv(logger *slog.Logger, metrics *WorkerMetrics) (*WorkerConfig, error) {
	cfg := DefaultConfig()
	fallbackApplied := false

	// note records one rejected environment value: metrics get the
	// snake_case field, log lines get the struct field name.
	note := func(field, label string, warnings []string) {
		fallbackApplied = true
		metrics.RecordValidationError(field)
		metrics.RecordFallback(field)
		for _, warning := range warnings {
			logger.Warn("Configuration fallback applied",
				slog.String("field", label),
				slog.String("warning", warning))
		}
	}

	schedule := config.LoadString("CRON_SCHEDULE", cfg.CronSchedule, config.ValidateCronSchedule)
	cfg.CronSchedule = schedule.Value
	if schedule.FallbackApplied {
		note("cron_schedule", "CronSchedule", schedule.Warnings)
	}

	timezone := config.LoadString("WORKER_TIMEZONE", cfg.Timezone, config.ValidateTimezone)
	cfg.Timezone = timezone.Value
	if timezone.FallbackApplied {
		note("timezone", "Timezone", timezone.Warnings)
	}

	retention := config.LoadDuration("EXCHANGE_LOG_RETENTION", cfg.Retention, func(d time.Duration) error {
		return config.ValidateDuration(d, 1*time.Hour, 365*24*time.Hour)
	})
	cfg.Retention = retention.Value
	if retention.FallbackApplied {
		note("retention", "Retention", retention.Warnings)
	}

	sweepTimeout := config.LoadDuration("SWEEP_TIMEOUT", cfg.SweepTimeout, func(d time.Duration) error {
		return config.ValidateDuration(d, 10*time.Second, 1*time.Hour)
	})
	cfg.SweepTimeout = sweepTimeout.Value
	if sweepTimeout.FallbackApplied {
		note("sweep_timeout", "SweepTimeout", sweepTimeout.Warnings)
	}

	healthPort := config.LoadInt("WORKER_HEALTH_PORT", cfg.HealthPort, func(v int) error {
		return config.ValidateIntRange(v, 1024, 65535)
	})
	cfg.HealthPort = healthPort.Value
	if healthPort.FallbackApplied {
		note("health_port", "HealthPort", healthPort.Warnings)
	}

	metrics.SetFallbackActive(fallbackApplied)
	metrics.RecordLoadTimestamp()

	// Always return valid config (fail-open strategy)
	return &cfg, nil
}
