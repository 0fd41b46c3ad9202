package config

import (
	"cmp"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// ValidateCronSchedule checks a five-field cron expression ("minute
// hour day month weekday") with the same robfig/cron parser the worker
// scheduler uses, so anything accepted here is guaranteed to schedule.
//
// Example:
//
//	err := ValidateCronSchedule("0 4 * * *") // every day at 4:00
//
// https://crontab.guru/ is handy when an expression is rejected.
func ValidateCronSchedule(schedule string) error {
	if schedule == "" {
		return fmt.Errorf("invalid cron schedule: cannot be empty")
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	if _, err := parser.Parse(schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", schedule, err)
	}

	return nil
}

// ValidateTimezone checks an IANA timezone name ("UTC", "Europe/Rome")
// by loading it. Loading depends on tzdata being present, so a valid
// name can still fail in a container image without the tzdata package.
// A UTC offset like "+09:00" is not a timezone name and is rejected.
func ValidateTimezone(timezone string) error {
	if timezone == "" {
		return fmt.Errorf("invalid timezone: cannot be empty")
	}

	if _, err := time.LoadLocation(timezone); err != nil {
		return fmt.Errorf("invalid timezone '%s': %w", timezone, err)
	}

	return nil
}

// ValidateDuration checks that a duration lies in [min, max].
// Both bounds are inclusive. Used for the retention window and the
// sweep timeout, where both too-short and too-long values are unsafe.
func ValidateDuration(duration, min, max time.Duration) error {
	return checkRange("duration", duration, min, max)
}

// ValidateIntRange checks that an integer lies in [min, max].
// Both bounds are inclusive. Used for port numbers and similar knobs.
func ValidateIntRange(value, min, max int) error {
	return checkRange("value", value, min, max)
}

// ValidatePositiveDuration checks that a duration is strictly greater
// than zero. Zero usually means "disabled" or "infinite" somewhere
// downstream, which is never what a timeout or interval wants.
func ValidatePositiveDuration(duration time.Duration) error {
	if duration <= 0 {
		return fmt.Errorf("duration must be positive, got %v", duration)
	}

	return nil
}

// checkRange reports where a value falls outside [min, max]. The noun
// names the value in the message so operators see "duration 5s is
// below minimum 10s" rather than a bare comparison.
func checkRange[T cmp.Ordered](noun string, value, min, max T) error {
	if min > max {
		return fmt.Errorf("invalid range: min (%v) cannot be greater than max (%v)", min, max)
	}

	if value < min {
		return fmt.Errorf("%s %v is below minimum %v", noun, value, min)
	}

	if value > max {
		return fmt.Errorf("%s %v exceeds maximum %v", noun, value, max)
	}

	return nil
}
