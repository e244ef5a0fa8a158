package config

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// ValidateCronSchedule validates a standard five-field cron expression
// using the robfig/cron/v3 parser, so anything accepted here is accepted
// by the scheduler.
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

// ValidateTimezone validates an IANA timezone name by loading it with
// time.LoadLocation. Fails when tzdata is unavailable on the host even for
// correct names.
func ValidateTimezone(timezone string) error {
	if timezone == "" {
		return fmt.Errorf("invalid timezone: cannot be empty")
	}

	if _, err := time.LoadLocation(timezone); err != nil {
		return fmt.Errorf("invalid timezone '%s': %w", timezone, err)
	}

	return nil
}

// ValidateDuration validates that a duration falls within [min, max].
func ValidateDuration(duration, min, max time.Duration) error {
	if min > max {
		return fmt.Errorf("invalid range: min %v > max %v", min, max)
	}
	if duration < min || duration > max {
		return fmt.Errorf("duration %v out of range [%v, %v]", duration, min, max)
	}
	return nil
}

// ValidateIntRange validates that a value falls within [min, max].
func ValidateIntRange(value, min, max int) error {
	if min > max {
		return fmt.Errorf("invalid range: min %d > max %d", min, max)
	}
	if value < min || value > max {
		return fmt.Errorf("value %d out of range [%d, %d]", value, min, max)
	}
	return nil
}

// ValidatePositiveDuration validates that a duration is strictly positive.
func ValidatePositiveDuration(duration time.Duration) error {
	if duration <= 0 {
		return fmt.Errorf("duration must be positive, got %v", duration)
	}
	return nil
}
