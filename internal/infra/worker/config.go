// Package worker holds the scheduler-side infrastructure: its
// configuration, health endpoints, and cron-job metrics.
package worker

import (
	"fmt"
	"log/slog"
	"time"

	"newspulse/internal/pkg/config"
)

// WorkerConfig controls the scrape scheduler: the cron cadence, its
// timezone, the per-tick timeout, and the health endpoint port.
//
// All fields load from environment variables with fail-open fallback:
// an invalid value logs a warning, bumps the fallback metrics, and the
// default applies. The scheduler never refuses to start over bad
// configuration.
type WorkerConfig struct {
	// CronSchedule is the five-field cron expression driving scrape ticks.
	// Default: "0 * * * *" (top of every hour).
	CronSchedule string

	// Timezone is the IANA timezone the schedule is evaluated in.
	// Default: "UTC".
	Timezone string

	// ScrapeTimeout bounds one full scrape tick across all sources.
	// Default: 10 minutes.
	ScrapeTimeout time.Duration

	// HealthPort is the port for the liveness/readiness endpoints.
	// Range: 1024-65535. Default: 9091.
	HealthPort int
}

// DefaultConfig returns the production defaults: hourly ticks in UTC,
// a 10-minute tick budget, health checks on 9091.
func DefaultConfig() WorkerConfig {
	return WorkerConfig{
		CronSchedule:  "0 * * * *",
		Timezone:      "UTC",
		ScrapeTimeout: 10 * time.Minute,
		HealthPort:    9091,
	}
}

// Validate checks every field using the shared validators. All failures
// are collected and returned together.
func (c *WorkerConfig) Validate() error {
	var errs []error

	if err := config.ValidateCronSchedule(c.CronSchedule); err != nil {
		errs = append(errs, fmt.Errorf("cron schedule: %w", err))
	}
	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	if err := config.ValidatePositiveDuration(c.ScrapeTimeout); err != nil {
		errs = append(errs, fmt.Errorf("scrape timeout: %w", err))
	}
	if err := config.ValidateIntRange(c.HealthPort, 1024, 65535); err != nil {
		errs = append(errs, fmt.Errorf("health port: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed: %v", errs)
	}
	return nil
}

// LoadConfigFromEnv loads the scheduler configuration from environment
// variables with validation and automatic fallback to defaults.
//
// Environment variables:
//   - CRON_SCHEDULE: five-field cron expression (default "0 * * * *")
//   - WORKER_TIMEZONE: IANA timezone name (default "UTC")
//   - SCRAPE_TIMEOUT: duration string, e.g. "10m" (range 1m-1h)
//   - WORKER_HEALTH_PORT: integer 1024-65535 (default 9091)
//
// The returned config is always valid; the error is always nil and kept
// only for call-site symmetry with loaders that can fail.
func LoadConfigFromEnv(logger *slog.Logger, metrics *WorkerMetrics) (*WorkerConfig, error) {
	cfg := DefaultConfig()
	fallbackApplied := false

	apply := func(field string, result config.ConfigLoadResult) config.ConfigLoadResult {
		if result.FallbackApplied {
			fallbackApplied = true
			metrics.RecordValidationError(field)
			metrics.RecordFallback(field, "default")
			for _, warning := range result.Warnings {
				logger.Warn("configuration fallback applied",
					slog.String("field", field),
					slog.String("warning", warning))
			}
		}
		return result
	}

	result := apply("cron_schedule",
		config.LoadEnvWithFallback("CRON_SCHEDULE", cfg.CronSchedule, config.ValidateCronSchedule))
	cfg.CronSchedule = result.Value.(string)

	result = apply("timezone",
		config.LoadEnvWithFallback("WORKER_TIMEZONE", cfg.Timezone, config.ValidateTimezone))
	cfg.Timezone = result.Value.(string)

	result = apply("scrape_timeout",
		config.LoadEnvDuration("SCRAPE_TIMEOUT", cfg.ScrapeTimeout, func(d time.Duration) error {
			return config.ValidateDuration(d, 1*time.Minute, 1*time.Hour)
		}))
	cfg.ScrapeTimeout = result.Value.(time.Duration)

	result = apply("health_port",
		config.LoadEnvInt("WORKER_HEALTH_PORT", cfg.HealthPort, func(v int) error {
			return config.ValidateIntRange(v, 1024, 65535)
		}))
	cfg.HealthPort = result.Value.(int)

	metrics.SetFallbackActive("", fallbackApplied)
	metrics.RecordLoadTimestamp()

	return &cfg, nil
}
