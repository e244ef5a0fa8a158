// Package config provides reusable helpers for loading configuration values
// from environment variables with validation and fail-open fallback.
// Loading never returns an error: an invalid value produces a warning and
// the default, so a bad deployment setting degrades observably instead of
// crashing the process.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// ConfigLoadResult represents the result of loading one configuration value.
// Value holds the loaded value (or the default when a fallback was applied),
// Warnings one message per fallback, and FallbackApplied whether the default
// was used because of a parse or validation failure.
type ConfigLoadResult struct {
	Value           interface{}
	Warnings        []string
	FallbackApplied bool
}

// LoadEnvString loads a string from an environment variable, returning the
// default if the variable is unset. No validation is applied.
func LoadEnvString(envKey, defaultValue string) string {
	value := os.Getenv(envKey)
	if value == "" {
		return defaultValue
	}
	return value
}

// LoadEnvWithFallback loads a string from an environment variable and runs
// it through the optional validator. A validation failure falls back to the
// default and records a warning; an unset variable uses the default silently.
func LoadEnvWithFallback(envKey, defaultValue string, validator func(string) error) ConfigLoadResult {
	value := os.Getenv(envKey)
	if value == "" {
		return ConfigLoadResult{Value: defaultValue}
	}

	if validator != nil {
		if err := validator(value); err != nil {
			return fallbackResult(envKey, value, defaultValue, err)
		}
	}

	return ConfigLoadResult{Value: value}
}

// LoadEnvDuration loads a time.Duration from an environment variable.
// The value must be parseable by time.ParseDuration ("30s", "5m", "1h30m");
// parse and validation failures fall back to the default with a warning.
func LoadEnvDuration(envKey string, defaultValue time.Duration, validator func(time.Duration) error) ConfigLoadResult {
	valueStr := os.Getenv(envKey)
	if valueStr == "" {
		return ConfigLoadResult{Value: defaultValue}
	}

	parsed, err := time.ParseDuration(valueStr)
	if err != nil {
		return fallbackResult(envKey, valueStr, defaultValue, err)
	}

	if validator != nil {
		if err := validator(parsed); err != nil {
			return fallbackResult(envKey, valueStr, defaultValue, err)
		}
	}

	return ConfigLoadResult{Value: parsed}
}

// LoadEnvInt loads an integer from an environment variable.
// Parse and validation failures fall back to the default with a warning.
func LoadEnvInt(envKey string, defaultValue int, validator func(int) error) ConfigLoadResult {
	valueStr := os.Getenv(envKey)
	if valueStr == "" {
		return ConfigLoadResult{Value: defaultValue}
	}

	parsed, err := strconv.Atoi(valueStr)
	if err != nil {
		return fallbackResult(envKey, valueStr, defaultValue, err)
	}

	if validator != nil {
		if err := validator(parsed); err != nil {
			return fallbackResult(envKey, valueStr, defaultValue, err)
		}
	}

	return ConfigLoadResult{Value: parsed}
}

// LoadEnvBool loads a boolean from an environment variable.
// Accepts the forms understood by strconv.ParseBool; anything else falls
// back to the default with a warning.
func LoadEnvBool(envKey string, defaultValue bool) ConfigLoadResult {
	valueStr := os.Getenv(envKey)
	if valueStr == "" {
		return ConfigLoadResult{Value: defaultValue}
	}

	parsed, err := strconv.ParseBool(valueStr)
	if err != nil {
		return fallbackResult(envKey, valueStr, defaultValue, err)
	}

	return ConfigLoadResult{Value: parsed}
}

func fallbackResult(envKey, rawValue string, defaultValue interface{}, err error) ConfigLoadResult {
	warning := fmt.Sprintf(
		"Invalid %s='%s': %v, falling back to default '%v'",
		envKey, rawValue, err, defaultValue,
	)
	return ConfigLoadResult{
		Value:           defaultValue,
		Warnings:        []string{warning},
		FallbackApplied: true,
	}
}
