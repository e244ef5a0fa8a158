package config

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ConfigMetrics exposes prometheus metrics about configuration loading for
// one component. The component name prefixes every metric so several
// components can register their own set without colliding.
type ConfigMetrics struct {
	// LoadTimestamp records the Unix timestamp of the last configuration load.
	LoadTimestamp prometheus.Gauge

	// ValidationErrorsTotal counts validation errors by field.
	ValidationErrorsTotal *prometheus.CounterVec

	// FallbacksTotal counts fallback operations by field.
	FallbacksTotal *prometheus.CounterVec

	// FallbackActive is 1 while any field is running on its fallback value.
	FallbackActive prometheus.Gauge

	componentName string
}

// NewConfigMetrics creates and registers the configuration metrics for the
// named component (e.g. "worker", "engine"). Panics if the same component
// name is registered twice.
func NewConfigMetrics(componentName string) *ConfigMetrics {
	return &ConfigMetrics{
		LoadTimestamp: promauto.NewGauge(prometheus.GaugeOpts{
			Name: fmt.Sprintf("%s_config_load_timestamp", componentName),
			Help: fmt.Sprintf("Unix timestamp of last %s configuration load", componentName),
		}),

		ValidationErrorsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_config_validation_errors_total", componentName),
			Help: fmt.Sprintf("Total number of %s configuration validation errors", componentName),
		}, []string{"field"}),

		FallbacksTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_config_fallbacks_total", componentName),
			Help: fmt.Sprintf("Total number of %s configuration fallback operations", componentName),
		}, []string{"field"}),

		FallbackActive: promauto.NewGauge(prometheus.GaugeOpts{
			Name: fmt.Sprintf("%s_config_fallback_active", componentName),
			Help: fmt.Sprintf("1 if any %s configuration fallback is active, 0 otherwise", componentName),
		}),

		componentName: componentName,
	}
}

// RecordLoadTimestamp records the current time as the configuration load time.
func (m *ConfigMetrics) RecordLoadTimestamp() {
	m.LoadTimestamp.SetToCurrentTime()
}

// RecordValidationError increments the validation error counter for a field.
func (m *ConfigMetrics) RecordValidationError(field string) {
	m.ValidationErrorsTotal.WithLabelValues(field).Inc()
}

// RecordFallback increments the fallback counter for a field.
func (m *ConfigMetrics) RecordFallback(field, fallbackType string) {
	m.FallbacksTotal.WithLabelValues(field).Inc()
}

// SetFallbackActive flips the fallback-active gauge.
func (m *ConfigMetrics) SetFallbackActive(field string, active bool) {
	if active {
		m.FallbackActive.Set(1)
	} else {
		m.FallbackActive.Set(0)
	}
}
