// Package observability provides the engine's observability infrastructure:
// structured logging, Prometheus metrics, and SLO tracking.
//
// Subpackages:
//   - logging: Structured logging utilities with slog
//   - metrics: Prometheus metrics registry and recorders
//   - slo: Service level objective targets and gauges
//
// Example usage:
//
//	import (
//	    "newspulse/internal/observability/logging"
//	    "newspulse/internal/observability/metrics"
//	)
//
//	func main() {
//	    logger := logging.NewLogger()
//	    logger.Info("engine started")
//
//	    metrics.RecordCacheRead("fresh")
//	}
package observability
