// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes all application metrics including:
//   - HTTP request metrics (duration, count, size)
//   - Scrape tick and per-source fetch metrics
//   - Article cache and trending aggregation metrics
//
// All metrics are automatically registered with the Prometheus default registry
// and exposed via the /metrics endpoint.
//
// Example usage:
//
//	import "newspulse/internal/observability/metrics"
//
//	func fetchSource(name string) {
//	    start := time.Now()
//	    // ... fetch articles ...
//	    count := 10
//
//	    metrics.RecordSourceFetch(name, time.Since(start), count)
//	}
package metrics
