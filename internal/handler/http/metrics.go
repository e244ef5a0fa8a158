package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"newspulse/internal/handler/http/responsewriter"
	"newspulse/internal/observability/metrics"
)

// MetricsMiddleware records request metrics into the central registry:
// per-route counters, duration histograms, response sizes, and the
// in-flight connection gauge. The API surface is two fixed paths, so raw
// paths are safe as label values.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.ActiveConnections.Inc()
		defer metrics.ActiveConnections.Dec()

		wrapped := responsewriter.Wrap(w)

		start := time.Now()
		next.ServeHTTP(wrapped, r)
		duration := time.Since(start)

		status := strconv.Itoa(wrapped.StatusCode())
		metrics.RecordHTTPRequest(r.Method, r.URL.Path, status, duration, wrapped.BytesWritten())
	})
}

// MetricsHandler returns an HTTP handler for the Prometheus metrics endpoint.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
