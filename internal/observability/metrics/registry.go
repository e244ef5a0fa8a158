// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track HTTP request patterns and performance
var (
	// HTTPRequestsTotal counts total HTTP requests by method, path, and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures HTTP request duration in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// HTTPResponseSize measures HTTP response body size in bytes
	HTTPResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	// ActiveConnections tracks the number of active HTTP connections
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)
)

// Scrape metrics track the hourly aggregation ticks and per-source fetches
var (
	// SourceFetchDuration measures time to fetch one source
	SourceFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "source_fetch_duration_seconds",
			Help:    "Time taken to fetch articles from one source",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		},
		[]string{"source"},
	)

	// SourceFetchErrors counts errors during source fetching
	SourceFetchErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "source_fetch_errors_total",
			Help: "Total number of source fetch errors",
		},
		[]string{"source", "error_type"},
	)

	// ArticlesFetchedTotal counts raw articles produced by each source
	ArticlesFetchedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "articles_fetched_total",
			Help: "Total number of articles fetched from sources",
		},
		[]string{"source"},
	)

	// ArticlesDroppedTotal counts articles dropped before caching, by reason
	ArticlesDroppedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "articles_dropped_total",
			Help: "Total number of fetched articles dropped before caching",
		},
		[]string{"reason"}, // reason: invalid, stale, duplicate
	)

	// ScrapeTickDuration measures the duration of a full scrape tick
	ScrapeTickDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "scrape_tick_duration_seconds",
			Help:    "Time taken by one full scrape tick across all sources",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		},
	)

	// ScrapeTicksTotal counts scrape ticks by outcome
	ScrapeTicksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scrape_ticks_total",
			Help: "Total number of scrape ticks",
		},
		[]string{"result"}, // result: success, empty, skipped
	)

	// CachedArticlesTotal tracks the size of the current article snapshot
	CachedArticlesTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cached_articles_total",
			Help: "Number of articles in the current cache snapshot",
		},
	)
)

// Query metrics track cache reads and trending computation
var (
	// CacheReadsTotal counts snapshot reads by freshness outcome
	CacheReadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_reads_total",
			Help: "Total number of article cache reads",
		},
		[]string{"result"}, // result: fresh, stale, empty
	)

	// TrendingBuildDuration measures time to aggregate trending topics
	TrendingBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "trending_build_duration_seconds",
			Help:    "Time taken to aggregate trending topics from the snapshot",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		},
	)

	// TrendingFallbacksTotal counts times the static fallback list was served
	TrendingFallbacksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "trending_fallbacks_total",
			Help: "Total number of trending requests served from the static fallback list",
		},
	)
)

// RecordHTTPRequest records an HTTP request with its metadata
func RecordHTTPRequest(method, path, status string, duration time.Duration, responseSize int) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())

	if responseSize > 0 {
		HTTPResponseSize.WithLabelValues(method, path).Observe(float64(responseSize))
	}
}
