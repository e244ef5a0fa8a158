// Package slo tracks the engine's service level objectives. The engine is
// a read-only cache over scraped data, so its two meaningful objectives
// are data freshness (how old the served snapshot is) and scrape
// reliability (how often ticks succeed).
package slo

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SLO targets for the aggregation engine.
const (
	// TickSuccessSLO is the target ratio of successful scrape ticks (99%).
	TickSuccessSLO = 0.99

	// FreshnessSLO is the maximum acceptable snapshot age in seconds.
	// The snapshot TTL is 5 minutes; an hourly cron plus on-demand
	// refresh should keep age below 15 minutes even under failures.
	FreshnessSLO = 900.0
)

var (
	// SLOTickSuccessRatio tracks the lifetime ratio of successful
	// scrape ticks (0-1). Skipped ticks do not count either way.
	SLOTickSuccessRatio = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_tick_success_ratio",
			Help: "Ratio of successful scrape ticks (0-1), target: 0.99",
		},
	)

	// SLOSnapshotAgeSeconds tracks the age of the served snapshot at
	// the last observation point.
	SLOSnapshotAgeSeconds = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_snapshot_age_seconds",
			Help: "Age of the article snapshot in seconds, target: below 900",
		},
	)
)

// Tracker accumulates tick outcomes and keeps the success-ratio gauge
// current. Safe for concurrent use.
type Tracker struct {
	mu        sync.Mutex
	total     int
	succeeded int
}

// RecordTick records one finished scrape tick and updates the ratio gauge.
func (t *Tracker) RecordTick(success bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.total++
	if success {
		t.succeeded++
	}
	SLOTickSuccessRatio.Set(float64(t.succeeded) / float64(t.total))
}

// ObserveSnapshotAge records the current snapshot age.
func ObserveSnapshotAge(seconds float64) {
	SLOSnapshotAgeSeconds.Set(seconds)
}
