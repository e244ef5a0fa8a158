package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"newspulse/internal/pkg/config"
)

// WorkerMetrics provides Prometheus metrics for the scheduler component.
// It embeds the shared ConfigMetrics for configuration monitoring and adds
// cron-job metrics for the scheduled scrape ticks.
type WorkerMetrics struct {
	*config.ConfigMetrics

	// CronJobRunsTotal counts scheduled tick runs by status
	// (success, failure, skipped).
	CronJobRunsTotal *prometheus.CounterVec

	// CronJobDurationSeconds measures the duration of scheduled ticks.
	CronJobDurationSeconds prometheus.Histogram

	// CronJobArticlesCachedTotal counts articles cached across all runs.
	CronJobArticlesCachedTotal prometheus.Counter

	// CronJobLastSuccessTimestamp records the Unix timestamp of the
	// last successful tick. Alerting on its age catches a scheduler
	// that is alive but no longer producing snapshots.
	CronJobLastSuccessTimestamp prometheus.Gauge
}

// NewWorkerMetrics creates and registers the scheduler metrics.
func NewWorkerMetrics() *WorkerMetrics {
	return &WorkerMetrics{
		ConfigMetrics: config.NewConfigMetrics("worker"),

		CronJobRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_cron_job_runs_total",
			Help: "Total number of scheduled scrape ticks by status",
		}, []string{"status"}),

		CronJobDurationSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "worker_cron_job_duration_seconds",
			Help:    "Duration of scheduled scrape ticks in seconds",
			Buckets: []float64{1, 5, 30, 60, 300, 900, 1800},
		}),

		CronJobArticlesCachedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "worker_cron_job_articles_cached_total",
			Help: "Total number of articles cached across all scheduled ticks",
		}),

		CronJobLastSuccessTimestamp: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "worker_cron_job_last_success_timestamp",
			Help: "Unix timestamp of the last successful scheduled tick",
		}),
	}
}

// MustRegister is a no-op. All metrics are registered with the default
// registry at construction time via promauto.
func (m *WorkerMetrics) MustRegister() {}

// RecordJobRun increments the run counter for the given status.
func (m *WorkerMetrics) RecordJobRun(status string) {
	m.CronJobRunsTotal.WithLabelValues(status).Inc()
}

// RecordJobDuration observes the duration of a tick in seconds.
func (m *WorkerMetrics) RecordJobDuration(seconds float64) {
	m.CronJobDurationSeconds.Observe(seconds)
}

// RecordArticlesCached adds the number of articles a tick produced.
func (m *WorkerMetrics) RecordArticlesCached(count int) {
	m.CronJobArticlesCachedTotal.Add(float64(count))
}

// RecordLastSuccess records the current time as the last successful tick.
func (m *WorkerMetrics) RecordLastSuccess() {
	m.CronJobLastSuccessTimestamp.SetToCurrentTime()
}
