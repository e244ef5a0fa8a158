package metrics

import (
	"time"
)

// RecordSourceFetch records a completed fetch of one source.
func RecordSourceFetch(sourceName string, duration time.Duration, articlesFound int) {
	SourceFetchDuration.WithLabelValues(sourceName).Observe(duration.Seconds())
	if articlesFound > 0 {
		ArticlesFetchedTotal.WithLabelValues(sourceName).Add(float64(articlesFound))
	}
}

// RecordSourceFetchError records an error during a source fetch.
func RecordSourceFetchError(sourceName, errorType string) {
	SourceFetchErrors.WithLabelValues(sourceName, errorType).Inc()
}

// RecordArticleDropped records an article discarded before caching.
// Reason should be one of "invalid", "stale", or "duplicate".
func RecordArticleDropped(reason string) {
	ArticlesDroppedTotal.WithLabelValues(reason).Inc()
}

// RecordScrapeTick records the outcome of one scrape tick.
// Result should be "success", "empty", or "skipped".
func RecordScrapeTick(result string, duration time.Duration) {
	ScrapeTicksTotal.WithLabelValues(result).Inc()
	if result != "skipped" {
		ScrapeTickDuration.Observe(duration.Seconds())
	}
}

// UpdateCachedArticles updates the snapshot-size gauge after a cache swap.
func UpdateCachedArticles(count int) {
	CachedArticlesTotal.Set(float64(count))
}

// RecordCacheRead records one article cache read by freshness outcome.
// Result should be "fresh", "stale", or "empty".
func RecordCacheRead(result string) {
	CacheReadsTotal.WithLabelValues(result).Inc()
}

// RecordTrendingBuild records the time spent aggregating trending topics.
func RecordTrendingBuild(duration time.Duration) {
	TrendingBuildDuration.Observe(duration.Seconds())
}

// RecordTrendingFallback records a trending request answered from the
// static fallback list.
func RecordTrendingFallback() {
	TrendingFallbacksTotal.Inc()
}
