// Package scrape orchestrates one aggregation tick: fan out to every
// configured source, normalize what comes back, and atomically swap the
// article cache.
package scrape

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"newspulse/internal/cache"
	"newspulse/internal/classify"
	"newspulse/internal/domain/entity"
	"newspulse/internal/observability/metrics"
)

// ErrTickInProgress is returned when a tick is requested while the previous
// one is still running. The new tick is skipped, never queued.
var ErrTickInProgress = errors.New("scrape tick already in progress")

// TickStats contains statistics about one scrape tick.
type TickStats struct {
	Sources        int
	Fetched        int64
	FailedSources  int64
	DroppedStale   int64
	DroppedDup     int64
	DroppedInvalid int64
	Kept           int
	Duration       time.Duration
}

// Service runs scrape ticks. It owns no transport itself: each source is
// routed to the SourceFetcher registered for its type, results are merged,
// classified, scored, validated, and the surviving set replaces the cache
// snapshot. An empty tick never overwrites the previous snapshot.
//
// Synthetic sources in the catalog are held back from the regular fan-out
// and engaged only when every real source yields nothing and there is no
// previous snapshot to fall back on.
type Service struct {
	Sources  []entity.Source
	Fetchers map[string]SourceFetcher
	Cache    *cache.ArticleCache

	// Lookback discards articles older than now-Lookback.
	Lookback time.Duration

	// FetchTimeout bounds each individual source fetch.
	FetchTimeout time.Duration

	now func() time.Time

	mu   sync.Mutex
	done chan struct{} // non-nil while a tick is in flight
}

// NewService creates a scrape Service over the given source catalog and
// adapter registry.
func NewService(
	sources []entity.Source,
	fetchers map[string]SourceFetcher,
	articleCache *cache.ArticleCache,
	lookback time.Duration,
	fetchTimeout time.Duration,
) *Service {
	return &Service{
		Sources:      sources,
		Fetchers:     fetchers,
		Cache:        articleCache,
		Lookback:     lookback,
		FetchTimeout: fetchTimeout,
		now:          time.Now,
	}
}

// RunTick fetches every configured real source concurrently and replaces
// the cache snapshot with the merged result. At most one tick runs at a
// time; a tick requested while another is in flight returns
// ErrTickInProgress.
//
// When every real source yields nothing the previous snapshot is kept,
// even if expired. Only when there is no snapshot at all do the catalog's
// synthetic sources run, so a cold start under total outage still serves
// schema-valid data without synthetic articles ever displacing real ones.
func (s *Service) RunTick(ctx context.Context) (*TickStats, error) {
	if !s.begin() {
		slog.Warn("scrape tick requested while previous tick still running, skipping")
		metrics.RecordScrapeTick("skipped", 0)
		return nil, ErrTickInProgress
	}
	defer s.end()

	logger := slog.Default()
	start := s.now()

	real, synthetic := partitionSources(s.Sources)
	stats := &TickStats{Sources: len(real)}

	raw := s.fetchAll(ctx, real, stats)
	articles := s.normalize(raw, stats)
	stats.Kept = len(articles)
	stats.Duration = time.Since(start)

	if len(articles) == 0 {
		if snap, _ := s.Cache.Get(); snap != nil {
			// Keep serving the previous snapshot rather than caching nothing.
			logger.Warn("no articles fetched in this tick, keeping previous snapshot",
				slog.Int("sources", stats.Sources),
				slog.Int64("failed_sources", stats.FailedSources),
				slog.Duration("duration", stats.Duration))
			metrics.RecordScrapeTick("empty", stats.Duration)
			return stats, nil
		}

		raw = s.fetchAll(ctx, synthetic, stats)
		articles = s.normalize(raw, stats)
		stats.Kept = len(articles)
		stats.Duration = time.Since(start)

		if len(articles) == 0 {
			logger.Warn("no articles fetched and no fallback data available",
				slog.Int("sources", stats.Sources),
				slog.Int64("failed_sources", stats.FailedSources),
				slog.Duration("duration", stats.Duration))
			metrics.RecordScrapeTick("empty", stats.Duration)
			return stats, nil
		}

		logger.Warn("every real source yielded nothing, caching synthetic fallback data",
			slog.Int("articles", len(articles)),
			slog.Int64("failed_sources", stats.FailedSources))
		s.Cache.Put(articles)
		metrics.RecordScrapeTick("fallback", stats.Duration)
		metrics.UpdateCachedArticles(len(articles))
		return stats, nil
	}

	s.Cache.Put(articles)
	metrics.RecordScrapeTick("success", stats.Duration)
	metrics.UpdateCachedArticles(len(articles))

	logger.Info("scrape tick completed",
		slog.Int("sources", stats.Sources),
		slog.Int64("fetched", stats.Fetched),
		slog.Int64("failed_sources", stats.FailedSources),
		slog.Int64("dropped_stale", stats.DroppedStale),
		slog.Int64("dropped_duplicate", stats.DroppedDup),
		slog.Int64("dropped_invalid", stats.DroppedInvalid),
		slog.Int("kept", stats.Kept),
		slog.Duration("duration", stats.Duration))

	return stats, nil
}

// begin marks a tick as in flight. Reports false when one already is.
func (s *Service) begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done != nil {
		return false
	}
	s.done = make(chan struct{})
	return true
}

func (s *Service) end() {
	s.mu.Lock()
	close(s.done)
	s.done = nil
	s.mu.Unlock()
}

// Running reports whether a tick is currently in flight.
func (s *Service) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done != nil
}

// WaitForTick blocks until the tick in flight at call time finishes, or
// returns immediately when none is running. Callers that lost the race
// for a tick use this to read the result of the one that won it.
func (s *Service) WaitForTick(ctx context.Context) error {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()

	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// partitionSources splits the catalog into real network sources and
// synthetic fallback sources.
func partitionSources(sources []entity.Source) (real, synthetic []entity.Source) {
	for _, src := range sources {
		if src.SourceType == entity.SourceTypeSynthetic {
			synthetic = append(synthetic, src)
		} else {
			real = append(real, src)
		}
	}
	return real, synthetic
}

// fetchAll fans out to the given sources concurrently and merges the raw
// results. A failing source is logged and counted, never fatal: the tick
// proceeds with whatever the other sources produced.
func (s *Service) fetchAll(ctx context.Context, sources []entity.Source, stats *TickStats) []RawArticle {
	var mu sync.Mutex
	var merged []RawArticle

	eg, egCtx := errgroup.WithContext(ctx)

	for _, source := range sources {
		src := source

		eg.Go(func() error {
			fetchStart := time.Now()

			fetchCtx := egCtx
			if s.FetchTimeout > 0 {
				var cancel context.CancelFunc
				fetchCtx, cancel = context.WithTimeout(egCtx, s.FetchTimeout)
				defer cancel()
			}

			fetcher := s.selectFetcher(&src)
			if fetcher == nil {
				atomic.AddInt64(&stats.FailedSources, 1)
				metrics.RecordSourceFetchError(src.Name, "no_fetcher")
				return nil
			}

			articles, err := fetcher.Fetch(fetchCtx, src)
			if err != nil {
				// Continue with other sources even if one fails.
				slog.Warn("failed to fetch source",
					slog.String("source", src.Name),
					slog.String("type", src.SourceType),
					slog.Any("error", err))
				atomic.AddInt64(&stats.FailedSources, 1)
				metrics.RecordSourceFetchError(src.Name, "fetch_failed")
				return nil
			}

			atomic.AddInt64(&stats.Fetched, int64(len(articles)))
			metrics.RecordSourceFetch(src.Name, time.Since(fetchStart), len(articles))

			mu.Lock()
			merged = append(merged, articles...)
			mu.Unlock()

			slog.Info("source fetch completed",
				slog.String("source", src.Name),
				slog.Int("articles", len(articles)),
				slog.Duration("duration", time.Since(fetchStart)))
			return nil
		})
	}

	// Per-source errors are swallowed above, so Wait only observes
	// context cancellation.
	if err := eg.Wait(); err != nil {
		slog.Warn("scrape fan-out aborted", slog.Any("error", err))
	}

	return merged
}

// selectFetcher chooses the adapter for a source type. An empty type means
// RSS; an unknown type falls back to RSS with a warning so one bad catalog
// entry cannot break the tick.
func (s *Service) selectFetcher(src *entity.Source) SourceFetcher {
	sourceType := src.SourceType
	if sourceType == "" {
		sourceType = entity.SourceTypeRSS
	}

	if fetcher, ok := s.Fetchers[sourceType]; ok {
		return fetcher
	}

	slog.Warn("unknown source type, falling back to RSS fetcher",
		slog.String("source_type", src.SourceType),
		slog.String("source_name", src.Name))
	return s.Fetchers[entity.SourceTypeRSS]
}

// normalize turns raw fetch results into validated articles: lookback
// filtering, URL deduplication across sources (first seen wins),
// classification and tone scoring, then validation. Anything dropped is
// counted by reason.
func (s *Service) normalize(raw []RawArticle, stats *TickStats) []entity.Article {
	cutoff := s.now().Add(-s.Lookback)
	seen := make(map[string]bool, len(raw))
	articles := make([]entity.Article, 0, len(raw))

	for _, r := range raw {
		if s.Lookback > 0 && r.PublishedAt.Before(cutoff) {
			stats.DroppedStale++
			metrics.RecordArticleDropped("stale")
			continue
		}

		if seen[r.URL] {
			stats.DroppedDup++
			metrics.RecordArticleDropped("duplicate")
			continue
		}
		seen[r.URL] = true

		category := r.Category
		if category == "" {
			category = classify.Classify(r.Title)
		}

		tone := r.Tone
		if !r.HasTone {
			tone = classify.Tone(r.Title)
		}

		article := entity.Article{
			URL:         r.URL,
			Title:       r.Title,
			Source:      r.Source,
			Category:    category,
			PublishedAt: r.PublishedAt,
			Tone:        tone,
			Location:    r.Location,
		}

		if err := article.Validate(); err != nil {
			stats.DroppedInvalid++
			metrics.RecordArticleDropped("invalid")
			slog.Debug("dropping invalid article",
				slog.String("url", r.URL),
				slog.String("source", r.Source),
				slog.Any("error", err))
			continue
		}

		articles = append(articles, article)
	}

	return articles
}
