// Package news is the query facade over the article cache: category pages
// and trending topics, served cache-aside. Reads never fail on missing
// data; the worst case is an empty result or the trending fallback list.
package news

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"newspulse/internal/cache"
	"newspulse/internal/domain/entity"
	"newspulse/internal/observability/metrics"
	"newspulse/internal/usecase/scrape"
	"newspulse/internal/usecase/trending"
)

// Ticker triggers a scrape tick on demand and lets callers wait out a
// tick someone else already started. Implemented by scrape.Service.
type Ticker interface {
	RunTick(ctx context.Context) (*scrape.TickStats, error)
	WaitForTick(ctx context.Context) error
}

// Service answers read queries from the cache, refreshing it on demand
// when the snapshot is missing or stale. Concurrent refresh demands are
// collapsed into a single tick via singleflight.
type Service struct {
	Cache    *cache.ArticleCache
	Trending *trending.Aggregator
	Ticker   Ticker

	group singleflight.Group
}

// NewService creates the query facade.
func NewService(articleCache *cache.ArticleCache, aggregator *trending.Aggregator, ticker Ticker) *Service {
	return &Service{
		Cache:    articleCache,
		Trending: aggregator,
		Ticker:   ticker,
	}
}

// GetArticlesByCategory returns the newest cached articles for one
// category, newest first, capped at the per-category limit. A missing or
// stale snapshot triggers a refresh first; if the refresh fails the last
// known snapshot is served. An empty result is a valid answer, never an
// error.
func (s *Service) GetArticlesByCategory(ctx context.Context, category entity.Category) []entity.Article {
	s.ensureFresh(ctx)
	return s.Cache.GetByCategory(category)
}

// GetTrendingTopics returns the current trending topics. A missing or
// stale snapshot triggers a refresh first; with no data at all the static
// fallback list is returned.
func (s *Service) GetTrendingTopics(ctx context.Context) []entity.TrendingTopic {
	s.ensureFresh(ctx)
	return s.Trending.Topics()
}

// ensureFresh refreshes the cache when the snapshot is missing or past
// its TTL. All concurrent callers share one tick, and a tick already
// started by the scheduler is waited on rather than skipped; a failed
// tick degrades to serving whatever snapshot exists.
func (s *Service) ensureFresh(ctx context.Context) {
	snap, expired := s.Cache.Get()
	switch {
	case snap == nil:
		metrics.RecordCacheRead("empty")
	case expired:
		metrics.RecordCacheRead("stale")
	default:
		metrics.RecordCacheRead("fresh")
		return
	}

	_, err, _ := s.group.Do("tick", func() (interface{}, error) {
		_, err := s.Ticker.RunTick(ctx)
		if errors.Is(err, scrape.ErrTickInProgress) {
			// A scheduler-driven tick is already filling the cache;
			// wait for it instead of answering from a cold cache.
			return nil, s.Ticker.WaitForTick(ctx)
		}
		return nil, err
	})
	if err != nil {
		slog.Warn("on-demand refresh failed, serving last known snapshot",
			slog.Any("error", err))
	}
}
