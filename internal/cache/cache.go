// Package cache provides the in-memory TTL article store shared between the
// scrape scheduler (single writer) and the query facade (many readers).
// Snapshots are replaced wholesale, never mutated, so readers always observe
// a complete generation.
package cache

import (
	"sort"
	"sync"
	"time"

	"newspulse/internal/domain/entity"
)

// DefaultTTL is the freshness window for article snapshots.
const DefaultTTL = 5 * time.Minute

// Snapshot is the complete, immutable article set produced by one scrape
// tick, together with its creation timestamp.
type Snapshot struct {
	Articles  []entity.Article
	CreatedAt time.Time
}

// ArticleCache holds the current snapshot behind a mutex-guarded pointer
// swap. Put replaces the snapshot atomically; concurrent Get calls see
// either the old or the new generation in full.
type ArticleCache struct {
	mu       sync.RWMutex
	current  *Snapshot
	ttl      time.Duration
	now      func() time.Time
	maxItems int
}

// Option configures an ArticleCache.
type Option func(*ArticleCache)

// WithTTL overrides the default snapshot TTL.
func WithTTL(ttl time.Duration) Option {
	return func(c *ArticleCache) { c.ttl = ttl }
}

// WithClock overrides the time source. Used by tests to control expiry.
func WithClock(now func() time.Time) Option {
	return func(c *ArticleCache) { c.now = now }
}

// WithCategoryLimit overrides the per-category result cap.
func WithCategoryLimit(n int) Option {
	return func(c *ArticleCache) { c.maxItems = n }
}

// New creates an empty ArticleCache with a 5-minute TTL and a per-category
// limit of 20 articles.
func New(opts ...Option) *ArticleCache {
	c := &ArticleCache{
		ttl:      DefaultTTL,
		now:      time.Now,
		maxItems: 20,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Put atomically replaces the current snapshot with the given article set,
// stamped with the current time. The slice is owned by the cache after the
// call and must not be mutated by the caller.
func (c *ArticleCache) Put(articles []entity.Article) {
	snap := &Snapshot{
		Articles:  articles,
		CreatedAt: c.now(),
	}

	c.mu.Lock()
	c.current = snap
	c.mu.Unlock()
}

// Get returns the current snapshot and whether it has outlived the TTL.
// Returns (nil, true) when no snapshot has ever been produced. Staleness
// is reported, never hidden: an expired snapshot is still returned so
// callers can serve last-known-good data.
func (c *ArticleCache) Get() (*Snapshot, bool) {
	c.mu.RLock()
	snap := c.current
	c.mu.RUnlock()

	if snap == nil {
		return nil, true
	}
	expired := c.now().Sub(snap.CreatedAt) >= c.ttl
	return snap, expired
}

// GetByCategory filters the current snapshot down to one category, sorted
// by publication time descending and truncated to the per-category limit.
// Returns an empty slice when no snapshot exists.
func (c *ArticleCache) GetByCategory(category entity.Category) []entity.Article {
	snap, _ := c.Get()
	if snap == nil {
		return nil
	}

	var out []entity.Article
	for _, a := range snap.Articles {
		if a.Category == category {
			out = append(out, a)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PublishedAt.After(out[j].PublishedAt)
	})

	if len(out) > c.maxItems {
		out = out[:c.maxItems]
	}
	return out
}

// Len reports the size of the current snapshot, 0 when none exists.
func (c *ArticleCache) Len() int {
	snap, _ := c.Get()
	if snap == nil {
		return 0
	}
	return len(snap.Articles)
}
