// Package trending computes the trending-topics view from the current
// article snapshot. Topics are keywords extracted from titles, counted
// across the whole snapshot.
package trending

import (
	"sort"
	"strings"
	"sync"
	"time"

	"newspulse/internal/cache"
	"newspulse/internal/domain/entity"
	"newspulse/internal/observability/metrics"
)

// DefaultLimit caps the number of topics returned.
const DefaultLimit = 10

// minWordLength is exclusive: only words longer than this count as topics.
const minWordLength = 4

// FallbackTopics is served when no article snapshot exists at all, so the
// trending endpoint never returns an empty answer on a cold start.
var FallbackTopics = []entity.TrendingTopic{
	{Name: "Global Economic Updates", Count: 245, Sentiment: 0.3, Category: entity.CategoryBusiness},
	{Name: "Technology Innovation", Count: 189, Sentiment: 0.8, Category: entity.CategoryTechnology},
	{Name: "World News", Count: 167, Sentiment: -0.4, Category: entity.CategoryWorld},
}

// Aggregator derives trending topics from the article cache. Derivations
// are memoized: a result computed from one snapshot is reused until TTL
// elapses or a newer snapshot appears, so trending can run on a longer
// freshness window than the article data itself.
type Aggregator struct {
	Cache *cache.ArticleCache
	Limit int

	// TTL bounds how long a memoized derivation is reused. Zero disables
	// memoization.
	TTL time.Duration

	mu         sync.Mutex
	memo       []entity.TrendingTopic
	memoAt     time.Time
	memoSnapAt time.Time
}

// NewAggregator creates an Aggregator with the default topic limit and no
// memoization.
func NewAggregator(articleCache *cache.ArticleCache) *Aggregator {
	return &Aggregator{
		Cache: articleCache,
		Limit: DefaultLimit,
	}
}

// topicState accumulates per-keyword counts while scanning the snapshot.
type topicState struct {
	count     int
	sentiment float64
	order     int // insertion order, stabilizes equal counts

	categoryCounts map[entity.Category]int
	categoryLast   map[entity.Category]int
}

// Topics computes the current trending topics. Every keyword longer than
// four characters counts once per title; its sentiment is a running blend
// of the tones of the articles mentioning it, and its category is the one
// contributing most mentions (ties go to the category seen most recently).
// With no snapshot at all the static fallback list is returned.
func (a *Aggregator) Topics() []entity.TrendingTopic {
	start := time.Now()

	snap, _ := a.Cache.Get()
	if snap == nil {
		metrics.RecordTrendingFallback()
		out := make([]entity.TrendingTopic, len(FallbackTopics))
		copy(out, FallbackTopics)
		return out
	}
	// An empty-but-valid snapshot is a real answer, not a source failure.
	if len(snap.Articles) == 0 {
		return []entity.TrendingTopic{}
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.memo != nil && a.memoSnapAt.Equal(snap.CreatedAt) &&
		a.TTL > 0 && time.Since(a.memoAt) < a.TTL {
		out := make([]entity.TrendingTopic, len(a.memo))
		copy(out, a.memo)
		return out
	}

	states := make(map[string]*topicState)
	var names []string

	for idx, article := range snap.Articles {
		for word := range titleKeywords(article.Title) {
			state, ok := states[word]
			if !ok {
				state = &topicState{
					order:          len(names),
					categoryCounts: make(map[entity.Category]int),
					categoryLast:   make(map[entity.Category]int),
				}
				states[word] = state
				names = append(names, word)
			}

			state.count++
			state.sentiment = (state.sentiment + article.Tone) / 2
			state.categoryCounts[article.Category]++
			state.categoryLast[article.Category] = idx
		}
	}

	sort.SliceStable(names, func(i, j int) bool {
		si, sj := states[names[i]], states[names[j]]
		if si.count != sj.count {
			return si.count > sj.count
		}
		return si.order < sj.order
	})

	limit := a.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(names) > limit {
		names = names[:limit]
	}

	topics := make([]entity.TrendingTopic, 0, len(names))
	for _, name := range names {
		state := states[name]
		topics = append(topics, entity.TrendingTopic{
			Name:      name,
			Count:     state.count,
			Sentiment: state.sentiment,
			Category:  dominantCategory(state),
		})
	}

	a.memo = topics
	a.memoAt = time.Now()
	a.memoSnapAt = snap.CreatedAt

	metrics.RecordTrendingBuild(time.Since(start))

	out := make([]entity.TrendingTopic, len(topics))
	copy(out, topics)
	return out
}

// titleKeywords returns the unique lowercase words of a title longer than
// minWordLength characters.
func titleKeywords(title string) map[string]struct{} {
	words := make(map[string]struct{})
	for _, word := range strings.Fields(title) {
		if len(word) > minWordLength {
			words[strings.ToLower(word)] = struct{}{}
		}
	}
	return words
}

// dominantCategory picks the category with the most mentions; on a tie the
// category whose latest mention came last wins.
func dominantCategory(state *topicState) entity.Category {
	var best entity.Category
	bestCount := -1
	bestLast := -1

	for category, count := range state.categoryCounts {
		last := state.categoryLast[category]
		if count > bestCount || (count == bestCount && last > bestLast) {
			best = category
			bestCount = count
			bestLast = last
		}
	}
	return best
}
