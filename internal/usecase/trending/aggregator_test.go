package trending

import (
	"testing"
	"time"

	"newspulse/internal/cache"
	"newspulse/internal/domain/entity"
)

func article(title string, category entity.Category, tone float64) entity.Article {
	return entity.Article{
		URL:         "https://example.com/" + title,
		Title:       title,
		Source:      "Test",
		Category:    category,
		PublishedAt: time.Now(),
		Tone:        tone,
	}
}

func TestTopics_CountsKeywordsAcrossTitles(t *testing.T) {
	c := cache.New()
	c.Put([]entity.Article{
		article("Climate summit opens in Geneva", entity.CategoryWorld, 0.2),
		article("Climate pledge signed by nations", entity.CategoryEnvironment, 0.4),
		article("Markets react to climate deal", entity.CategoryBusiness, -0.1),
	})

	topics := NewAggregator(c).Topics()
	if len(topics) == 0 {
		t.Fatal("Topics() returned nothing")
	}

	if topics[0].Name != "climate" {
		t.Errorf("top topic = %q, want climate", topics[0].Name)
	}
	if topics[0].Count != 3 {
		t.Errorf("climate Count = %d, want 3", topics[0].Count)
	}
}

func TestTopics_ShortWordsIgnored(t *testing.T) {
	c := cache.New()
	c.Put([]entity.Article{
		article("War in the east ends now", entity.CategoryWorld, 0),
	})

	for _, topic := range NewAggregator(c).Topics() {
		if len(topic.Name) <= 4 {
			t.Errorf("topic %q has length %d, want > 4", topic.Name, len(topic.Name))
		}
	}
}

func TestTopics_UniquePerTitle(t *testing.T) {
	c := cache.New()
	c.Put([]entity.Article{
		article("Budget budget budget debate heats up", entity.CategoryPolitics, 0),
	})

	for _, topic := range NewAggregator(c).Topics() {
		if topic.Name == "budget" && topic.Count != 1 {
			t.Errorf("budget Count = %d, want 1 (unique per title)", topic.Count)
		}
	}
}

func TestTopics_DominantCategory(t *testing.T) {
	c := cache.New()
	c.Put([]entity.Article{
		article("Nvidia earnings beat forecasts", entity.CategoryTechnology, 0.5),
		article("Nvidia expands datacenter line", entity.CategoryTechnology, 0.3),
		article("Nvidia shares jump on results", entity.CategoryFinance, 0.4),
	})

	topics := NewAggregator(c).Topics()
	var nvidia *entity.TrendingTopic
	for i := range topics {
		if topics[i].Name == "nvidia" {
			nvidia = &topics[i]
		}
	}
	if nvidia == nil {
		t.Fatal("nvidia topic missing")
	}
	if nvidia.Category != entity.CategoryTechnology {
		t.Errorf("Category = %q, want Technology (2 of 3 mentions)", nvidia.Category)
	}
}

func TestTopics_LimitApplied(t *testing.T) {
	c := cache.New()
	var articles []entity.Article
	titles := []string{
		"Economy grows faster than expected",
		"Housing market shows strain",
		"Elections scheduled for spring",
		"Satellites launched into orbit",
		"Vaccine trials show promise",
	}
	for _, title := range titles {
		articles = append(articles, article(title, entity.CategoryWorld, 0))
	}
	c.Put(articles)

	agg := NewAggregator(c)
	agg.Limit = 3

	if topics := agg.Topics(); len(topics) != 3 {
		t.Errorf("len(topics) = %d, want limit 3", len(topics))
	}
}

func TestTopics_FallbackWhenNoSnapshot(t *testing.T) {
	topics := NewAggregator(cache.New()).Topics()

	if len(topics) != len(FallbackTopics) {
		t.Fatalf("len(topics) = %d, want fallback list", len(topics))
	}
	if topics[0].Name != "Global Economic Updates" || topics[0].Count != 245 {
		t.Errorf("topics[0] = %+v, want static fallback entry", topics[0])
	}
}

func TestTopics_SentimentBlended(t *testing.T) {
	c := cache.New()
	c.Put([]entity.Article{
		article("Storm approaches coastline", entity.CategoryWorld, -0.8),
	})

	for _, topic := range NewAggregator(c).Topics() {
		// One mention: sentiment is (0 + tone) / 2.
		if topic.Name == "storm" && topic.Sentiment != -0.4 {
			t.Errorf("storm Sentiment = %v, want -0.4", topic.Sentiment)
		}
	}
}

func TestTopics_MemoizedWithinTTL(t *testing.T) {
	c := cache.New()
	c.Put([]entity.Article{
		article("Climate summit opens", entity.CategoryWorld, 0.2),
	})

	a := NewAggregator(c)
	a.TTL = time.Minute

	first := a.Topics()
	if len(first) == 0 {
		t.Fatal("Topics() returned nothing")
	}

	// Mutating the returned slice must not leak into the memo.
	first[0].Name = "mutated"

	second := a.Topics()
	if second[0].Name != "climate" {
		t.Errorf("memoized topic = %q, want climate", second[0].Name)
	}
}

func TestTopics_RecomputedForNewSnapshot(t *testing.T) {
	c := cache.New()
	c.Put([]entity.Article{
		article("Climate summit opens", entity.CategoryWorld, 0.2),
	})

	a := NewAggregator(c)
	a.TTL = time.Minute

	if got := a.Topics(); got[0].Name != "climate" {
		t.Fatalf("top topic = %q, want climate", got[0].Name)
	}

	c.Put([]entity.Article{
		article("Election results announced today", entity.CategoryPolitics, 0),
	})

	if got := a.Topics(); got[0].Name != "election" {
		t.Errorf("top topic after new snapshot = %q, want election", got[0].Name)
	}
}

func TestTopics_NoMemoWhenTTLZero(t *testing.T) {
	c := cache.New()
	c.Put([]entity.Article{
		article("Climate summit opens", entity.CategoryWorld, 0.2),
	})

	a := NewAggregator(c)

	first := a.Topics()
	first[0].Count = 999

	if got := a.Topics(); got[0].Count == 999 {
		t.Error("result was memoized with TTL disabled")
	}
}

func TestTopics_EmptySnapshotYieldsEmptyList(t *testing.T) {
	c := cache.New()
	c.Put([]entity.Article{})

	topics := NewAggregator(c).Topics()
	if len(topics) != 0 {
		t.Errorf("len(topics) = %d, want empty list for an empty-but-valid snapshot", len(topics))
	}
}
