package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"newspulse/internal/domain/entity"
)

const gdeltArtlist = `{
  "articles": [
    {
      "url": "https://news.example.org/flood-warning",
      "title": "Flood warning issued for coastal towns",
      "domain": "news.example.org",
      "seendate": "20260830T063000Z",
      "sourcecountry": "United Kingdom",
      "tone": -6.5
    },
    {
      "url": "https://paper.example.net/tech-expo",
      "title": "Tech expo draws record crowds",
      "domain": "paper.example.net",
      "seendate": "20260830T071500Z",
      "sourcecountry": "",
      "tone": 24.0
    },
    {
      "url": "",
      "title": "Dropped: no url",
      "seendate": "20260830T070000Z"
    }
  ]
}`

func TestGDELTFetcher_Fetch(t *testing.T) {
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(gdeltArtlist))
	}))
	defer server.Close()

	fetcher := NewGDELTFetcher(server.Client(), nil)
	src := entity.Source{
		Name:       "GDELT",
		SourceType: entity.SourceTypeGDELT,
		URL:        server.URL,
		Query:      "sourcelang:english",
	}

	articles, err := fetcher.Fetch(context.Background(), src)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if got := gotQuery["query"]; len(got) != 1 || got[0] != "sourcelang:english" {
		t.Errorf("query param = %v", got)
	}
	if got := gotQuery["format"]; len(got) != 1 || got[0] != "json" {
		t.Errorf("format param = %v", got)
	}

	if len(articles) != 2 {
		t.Fatalf("len(articles) = %d, want 2 (empty-url record dropped)", len(articles))
	}

	first := articles[0]
	if !first.HasTone {
		t.Error("HasTone = false, provider tone should be carried")
	}
	if first.Tone != -0.65 {
		t.Errorf("Tone = %v, want -0.65", first.Tone)
	}
	if first.Location == nil || first.Location.Country != "United Kingdom" {
		t.Errorf("Location = %+v, want UK", first.Location)
	}
	if first.Source != "news.example.org" {
		t.Errorf("Source = %q, want article domain", first.Source)
	}
	want := time.Date(2026, 8, 30, 6, 30, 0, 0, time.UTC)
	if !first.PublishedAt.Equal(want) {
		t.Errorf("PublishedAt = %v, want %v", first.PublishedAt, want)
	}

	// Out-of-range provider tone clamps to [-1, 1].
	if articles[1].Tone != 1 {
		t.Errorf("Tone = %v, want clamped 1", articles[1].Tone)
	}
	if articles[1].Location != nil {
		t.Errorf("Location = %+v, want nil for empty country", articles[1].Location)
	}
}

func TestNormalizeGDELTTone(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{5, 0.5},
		{-5, -0.5},
		{15, 1},
		{-80, -1},
	}
	for _, tt := range tests {
		if got := normalizeGDELTTone(tt.in); got != tt.want {
			t.Errorf("normalizeGDELTTone(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
