package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"newspulse/internal/domain/entity"
)

const headlinesResponse = `{
  "status": "ok",
  "articles": [
    {
      "source": {"name": "Example Times"},
      "title": "Economy shows signs of growth",
      "url": "https://example.com/economy-growth",
      "publishedAt": "2026-08-30T09:45:00Z"
    },
    {
      "source": {"name": ""},
      "title": "Local team wins championship",
      "url": "https://example.com/championship",
      "publishedAt": "not-a-date"
    }
  ]
}`

func newsAPISource(url string) entity.Source {
	return entity.Source{
		Name:       "NewsAPI",
		SourceType: entity.SourceTypeNewsAPI,
		URL:        url,
		Query:      "language=en",
		APIKeyEnv:  "TEST_NEWSAPI_KEY",
	}
}

func TestNewsAPIFetcher_Fetch(t *testing.T) {
	t.Setenv("TEST_NEWSAPI_KEY", "secret")

	var gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-Api-Key")
		if got := r.URL.Query().Get("language"); got != "en" {
			t.Errorf("language param = %q, want en", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(headlinesResponse))
	}))
	defer server.Close()

	fetcher := NewNewsAPIFetcher(server.Client(), nil)
	articles, err := fetcher.Fetch(context.Background(), newsAPISource(server.URL))
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if gotKey != "secret" {
		t.Errorf("X-Api-Key = %q", gotKey)
	}
	if len(articles) != 2 {
		t.Fatalf("len(articles) = %d, want 2", len(articles))
	}
	if articles[0].Source != "Example Times" {
		t.Errorf("Source = %q", articles[0].Source)
	}
	// Empty provider source name falls back to the configured name.
	if articles[1].Source != "NewsAPI" {
		t.Errorf("Source = %q, want configured fallback", articles[1].Source)
	}
}

func TestNewsAPIFetcher_Fetch_MissingKey(t *testing.T) {
	fetcher := NewNewsAPIFetcher(http.DefaultClient, nil)

	_, err := fetcher.Fetch(context.Background(), newsAPISource("https://example.com"))
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("error = %v, want ErrMissingAPIKey", err)
	}
}

func TestNewsAPIFetcher_Fetch_ProviderError(t *testing.T) {
	t.Setenv("TEST_NEWSAPI_KEY", "secret")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"error","code":"rateLimited","message":"slow down"}`))
	}))
	defer server.Close()

	fetcher := NewNewsAPIFetcher(server.Client(), nil)
	if _, err := fetcher.Fetch(context.Background(), newsAPISource(server.URL)); err == nil {
		t.Error("expected error for provider error status")
	}
}
