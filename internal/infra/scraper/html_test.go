package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"newspulse/internal/domain/entity"
)

const frontPageHTML = `<!DOCTYPE html>
<html><body>
<article class="story">
  <h3 class="headline">Markets rally on trade agreement</h3>
  <a class="story-link" href="/business/markets-rally">Read</a>
  <time datetime="2026-08-30T09:00:00Z">Aug 30</time>
</article>
<article class="story">
  <h3 class="headline">Tech breakthrough in chip design</h3>
  <a class="story-link" href="https://other.example.com/chips">Read</a>
  <time datetime="2026-08-30T10:30:00Z">Aug 30</time>
</article>
<article class="story">
  <h3 class="headline"></h3>
  <a class="story-link" href="/ignored">Read</a>
</article>
<article class="story">
  <h3 class="headline">Duplicate link story</h3>
  <a class="story-link" href="/business/markets-rally">Read</a>
</article>
</body></html>`

func htmlSource(url string) entity.Source {
	return entity.Source{
		Name:       "Test Outlet",
		SourceType: entity.SourceTypeHTML,
		URL:        url,
		ScraperConfig: &entity.ScraperConfig{
			ItemSelector:  "article.story",
			TitleSelector: ".headline",
			URLSelector:   "a.story-link",
			TimeSelector:  "time",
		},
	}
}

func TestHTMLScraper_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(frontPageHTML))
	}))
	defer server.Close()

	scraper := NewHTMLScraper(server.Client(), nil)
	articles, err := scraper.Fetch(context.Background(), htmlSource(server.URL))
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	// Empty-title item skipped, duplicate URL dropped.
	if len(articles) != 2 {
		t.Fatalf("len(articles) = %d, want 2", len(articles))
	}

	first := articles[0]
	if first.Title != "Markets rally on trade agreement" {
		t.Errorf("Title = %q", first.Title)
	}
	if first.URL != server.URL+"/business/markets-rally" {
		t.Errorf("URL = %q, want absolute against page URL", first.URL)
	}
	if first.Source != "Test Outlet" {
		t.Errorf("Source = %q", first.Source)
	}
	want := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	if !first.PublishedAt.Equal(want) {
		t.Errorf("PublishedAt = %v, want %v", first.PublishedAt, want)
	}

	if articles[1].URL != "https://other.example.com/chips" {
		t.Errorf("absolute URL rewritten: %q", articles[1].URL)
	}
}

func TestHTMLScraper_Fetch_NoSelectors(t *testing.T) {
	scraper := NewHTMLScraper(http.DefaultClient, nil)
	src := entity.Source{Name: "Bare", SourceType: entity.SourceTypeHTML, URL: "https://example.com"}

	if _, err := scraper.Fetch(context.Background(), src); err == nil {
		t.Error("expected error for source without selectors")
	}
}

func TestHTMLScraper_Fetch_NoMatches(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body><p>nothing here</p></body></html>"))
	}))
	defer server.Close()

	scraper := NewHTMLScraper(server.Client(), nil)
	if _, err := scraper.Fetch(context.Background(), htmlSource(server.URL)); err == nil {
		t.Error("expected error when no items match the selector")
	}
}

func TestHTMLScraper_Fetch_PinnedCategory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(frontPageHTML))
	}))
	defer server.Close()

	src := htmlSource(server.URL)
	src.Category = entity.CategoryBusiness

	scraper := NewHTMLScraper(server.Client(), nil)
	articles, err := scraper.Fetch(context.Background(), src)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	for _, a := range articles {
		if a.Category != entity.CategoryBusiness {
			t.Errorf("Category = %q, want pinned Business", a.Category)
		}
	}
}
