package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sony/gobreaker"

	"newspulse/internal/domain/entity"
	"newspulse/internal/ratelimit"
	"newspulse/internal/resilience/circuitbreaker"
	"newspulse/internal/resilience/retry"
	"newspulse/internal/usecase/scrape"
)

// HTMLScraper implements SourceFetcher for outlet front pages.
// It parses the page with goquery and extracts articles using the CSS
// selectors configured on the source.
type HTMLScraper struct {
	client         *http.Client
	gate           *ratelimit.Gate
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
}

// NewHTMLScraper creates a new HTMLScraper with the given HTTP client and
// shared rate gate. It automatically configures circuit breaker and retry
// logic for resilience.
func NewHTMLScraper(client *http.Client, gate *ratelimit.Gate) *HTMLScraper {
	return &HTMLScraper{
		client:         client,
		gate:           gate,
		circuitBreaker: circuitbreaker.New(circuitbreaker.SourceFetchConfig()),
		retryConfig:    retry.SourceFetchConfig(),
	}
}

// Fetch retrieves and parses articles from an outlet front page.
func (h *HTMLScraper) Fetch(ctx context.Context, src entity.Source) ([]scrape.RawArticle, error) {
	if src.ScraperConfig == nil {
		return nil, errors.New("selectors not configured for HTML source")
	}

	var articles []scrape.RawArticle

	retryErr := retry.WithBackoff(ctx, h.retryConfig, func() error {
		cbResult, err := h.circuitBreaker.Execute(func() (interface{}, error) {
			return h.doFetch(ctx, src)
		})

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("html scraper circuit breaker open, request rejected",
					slog.String("source", src.Name),
					slog.String("url", src.URL),
					slog.String("state", h.circuitBreaker.State().String()))
				return err
			}
			return err
		}

		articles = cbResult.([]scrape.RawArticle)
		return nil
	})

	if retryErr != nil {
		return nil, retryErr
	}

	return articles, nil
}

// doFetch performs the actual scraping without retry or circuit breaker.
func (h *HTMLScraper) doFetch(ctx context.Context, src entity.Source) ([]scrape.RawArticle, error) {
	if err := validateURL(src.URL); err != nil {
		return nil, fmt.Errorf("URL validation failed: %w", err)
	}

	if err := waitForTurn(ctx, h.gate); err != nil {
		return nil, err
	}

	doc, err := h.fetchHTML(ctx, src.URL)
	if err != nil {
		return nil, fmt.Errorf("fetch HTML failed: %w", err)
	}

	articles := h.extractArticles(doc, src)
	if len(articles) == 0 {
		return nil, fmt.Errorf("no articles found with selector: %s", src.ScraperConfig.ItemSelector)
	}

	return articles, nil
}

// fetchHTML fetches and parses HTML from the given URL.
func (h *HTMLScraper) fetchHTML(ctx context.Context, urlStr string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	setBrowserHeaders(req)

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &retry.HTTPError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("unexpected status: %s", resp.Status),
		}
	}

	// Limit body size to prevent memory exhaustion
	limitedReader := io.LimitReader(resp.Body, maxBodySize)

	doc, err := goquery.NewDocumentFromReader(limitedReader)
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}

	return doc, nil
}

// extractArticles walks the configured item selector and builds raw
// articles. Items with an empty title or link are skipped, and duplicate
// URLs within one page are dropped.
func (h *HTMLScraper) extractArticles(doc *goquery.Document, src entity.Source) []scrape.RawArticle {
	config := src.ScraperConfig

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = src.URL
	}

	var articles []scrape.RawArticle
	seen := make(map[string]bool)

	doc.Find(config.ItemSelector).Each(func(i int, itemEl *goquery.Selection) {
		title := strings.TrimSpace(itemEl.Find(config.TitleSelector).First().Text())
		if title == "" {
			slog.Debug("skipping item with empty title", slog.Int("index", i))
			return
		}

		href, _ := itemEl.Find(config.URLSelector).First().Attr("href")
		href = strings.TrimSpace(href)
		if href == "" {
			slog.Debug("skipping item with empty URL",
				slog.Int("index", i), slog.String("title", title))
			return
		}

		itemURL := makeAbsoluteURL(href, baseURL)
		if seen[itemURL] {
			return
		}
		seen[itemURL] = true

		timeEl := itemEl.Find(config.TimeSelector).First()
		dateStr, ok := timeEl.Attr("datetime")
		if !ok {
			dateStr = timeEl.Text()
		}

		articles = append(articles, scrape.RawArticle{
			Title:       title,
			URL:         itemURL,
			Source:      src.Name,
			PublishedAt: parseItemDate(dateStr),
			Category:    src.Category,
		})
	})

	return articles
}
