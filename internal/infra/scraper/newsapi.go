package scraper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/sony/gobreaker"

	"newspulse/internal/domain/entity"
	"newspulse/internal/ratelimit"
	"newspulse/internal/resilience/circuitbreaker"
	"newspulse/internal/resilience/retry"
	"newspulse/internal/usecase/scrape"
)

// ErrMissingAPIKey is returned when a keyed source has no key in its
// configured environment variable. The scrape tick logs it and moves on.
var ErrMissingAPIKey = errors.New("api key not configured")

// NewsAPIFetcher implements SourceFetcher for NewsAPI-style headline
// endpoints. The API key is read from the environment variable named on
// the source and sent in the X-Api-Key header.
type NewsAPIFetcher struct {
	client         *http.Client
	gate           *ratelimit.Gate
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
}

// NewNewsAPIFetcher creates a new NewsAPIFetcher with the given HTTP
// client and shared rate gate.
func NewNewsAPIFetcher(client *http.Client, gate *ratelimit.Gate) *NewsAPIFetcher {
	return &NewsAPIFetcher{
		client:         client,
		gate:           gate,
		circuitBreaker: circuitbreaker.New(circuitbreaker.APISourceConfig()),
		retryConfig:    retry.SourceFetchConfig(),
	}
}

type newsAPIResponse struct {
	Status   string           `json:"status"`
	Code     string           `json:"code"`
	Message  string           `json:"message"`
	Articles []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}

// Fetch retrieves current headlines for the given source.
func (n *NewsAPIFetcher) Fetch(ctx context.Context, src entity.Source) ([]scrape.RawArticle, error) {
	apiKey := os.Getenv(src.APIKeyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("source %s: %w (set %s)", src.Name, ErrMissingAPIKey, src.APIKeyEnv)
	}

	var articles []scrape.RawArticle

	retryErr := retry.WithBackoff(ctx, n.retryConfig, func() error {
		cbResult, err := n.circuitBreaker.Execute(func() (interface{}, error) {
			return n.doFetch(ctx, src, apiKey)
		})

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("newsapi circuit breaker open, request rejected",
					slog.String("source", src.Name),
					slog.String("state", n.circuitBreaker.State().String()))
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

// doFetch performs the actual API call without retry or circuit breaker.
func (n *NewsAPIFetcher) doFetch(ctx context.Context, src entity.Source, apiKey string) ([]scrape.RawArticle, error) {
	reqURL, err := buildNewsAPIURL(src)
	if err != nil {
		return nil, err
	}

	if err := validateURL(reqURL); err != nil {
		return nil, fmt.Errorf("URL validation failed: %w", err)
	}

	if err := waitForTurn(ctx, n.gate); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", feedUserAgent)
	req.Header.Set("X-Api-Key", apiKey)

	resp, err := n.client.Do(req)
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

	var parsed newsAPIResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if parsed.Status != "ok" {
		return nil, fmt.Errorf("provider error %s: %s", parsed.Code, parsed.Message)
	}

	articles := make([]scrape.RawArticle, 0, len(parsed.Articles))
	for _, a := range parsed.Articles {
		if a.Title == "" || a.URL == "" {
			continue
		}

		pubAt := time.Now()
		if t, err := time.Parse(time.RFC3339, a.PublishedAt); err == nil {
			pubAt = t
		}

		source := a.Source.Name
		if source == "" {
			source = src.Name
		}

		articles = append(articles, scrape.RawArticle{
			Title:       a.Title,
			URL:         a.URL,
			Source:      source,
			PublishedAt: pubAt,
			Category:    src.Category,
		})
	}

	return articles, nil
}

// buildNewsAPIURL merges the source query string into the endpoint URL.
func buildNewsAPIURL(src entity.Source) (string, error) {
	u, err := url.Parse(src.URL)
	if err != nil {
		return "", fmt.Errorf("invalid source URL: %w", err)
	}

	if src.Query != "" {
		extra, err := url.ParseQuery(src.Query)
		if err != nil {
			return "", fmt.Errorf("invalid source query: %w", err)
		}
		q := u.Query()
		for key, values := range extra {
			for _, v := range values {
				q.Set(key, v)
			}
		}
		u.RawQuery = q.Encode()
	}

	return u.String(), nil
}
