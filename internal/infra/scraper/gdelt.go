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
	"time"

	"github.com/sony/gobreaker"

	"newspulse/internal/domain/entity"
	"newspulse/internal/ratelimit"
	"newspulse/internal/resilience/circuitbreaker"
	"newspulse/internal/resilience/retry"
	"newspulse/internal/usecase/scrape"
)

const (
	gdeltTimespan   = "12h"
	gdeltMaxRecords = "100"

	// gdeltSeenDateLayout matches the compact timestamps in artlist
	// responses, e.g. "20240101T120000Z".
	gdeltSeenDateLayout = "20060102T150405Z"
)

// GDELTFetcher implements SourceFetcher for the GDELT 2.0 document API.
// Unlike the feed adapters it receives provider-computed tone and source
// country, which are carried through instead of the lexical scorer.
type GDELTFetcher struct {
	client         *http.Client
	gate           *ratelimit.Gate
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
}

// NewGDELTFetcher creates a new GDELTFetcher with the given HTTP client
// and shared rate gate. API sources use the stricter circuit breaker
// profile since providers throttle aggressively.
func NewGDELTFetcher(client *http.Client, gate *ratelimit.Gate) *GDELTFetcher {
	return &GDELTFetcher{
		client:         client,
		gate:           gate,
		circuitBreaker: circuitbreaker.New(circuitbreaker.APISourceConfig()),
		retryConfig:    retry.SourceFetchConfig(),
	}
}

type gdeltResponse struct {
	Articles []gdeltArticle `json:"articles"`
}

type gdeltArticle struct {
	URL           string  `json:"url"`
	Title         string  `json:"title"`
	Domain        string  `json:"domain"`
	SeenDate      string  `json:"seendate"`
	SourceCountry string  `json:"sourcecountry"`
	Tone          float64 `json:"tone"`
}

// Fetch queries the GDELT document API for recent articles matching the
// source query.
func (g *GDELTFetcher) Fetch(ctx context.Context, src entity.Source) ([]scrape.RawArticle, error) {
	var articles []scrape.RawArticle

	retryErr := retry.WithBackoff(ctx, g.retryConfig, func() error {
		cbResult, err := g.circuitBreaker.Execute(func() (interface{}, error) {
			return g.doFetch(ctx, src)
		})

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("gdelt circuit breaker open, request rejected",
					slog.String("source", src.Name),
					slog.String("state", g.circuitBreaker.State().String()))
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
func (g *GDELTFetcher) doFetch(ctx context.Context, src entity.Source) ([]scrape.RawArticle, error) {
	reqURL, err := g.buildURL(src)
	if err != nil {
		return nil, err
	}

	if err := validateURL(reqURL); err != nil {
		return nil, fmt.Errorf("URL validation failed: %w", err)
	}

	if err := waitForTurn(ctx, g.gate); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", feedUserAgent)

	resp, err := g.client.Do(req)
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

	var parsed gdeltResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	articles := make([]scrape.RawArticle, 0, len(parsed.Articles))
	for _, a := range parsed.Articles {
		if a.Title == "" || a.URL == "" {
			continue
		}

		source := a.Domain
		if source == "" {
			source = src.Name
		}

		var loc *entity.Location
		if a.SourceCountry != "" {
			loc = &entity.Location{Country: a.SourceCountry}
		}

		articles = append(articles, scrape.RawArticle{
			Title:       a.Title,
			URL:         a.URL,
			Source:      source,
			PublishedAt: parseGDELTDate(a.SeenDate),
			Category:    src.Category,
			Tone:        normalizeGDELTTone(a.Tone),
			HasTone:     true,
			Location:    loc,
		})
	}

	return articles, nil
}

func (g *GDELTFetcher) buildURL(src entity.Source) (string, error) {
	u, err := url.Parse(src.URL)
	if err != nil {
		return "", fmt.Errorf("invalid source URL: %w", err)
	}

	q := u.Query()
	q.Set("query", src.Query)
	q.Set("mode", "artlist")
	q.Set("format", "json")
	q.Set("maxrecords", gdeltMaxRecords)
	q.Set("timespan", gdeltTimespan)
	q.Set("sort", "datedesc")
	u.RawQuery = q.Encode()

	return u.String(), nil
}

func parseGDELTDate(s string) time.Time {
	if t, err := time.Parse(gdeltSeenDateLayout, s); err == nil {
		return t
	}
	return parseItemDate(s)
}

// normalizeGDELTTone maps the provider tone scale (roughly -100..100,
// almost always within -10..10) onto [-1, 1].
func normalizeGDELTTone(tone float64) float64 {
	return clampTone(tone / 10)
}
