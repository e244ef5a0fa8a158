package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"newspulse/internal/cache"
	"newspulse/internal/domain/entity"
)

func snapshotArticles() []entity.Article {
	return []entity.Article{
		{
			URL:         "https://example.com/a",
			Title:       "Something happened",
			Source:      "Example",
			Category:    entity.CategoryWorld,
			PublishedAt: time.Now(),
		},
	}
}

func TestHealthHandler_FreshSnapshot(t *testing.T) {
	c := cache.New()
	c.Put(snapshotArticles())

	handler := &HealthHandler{Cache: c, Version: "test"}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("status = %q, want healthy", resp.Status)
	}
	if resp.Checks["cache"].Status != "healthy" {
		t.Errorf("cache check = %+v, want healthy", resp.Checks["cache"])
	}
}

func TestHealthHandler_NoSnapshotIsDegradedNotDown(t *testing.T) {
	handler := &HealthHandler{Cache: cache.New(), Version: "test"}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	// Fallback data is still served before the first scrape, so the
	// process stays 200.
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Checks["cache"].Status != "degraded" {
		t.Errorf("cache check = %+v, want degraded", resp.Checks["cache"])
	}
}

func TestHealthHandler_ExpiredSnapshotIsDegraded(t *testing.T) {
	c := cache.New(cache.WithTTL(time.Nanosecond))
	c.Put(snapshotArticles())
	time.Sleep(time.Millisecond)

	handler := &HealthHandler{Cache: c, Version: "test"}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	var resp HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Checks["cache"].Status != "degraded" {
		t.Errorf("cache check = %+v, want degraded past TTL", resp.Checks["cache"])
	}
}

func TestHealthHandler_MissingCacheIsUnhealthy(t *testing.T) {
	handler := &HealthHandler{Version: "test"}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestReadyHandler_NotReadyBeforeFirstSnapshot(t *testing.T) {
	handler := &ReadyHandler{Cache: cache.New()}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503 before first snapshot", rec.Code)
	}
}

func TestReadyHandler_ReadyAfterSnapshot(t *testing.T) {
	c := cache.New()
	c.Put(snapshotArticles())

	handler := &ReadyHandler{Cache: c}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 once a snapshot exists", rec.Code)
	}
}

func TestLiveHandler_AlwaysOK(t *testing.T) {
	handler := &LiveHandler{}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/live", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != "alive" {
		t.Errorf("body = %q, want alive", rec.Body.String())
	}
}
