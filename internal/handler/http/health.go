package http

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"newspulse/internal/cache"
	"newspulse/internal/observability/slo"
)

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy" or "unhealthy"
	Timestamp string                 `json:"timestamp"` // ISO 8601 format
	Checks    map[string]CheckStatus `json:"checks"`    // Status of each check item
	Version   string                 `json:"version"`   // Application version
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string                 `json:"status"`            // "healthy", "degraded" or "unhealthy"
	Message string                 `json:"message,omitempty"` // Optional status message
	Details map[string]interface{} `json:"details,omitempty"` // Optional additional details
}

// HealthHandler reports the engine's operational state. The only stateful
// dependency is the in-memory article cache, so its snapshot is the
// central check: missing means unhealthy-degraded startup, expired means
// degraded, fresh means healthy. A degraded snapshot is never a failure
// because stale data is still served.
type HealthHandler struct {
	Cache   *cache.ArticleCache
	Version string
}

// ServeHTTP performs the snapshot check and returns the health status.
// Returns 200 OK in every state but "cache not configured": the process
// serves fallback data even before the first scrape completes.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]CheckStatus)
	status := "healthy"
	statusCode := http.StatusOK

	if h.Cache == nil {
		checks["cache"] = CheckStatus{
			Status:  "unhealthy",
			Message: "not configured",
		}
		status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	} else {
		checks["cache"] = h.checkCache()
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("health: failed to encode response: %v", err)
	}
}

// checkCache inspects the article snapshot.
func (h *HealthHandler) checkCache() CheckStatus {
	snap, expired := h.Cache.Get()
	if snap == nil {
		return CheckStatus{
			Status:  "degraded",
			Message: "no snapshot yet, serving fallback data",
		}
	}

	age := time.Since(snap.CreatedAt).Seconds()
	slo.ObserveSnapshotAge(age)

	details := map[string]interface{}{
		"articles":    len(snap.Articles),
		"created_at":  snap.CreatedAt.UTC().Format(time.RFC3339),
		"age_seconds": age,
	}

	if expired {
		return CheckStatus{
			Status:  "degraded",
			Message: "snapshot past TTL, refresh pending",
			Details: details,
		}
	}

	return CheckStatus{
		Status:  "healthy",
		Details: details,
	}
}

// ReadyHandler handles Kubernetes readiness probe requests. The engine is
// ready once a snapshot exists; before that, queries would serve only
// fallback data, so traffic should wait for the startup scrape.
type ReadyHandler struct {
	Cache *cache.ArticleCache
}

// ServeHTTP returns 200 OK once the first snapshot has been produced,
// or 503 Service Unavailable before that.
func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.Cache == nil {
		http.Error(w, "cache not configured", http.StatusServiceUnavailable)
		return
	}

	snap, _ := h.Cache.Get()
	if snap == nil {
		http.Error(w, "no article snapshot yet", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("ready")); err != nil {
		log.Printf("ready: failed to write response: %v", err)
	}
}

// LiveHandler handles Kubernetes liveness probe requests.
// It performs a lightweight check to verify the application is responsive.
type LiveHandler struct{}

// ServeHTTP performs a simple liveness check and always returns 200 OK
// if the application is running and able to respond.
func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("alive")); err != nil {
		log.Printf("alive: failed to write response: %v", err)
	}
}
