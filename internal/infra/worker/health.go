package worker

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"
)

// HealthServer serves the scheduler's probe endpoints:
//   - GET /health: liveness, always 200
//   - GET /health/ready: readiness, 200 once the first scrape tick has
//     produced a snapshot, 503 before that
//
// Start blocks until the context is cancelled and then shuts the server
// down gracefully.
type HealthServer struct {
	addr    string
	logger  *slog.Logger
	isReady atomic.Bool
	server  *http.Server
}

type healthResponse struct {
	Status string `json:"status"`
}

// NewHealthServer creates a health server listening on addr. It starts
// in the not-ready state; call SetReady(true) once a snapshot exists.
func NewHealthServer(addr string, logger *slog.Logger) *HealthServer {
	return &HealthServer{
		addr:   addr,
		logger: logger,
	}
}

// Start runs the probe server until ctx is cancelled. It returns
// http.ErrServerClosed after a clean shutdown.
func (h *HealthServer) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", h.handleLiveness)
	mux.HandleFunc("/health/ready", h.handleReadiness)

	h.server = &http.Server{
		Addr:         h.addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		h.logger.Info("health server starting", slog.String("addr", h.addr))
		if err := h.server.ListenAndServe(); err != nil {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		h.logger.Info("health server shutting down")
		if err := h.server.Shutdown(shutdownCtx); err != nil {
			h.logger.Error("health server shutdown failed", slog.Any("error", err))
			return err
		}
		return http.ErrServerClosed

	case err := <-errChan:
		if err != http.ErrServerClosed {
			h.logger.Error("health server failed", slog.Any("error", err))
		}
		return err
	}
}

// SetReady flips the readiness state reported by /health/ready.
func (h *HealthServer) SetReady(ready bool) {
	h.isReady.Store(ready)
	h.logger.Info("health server readiness changed", slog.Bool("ready", ready))
}

func (h *HealthServer) handleLiveness(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(healthResponse{Status: "ok"}); err != nil {
		h.logger.Error("failed to encode liveness response", slog.Any("error", err))
	}
}

func (h *HealthServer) handleReadiness(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if h.isReady.Load() {
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(healthResponse{Status: "ok"}); err != nil {
			h.logger.Error("failed to encode readiness response", slog.Any("error", err))
		}
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
		if err := json.NewEncoder(w).Encode(healthResponse{Status: "not ready"}); err != nil {
			h.logger.Error("failed to encode not ready response", slog.Any("error", err))
		}
	}
}
