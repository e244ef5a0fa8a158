// Package http provides the HTTP boundary of the engine: the public read
// API handlers, health endpoints, the metrics endpoint, and the shared
// middleware chain (request ID, logging, recovery, inbound rate limiting).
package http

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"runtime/debug"
	"sync"
	"time"

	"newspulse/internal/handler/http/requestid"
	"newspulse/internal/handler/http/respond"
	"newspulse/internal/handler/http/responsewriter"
)

// Logging returns middleware that logs HTTP requests with structured logging.
// It captures request details, response status, size, and processing duration.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			wrapped := responsewriter.Wrap(w)
			next.ServeHTTP(wrapped, r)

			reqID := requestid.FromContext(r.Context())
			duration := time.Since(start)

			logger.Info("request completed",
				slog.String("request_id", reqID),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("query", r.URL.RawQuery),
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("user_agent", r.Header.Get("User-Agent")),
				slog.Int("status", wrapped.StatusCode()),
				slog.Int("bytes", wrapped.BytesWritten()),
				slog.Duration("duration", duration),
			)
		})
	}
}

// Recover returns middleware that catches panics and logs them with structured logging.
// It prevents the server from crashing and returns a 500 Internal Server Error response.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					reqID := requestid.FromContext(r.Context())
					stack := string(debug.Stack())

					respond.SafeError(
						w,
						http.StatusInternalServerError,
						fmt.Errorf("internal error"),
					)

					logger.Error("panic recovered",
						slog.String("request_id", reqID),
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
						slog.Any("panic", rec),
						slog.String("stack", stack),
					)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// requestRecord stores request timestamps for sliding window rate limiting.
type requestRecord struct {
	timestamps []time.Time
	mu         sync.Mutex
}

// RateLimiter implements IP address-based rate limiting middleware using a
// sliding window algorithm. The public API is unauthenticated, so the
// limiter is the only inbound abuse control.
type RateLimiter struct {
	records   sync.Map // map[string]*requestRecord
	limit     int
	window    time.Duration
	cleanMu   sync.Mutex
	lastClean time.Time
}

// NewRateLimiter creates a new rate limiting middleware.
// limit is the maximum number of requests allowed within window.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:     limit,
		window:    window,
		lastClean: time.Now(),
	}
}

// Limit applies rate limiting to incoming requests based on client IP address.
// Returns 429 Too Many Requests if the rate limit is exceeded.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := extractIP(r)

		rl.periodicCleanup()

		if !rl.allow(ip) {
			respond.SafeError(w, http.StatusTooManyRequests, fmt.Errorf("rate limit exceeded, must be retried later"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// allow determines if a request is permitted and records the timestamp if allowed.
func (rl *RateLimiter) allow(ip string) bool {
	now := time.Now()

	val, _ := rl.records.LoadOrStore(ip, &requestRecord{
		timestamps: make([]time.Time, 0, rl.limit),
	})
	record := val.(*requestRecord)

	record.mu.Lock()
	defer record.mu.Unlock()

	cutoff := now.Add(-rl.window)
	valid := record.timestamps[:0]
	for _, ts := range record.timestamps {
		if ts.After(cutoff) {
			valid = append(valid, ts)
		}
	}
	record.timestamps = valid

	if len(record.timestamps) >= rl.limit {
		return false
	}

	record.timestamps = append(record.timestamps, now)
	return true
}

// periodicCleanup removes stale per-IP records every 10 minutes so the
// limiter does not grow without bound.
func (rl *RateLimiter) periodicCleanup() {
	rl.cleanMu.Lock()
	defer rl.cleanMu.Unlock()

	if time.Since(rl.lastClean) < 10*time.Minute {
		return
	}

	rl.lastClean = time.Now()
	cutoff := time.Now().Add(-rl.window * 2)

	rl.records.Range(func(key, value interface{}) bool {
		record := value.(*requestRecord)
		record.mu.Lock()
		outdated := true
		for _, ts := range record.timestamps {
			if ts.After(cutoff) {
				outdated = false
				break
			}
		}
		record.mu.Unlock()
		if outdated {
			rl.records.Delete(key)
		}
		return true
	})
}

// extractIP extracts the client IP address from the HTTP request.
// It checks X-Forwarded-For and X-Real-IP headers before falling back to RemoteAddr.
func extractIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if ip := parseFirstIP(xff); ip != "" {
			return ip
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		if ip := net.ParseIP(xri); ip != nil {
			return ip.String()
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// parseFirstIP parses the first IP address from a comma-separated list.
func parseFirstIP(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == ',' {
			if ip := net.ParseIP(s[:i]); ip != nil {
				return ip.String()
			}
			return ""
		}
	}
	if ip := net.ParseIP(s); ip != nil {
		return ip.String()
	}
	return ""
}
