package http

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// Timeout returns middleware that enforces request timeouts. A request
// exceeding the duration gets 504 Gateway Timeout. A cold-start read can
// block on a full scrape tick, so the bound keeps clients from hanging.
//
// A mutex serializes the handler goroutine and the timeout path so only
// one of them writes the response.
func Timeout(duration time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), duration)
			defer cancel()

			r = r.WithContext(ctx)

			done := make(chan struct{})
			var mu sync.Mutex
			timedOut := false

			wrapped := &timeoutResponseWriter{
				ResponseWriter: w,
				mu:             &mu,
				timedOut:       &timedOut,
			}

			go func() {
				next.ServeHTTP(wrapped, r)
				close(done)
			}()

			select {
			case <-done:
				return
			case <-ctx.Done():
				mu.Lock()
				timedOut = true
				if !wrapped.written {
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusGatewayTimeout)
					_, _ = w.Write([]byte(`{"error":"request timeout"}`))
				}
				mu.Unlock()
			}
		})
	}
}

// timeoutResponseWriter suppresses handler writes after the timeout
// response has been sent.
type timeoutResponseWriter struct {
	http.ResponseWriter
	mu       *sync.Mutex
	timedOut *bool
	written  bool
}

func (w *timeoutResponseWriter) WriteHeader(statusCode int) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !*w.timedOut && !w.written {
		w.written = true
		w.ResponseWriter.WriteHeader(statusCode)
	}
}

func (w *timeoutResponseWriter) Write(data []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if *w.timedOut {
		return 0, http.ErrHandlerTimeout
	}

	if !w.written {
		w.written = true
		w.ResponseWriter.WriteHeader(http.StatusOK)
	}

	return w.ResponseWriter.Write(data)
}
