// Package ratelimit provides the shared outbound request gate.
// All source adapters acquire a turn from one Gate before issuing a
// request, bounding the aggregate outbound rate regardless of how many
// sources fetch concurrently.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultInterval is the minimum spacing between outbound requests.
const DefaultInterval = 2 * time.Second

// Gate enforces a minimum interval between outbound requests across all
// callers. It only delays; it never fails except on context cancellation.
type Gate struct {
	limiter *rate.Limiter

	mu          sync.Mutex
	lastRequest time.Time
}

// NewGate creates a Gate that allows one request per interval, with a
// burst of one so the first caller proceeds immediately.
func NewGate(interval time.Duration) *Gate {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Gate{
		limiter: rate.NewLimiter(rate.Every(interval), 1),
	}
}

// Wait blocks until the caller may issue the next outbound request, or
// until the context is cancelled. On success it records the request time.
func (g *Gate) Wait(ctx context.Context) error {
	if err := g.limiter.Wait(ctx); err != nil {
		return err
	}

	g.mu.Lock()
	g.lastRequest = time.Now()
	g.mu.Unlock()
	return nil
}

// LastRequest returns the time the most recent turn was granted, zero if
// no request has been made yet.
func (g *Gate) LastRequest() time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastRequest
}
