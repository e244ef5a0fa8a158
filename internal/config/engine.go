// Package config loads the engine and source-catalog configuration.
package config

import (
	"time"

	pkgconfig "newspulse/internal/pkg/config"
)

// EngineConfig holds the tunables of the aggregation engine. Every field is
// loaded from an environment variable with a validated default, so a broken
// deployment setting degrades to the default instead of stopping the engine.
type EngineConfig struct {
	// RateInterval is the minimum spacing between outbound requests across
	// all sources. Default: 2s.
	RateInterval time.Duration

	// FetchTimeout bounds a single fetch of one source. Default: 10s.
	FetchTimeout time.Duration

	// Lookback discards articles published before now-Lookback. Default: 12h.
	Lookback time.Duration

	// ArticleTTL is the article snapshot freshness window. Default: 5m.
	ArticleTTL time.Duration

	// TrendingTTL is the trending snapshot freshness window. Default: 15m.
	TrendingTTL time.Duration

	// CategoryLimit caps articles returned per category. Default: 20.
	CategoryLimit int

	// TrendingLimit caps trending topics returned. Default: 10.
	TrendingLimit int

	// Warnings collects fallback messages from loading, for the caller to log.
	Warnings []string
}

// Defaults for the engine tunables.
const (
	DefaultRateInterval  = 2 * time.Second
	DefaultFetchTimeout  = 10 * time.Second
	DefaultLookback      = 12 * time.Hour
	DefaultArticleTTL    = 5 * time.Minute
	DefaultTrendingTTL   = 15 * time.Minute
	DefaultCategoryLimit = 20
	DefaultTrendingLimit = 10
)

// LoadEngineConfig loads the engine configuration from environment variables.
// It never fails: invalid values fall back to defaults and are reported in
// Warnings and on the config metrics when provided.
func LoadEngineConfig(metrics *pkgconfig.ConfigMetrics) *EngineConfig {
	cfg := &EngineConfig{}

	positive := pkgconfig.ValidatePositiveDuration

	cfg.RateInterval = loadDuration("ENGINE_RATE_INTERVAL", DefaultRateInterval, positive, cfg, metrics, "rate_interval")
	cfg.FetchTimeout = loadDuration("ENGINE_FETCH_TIMEOUT", DefaultFetchTimeout, positive, cfg, metrics, "fetch_timeout")
	cfg.Lookback = loadDuration("ENGINE_LOOKBACK", DefaultLookback, positive, cfg, metrics, "lookback")
	cfg.ArticleTTL = loadDuration("ENGINE_ARTICLE_TTL", DefaultArticleTTL, positive, cfg, metrics, "article_ttl")
	cfg.TrendingTTL = loadDuration("ENGINE_TRENDING_TTL", DefaultTrendingTTL, positive, cfg, metrics, "trending_ttl")

	cfg.CategoryLimit = loadInt("ENGINE_CATEGORY_LIMIT", DefaultCategoryLimit, cfg, metrics, "category_limit")
	cfg.TrendingLimit = loadInt("ENGINE_TRENDING_LIMIT", DefaultTrendingLimit, cfg, metrics, "trending_limit")

	if metrics != nil {
		metrics.RecordLoadTimestamp()
		metrics.SetFallbackActive("engine", len(cfg.Warnings) > 0)
	}

	return cfg
}

func loadDuration(envKey string, def time.Duration, validator func(time.Duration) error, cfg *EngineConfig, metrics *pkgconfig.ConfigMetrics, field string) time.Duration {
	result := pkgconfig.LoadEnvDuration(envKey, def, validator)
	recordResult(result, cfg, metrics, field)
	return result.Value.(time.Duration)
}

func loadInt(envKey string, def int, cfg *EngineConfig, metrics *pkgconfig.ConfigMetrics, field string) int {
	result := pkgconfig.LoadEnvInt(envKey, def, func(v int) error {
		return pkgconfig.ValidateIntRange(v, 1, 1000)
	})
	recordResult(result, cfg, metrics, field)
	return result.Value.(int)
}

func recordResult(result pkgconfig.ConfigLoadResult, cfg *EngineConfig, metrics *pkgconfig.ConfigMetrics, field string) {
	cfg.Warnings = append(cfg.Warnings, result.Warnings...)
	if result.FallbackApplied && metrics != nil {
		metrics.RecordValidationError(field)
		metrics.RecordFallback(field, "default")
	}
}
