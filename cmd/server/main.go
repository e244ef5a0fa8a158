// Command server runs the news aggregation engine: the cron-driven scrape
// scheduler, the in-memory article cache, and the HTTP read API share one
// process because the cache is process-local.
package main

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"newspulse/internal/cache"
	"newspulse/internal/config"
	"newspulse/internal/domain/entity"
	hhttp "newspulse/internal/handler/http"
	hnews "newspulse/internal/handler/http/news"
	"newspulse/internal/handler/http/requestid"
	"newspulse/internal/infra/scraper"
	workerPkg "newspulse/internal/infra/worker"
	"newspulse/internal/observability/logging"
	"newspulse/internal/observability/slo"
	pkgconfig "newspulse/internal/pkg/config"
	"newspulse/internal/ratelimit"
	newsUC "newspulse/internal/usecase/news"
	scrapeUC "newspulse/internal/usecase/scrape"
	trendingUC "newspulse/internal/usecase/trending"
)

func main() {
	logger := initLogger()
	version := getVersion()

	engineCfg := loadEngineConfig(logger)
	sources := loadSources(logger)

	engine := setupEngine(logger, engineCfg, sources)

	workerMetrics := workerPkg.NewWorkerMetrics()
	workerMetrics.MustRegister()

	workerCfg, err := workerPkg.LoadConfigFromEnv(logger, workerMetrics)
	if err != nil {
		logger.Error("failed to load scheduler configuration", slog.Any("error", err))
		os.Exit(1)
	}

	healthServer := startHealthServer(logger, workerCfg)
	scheduler := startScheduler(logger, engine.Scrape, workerCfg, workerMetrics, healthServer)

	handler := setupHandler(logger, engine, version)
	runServer(logger, handler, version)

	stopCtx := scheduler.Stop()
	<-stopCtx.Done()
}

// initLogger initializes and returns a structured logger based on environment configuration.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// loadEngineConfig loads the engine tunables. Loading is fail-open, so
// only warnings are surfaced here.
func loadEngineConfig(logger *slog.Logger) *config.EngineConfig {
	cfg := config.LoadEngineConfig(pkgconfig.NewConfigMetrics("engine"))
	for _, warning := range cfg.Warnings {
		logger.Warn("engine configuration fallback applied", slog.String("warning", warning))
	}
	return cfg
}

// loadSources loads the source catalog. A broken catalog file is fatal:
// silently scraping the wrong set of sources is worse than not starting.
func loadSources(logger *slog.Logger) []entity.Source {
	sources, err := config.LoadSources()
	if err != nil {
		logger.Error("failed to load source catalog", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("source catalog loaded", slog.Int("sources", len(sources)))
	return sources
}

// engineComponents holds the wired engine: the scrape pipeline that fills
// the cache and the query facade that reads from it.
type engineComponents struct {
	Cache  *cache.ArticleCache
	Scrape *scrapeUC.Service
	News   *newsUC.Service
}

// setupEngine wires the scrape pipeline and the query facade around one
// shared article cache.
func setupEngine(logger *slog.Logger, cfg *config.EngineConfig, sources []entity.Source) *engineComponents {
	gate := ratelimit.NewGate(cfg.RateInterval)
	client := createHTTPClient(cfg.FetchTimeout)
	fetchers := scraper.NewFetchers(client, gate)

	articleCache := cache.New(
		cache.WithTTL(cfg.ArticleTTL),
		cache.WithCategoryLimit(cfg.CategoryLimit),
	)

	scrapeSvc := scrapeUC.NewService(sources, fetchers, articleCache, cfg.Lookback, cfg.FetchTimeout)

	aggregator := trendingUC.NewAggregator(articleCache)
	aggregator.Limit = cfg.TrendingLimit
	aggregator.TTL = cfg.TrendingTTL

	newsSvc := newsUC.NewService(articleCache, aggregator, scrapeSvc)

	logger.Info("engine wired",
		slog.Duration("article_ttl", cfg.ArticleTTL),
		slog.Duration("lookback", cfg.Lookback),
		slog.Duration("rate_interval", cfg.RateInterval))

	return &engineComponents{
		Cache:  articleCache,
		Scrape: scrapeSvc,
		News:   newsSvc,
	}
}

// createHTTPClient creates the shared outbound HTTP client used by every
// network adapter.
func createHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
	}
}

// startHealthServer starts the scheduler's liveness/readiness endpoints on
// their own port so orchestrator probes stay isolated from API traffic.
func startHealthServer(logger *slog.Logger, cfg *workerPkg.WorkerConfig) *workerPkg.HealthServer {
	addr := fmt.Sprintf(":%d", cfg.HealthPort)
	healthServer := workerPkg.NewHealthServer(addr, logger)

	go func() {
		if err := healthServer.Start(context.Background()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("scheduler health server failed", slog.Any("error", err))
		}
	}()

	return healthServer
}

// startScheduler starts the cron scheduler driving periodic scrape ticks.
// A startup tick runs immediately so the cache is warm before the first
// scheduled run, which can be up to an hour away.
func startScheduler(
	logger *slog.Logger,
	svc *scrapeUC.Service,
	cfg *workerPkg.WorkerConfig,
	metrics *workerPkg.WorkerMetrics,
	healthServer *workerPkg.HealthServer,
) *cron.Cron {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC", slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}
	c := cron.New(cron.WithLocation(loc))

	_, err = c.AddFunc(cfg.CronSchedule, func() {
		runScrapeTick(logger, svc, cfg, metrics)
	})
	if err != nil {
		logger.Error("failed to schedule scrape job", slog.Any("error", err))
		os.Exit(1)
	}

	go runScrapeTick(logger, svc, cfg, metrics)

	c.Start()
	healthServer.SetReady(true)

	logger.Info("scrape scheduler started",
		slog.String("schedule", cfg.CronSchedule),
		slog.String("timezone", loc.String()))

	return c
}

// sloTracker accumulates tick outcomes across the process lifetime.
var sloTracker = &slo.Tracker{}

// runScrapeTick runs one scrape tick under the configured timeout and
// records the scheduler metrics for it.
func runScrapeTick(logger *slog.Logger, svc *scrapeUC.Service, cfg *workerPkg.WorkerConfig, metrics *workerPkg.WorkerMetrics) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ScrapeTimeout)
	defer cancel()

	start := time.Now()
	stats, err := svc.RunTick(ctx)
	duration := time.Since(start)

	switch {
	case errors.Is(err, scrapeUC.ErrTickInProgress):
		metrics.RecordJobRun("skipped")
		logger.Warn("scrape tick skipped, previous tick still running")
		return
	case err != nil:
		metrics.RecordJobRun("failure")
		metrics.RecordJobDuration(duration.Seconds())
		sloTracker.RecordTick(false)
		logger.Error("scrape tick failed",
			slog.Any("error", err),
			slog.Duration("duration", duration))
		return
	}

	metrics.RecordJobRun("success")
	metrics.RecordJobDuration(duration.Seconds())
	metrics.RecordArticlesCached(stats.Kept)
	metrics.RecordLastSuccess()
	sloTracker.RecordTick(true)

	logger.Info("scrape tick completed",
		slog.Int("articles_cached", stats.Kept),
		slog.Duration("duration", duration))
}

// Inbound API protection defaults. The API is unauthenticated and
// read-only, so a per-IP budget and a request deadline are the only
// controls it needs.
const (
	defaultRateLimit  = 100
	defaultRateWindow = time.Minute
	defaultReqTimeout = 30 * time.Second
)

// setupHandler builds the API routes and wraps them in the middleware
// chain. Request IDs are assigned outermost so every log line below
// carries one.
func setupHandler(logger *slog.Logger, engine *engineComponents, version string) http.Handler {
	mux := http.NewServeMux()
	hnews.Register(mux, engine.News, logger)
	mux.Handle("GET /health", &hhttp.HealthHandler{Cache: engine.Cache, Version: version})
	mux.Handle("GET /ready", &hhttp.ReadyHandler{Cache: engine.Cache})
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())

	limitResult := pkgconfig.LoadEnvInt("API_RATE_LIMIT", defaultRateLimit, func(v int) error {
		return pkgconfig.ValidateIntRange(v, 1, 100000)
	})
	for _, warning := range limitResult.Warnings {
		logger.Warn("api configuration fallback applied", slog.String("warning", warning))
	}
	limiter := hhttp.NewRateLimiter(limitResult.Value.(int), defaultRateWindow)

	var handler http.Handler = mux
	handler = hhttp.Timeout(defaultReqTimeout)(handler)
	handler = hhttp.MetricsMiddleware(handler)
	handler = limiter.Limit(handler)
	handler = hhttp.Recover(logger)(handler)
	handler = hhttp.Logging(logger)(handler)
	handler = requestid.Middleware(handler)
	return handler
}

// runServer runs the API server until SIGINT or SIGTERM, then shuts it
// down gracefully.
func runServer(logger *slog.Logger, handler http.Handler, version string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addr := ":" + pkgconfig.LoadEnvString("API_PORT", "8080")
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", slog.Any("error", err))
	}

	logger.Info("server exited")
}
