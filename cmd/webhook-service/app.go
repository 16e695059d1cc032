package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sony/gobreaker"
	"golang.org/x/sync/errgroup"

	"leadrelay/internal/config"
	"leadrelay/internal/constants"
	"leadrelay/internal/logger"
	"leadrelay/internal/llm"
	"leadrelay/internal/sheets"
	"leadrelay/internal/webhook"
	"leadrelay/pkg/circuitbreaker"
	"leadrelay/pkg/health"
	"leadrelay/pkg/metrics"
	"leadrelay/pkg/middleware"
	"leadrelay/pkg/ratelimit"
	"leadrelay/pkg/worker"
)

type App struct {
	config    *config.Config
	logger    logger.Logger
	sink      *sheets.Client
	extractor llm.Extractor
	pool      *worker.Pool
	router    *gin.Engine
	server    *http.Server
}

func NewApp(cfg *config.Config, log logger.Logger) *App {
	if sugaredLogger, ok := log.(*logger.SugaredLogger); ok {
		sugaredLogger.SetServiceName("webhook-service")
	}
	return &App{
		config: cfg,
		logger: log,
	}
}

func (a *App) Initialize(ctx context.Context) error {
	a.initMetrics()

	if err := a.initClients(ctx); err != nil {
		return fmt.Errorf("failed to initialize clients: %w", err)
	}

	if err := a.initRouter(); err != nil {
		return fmt.Errorf("failed to initialize router: %w", err)
	}

	if err := a.initServer(); err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	return nil
}

func (a *App) initMetrics() {
	metrics.RegisterWebhookMetrics()
	metrics.RegisterWorkerMetrics()
	if a.config.RateLimit.Enabled {
		metrics.RegisterRateLimitMetrics()
	}
	if a.config.CircuitBreaker.Enabled {
		metrics.RegisterCircuitBreakerMetrics()
	}
}

func (a *App) initClients(ctx context.Context) error {
	a.sink = sheets.NewClient(a.config.Sheety, a.logger)
	if a.sink.Enabled() {
		a.logger.InfowCtx(ctx, "Sheety client initialized", "resource", a.config.Sheety.Resource, "keys", len(a.sink.Keys()))
	} else {
		a.logger.WarnwCtx(ctx, "Sheety URL not configured, delivery disabled")
	}

	var extractor llm.Extractor = llm.NewOpenAIClient(a.config.OpenAI)
	if a.config.OpenAI.APIKey == "" {
		a.logger.WarnwCtx(ctx, "OpenAI API key not configured, extraction will fail per webhook")
	}

	if a.config.CircuitBreaker.Enabled {
		extractor = llm.NewBreakerExtractor(extractor, "openai", a.breakerConfig("openai"))
		a.logger.InfowCtx(ctx, "Circuit breaker enabled for extraction")
	}
	a.extractor = extractor

	a.pool = worker.NewPool(a.config.Webhook.Workers, a.config.Webhook.QueueSize, a.logger)

	return nil
}

// breakerConfig starts from the library defaults and overrides only
// the fields the operator actually set, so a partial circuit_breaker
// block keeps sane trip behavior.
func (a *App) breakerConfig(name string) circuitbreaker.Config {
	cbCfg := a.config.CircuitBreaker
	cfg := circuitbreaker.DefaultConfig(name)

	if cbCfg.MaxRequests > 0 {
		cfg.MaxRequests = cbCfg.MaxRequests
	}
	if cbCfg.Interval > 0 {
		cfg.Interval = cbCfg.Interval
	}
	if cbCfg.Timeout > 0 {
		cfg.Timeout = cbCfg.Timeout
	}
	if cbCfg.MinRequests > 0 && cbCfg.FailureRatio > 0 {
		cfg.ReadyToTrip = func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= cbCfg.MinRequests && failureRatio >= cbCfg.FailureRatio
		}
	}

	return cfg
}

func (a *App) initRouter() error {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(middleware.RecoveryMiddleware(a.logger))
	router.Use(middleware.LoggerMiddleware(a.logger))
	router.Use(middleware.RequestIDMiddleware())

	if a.config.RateLimit.Enabled {
		rateLimitConfig := ratelimit.DefaultConfig()
		rateLimitConfig.RPS = a.config.RateLimit.RPS
		rateLimitConfig.Burst = a.config.RateLimit.Burst
		if a.config.RateLimit.CleanupInterval > 0 {
			rateLimitConfig.CleanupInterval = time.Duration(a.config.RateLimit.CleanupInterval) * time.Second
		}
		if a.config.RateLimit.MaxAge > 0 {
			rateLimitConfig.MaxAge = time.Duration(a.config.RateLimit.MaxAge) * time.Second
		}
		router.Use(ratelimit.Middleware(rateLimitConfig))
		a.logger.Infow("Rate limiting enabled", "rps", rateLimitConfig.RPS, "burst", rateLimitConfig.Burst)
	}

	healthRegistry := health.NewCheckerRegistry()
	healthRegistry.Register(health.NewConfigChecker("openai", func() bool {
		return a.config.OpenAI.APIKey != ""
	}))
	healthRegistry.Register(health.NewConfigChecker("sheety", a.sink.Enabled))
	healthRegistry.Register(health.NewConfigChecker("sheety_url", func() bool {
		return a.config.Sheety.URL != ""
	}))

	service := webhook.NewService(a.extractor, a.sink, a.logger)
	handler := webhook.NewHandler(service, a.pool, healthRegistry, a.logger)
	handler.RegisterRoutes(router)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	a.router = router
	return nil
}

func (a *App) initServer() error {
	a.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port),
		Handler:      a.router,
		ReadTimeout:  time.Duration(a.config.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(a.config.Server.WriteTimeoutSeconds) * time.Second,
	}
	return nil
}

func (a *App) Run(ctx context.Context) error {
	g, gCtx := errgroup.WithContext(ctx)

	a.pool.Start(gCtx)

	g.Go(func() error {
		a.logger.InfowCtx(ctx, "HTTP server starting", "addr", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		return a.Shutdown(context.Background())
	})

	return g.Wait()
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Shutting down webhook service")

	shutdownCtx, cancel := context.WithTimeout(ctx, constants.ShutdownTimeout)
	defer cancel()

	var errs []error

	if a.server != nil {
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("HTTP server shutdown error: %w", err))
		}
	}

	if a.pool != nil {
		if err := a.pool.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("worker pool shutdown error: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("shutdown errors: %v", errs)
	}

	a.logger.Info("Application exited successfully")
	return nil
}
