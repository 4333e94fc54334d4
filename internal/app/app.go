package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/riskibarqy/sports-intel/internal/config"
	"github.com/riskibarqy/sports-intel/internal/interfaces/httpapi"
	"github.com/riskibarqy/sports-intel/internal/platform/logging"
	"github.com/riskibarqy/sports-intel/internal/scoring"
	"github.com/riskibarqy/sports-intel/internal/usecase"
)

// App owns the HTTP server, the aggregator and the cache backend behind them.
type App struct {
	cfg        config.Config
	logger     *logging.Logger
	server     *http.Server
	aggregator *usecase.Aggregator
	purger     expiredPurger
	closeCache func() error
	now        func() time.Time
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	backend, err := openCacheBackend(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	active, dropped := cfg.ActiveRoutes()
	if cfg.MockMode {
		logger.Info("mock mode enabled, providers are not contacted")
	} else {
		for _, r := range dropped {
			logger.Warn("provider route inactive, provider disabled", "route", r.String())
		}
	}

	live := usecase.NewLiveSource(logger, buildProviders(cfg, logger, time.Now)...)
	aggregator := usecase.NewAggregator(usecase.AggregatorConfig{
		ScheduleTTL:  cfg.CacheScheduleTTL,
		BoxingTTL:    cfg.CacheBoxingTTL,
		MockMode:     cfg.MockMode,
		EnrichEvents: cfg.EnrichEvents,
		SyncWorkers:  cfg.SyncWorkers,
		Routes:       aggregatorRoutes(active),
	}, backend.store, live, scoring.MustNewEngine(), logger)

	handler := httpapi.NewHandler(aggregator, logger)
	router := httpapi.NewRouter(handler, logger, httpapi.RouterConfig{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		InternalJobToken:   cfg.InternalJobToken,
		SwaggerEnabled:     cfg.SwaggerEnabled,
	})

	logger.Info("app configured",
		"cache_backend", cfg.CacheBackend,
		"active_routes", len(active),
		"sync_enabled", cfg.SyncEnabled,
		"swagger_enabled", cfg.SwaggerEnabled,
	)

	return &App{
		cfg:    cfg,
		logger: logger,
		server: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		aggregator: aggregator,
		purger:     backend.purger,
		closeCache: backend.close,
		now:        time.Now,
	}, nil
}

func (a *App) Server() *http.Server {
	return a.server
}

// RunSync refreshes every sport on SYNC_INTERVAL until ctx ends. It returns immediately when
// background sync is disabled.
func (a *App) RunSync(ctx context.Context) {
	if !a.cfg.SyncEnabled {
		return
	}

	ticker := time.NewTicker(a.cfg.SyncInterval)
	defer ticker.Stop()

	a.logger.Info("background sync started", "interval", a.cfg.SyncInterval.String())
	for {
		select {
		case <-ctx.Done():
			a.logger.Info("background sync stopped")
			return
		case <-ticker.C:
			a.syncOnce(ctx)
		}
	}
}

func (a *App) syncOnce(ctx context.Context) {
	report, err := a.aggregator.SyncAll(ctx)
	if err != nil {
		a.logger.ErrorContext(ctx, "background sync failed", "error", err)
		return
	}
	a.logger.InfoContext(ctx, "background sync finished",
		"success", report.SuccessCount,
		"failed", report.FailedCount,
		"workers", report.WorkerCount,
	)

	if a.purger == nil {
		return
	}
	cutoff := a.now().Add(-a.cfg.CacheRetention)
	purged, err := a.purger.PurgeExpired(ctx, cutoff)
	if err != nil {
		a.logger.WarnContext(ctx, "purge expired cache rows failed", "error", err)
		return
	}
	if purged > 0 {
		a.logger.InfoContext(ctx, "purged expired cache rows", "rows", purged, "cutoff", cutoff)
	}
}

// Shutdown stops the HTTP server and releases the cache backend.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if err := a.server.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown http server: %w", err))
	}
	if a.closeCache != nil {
		if err := a.closeCache(); err != nil {
			errs = append(errs, fmt.Errorf("close cache backend: %w", err))
		}
	}
	return errors.Join(errs...)
}
