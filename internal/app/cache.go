package app

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/sports-intel/internal/config"
	"github.com/riskibarqy/sports-intel/internal/infrastructure/cache/pgstore"
	"github.com/riskibarqy/sports-intel/internal/infrastructure/cache/redisstore"
	"github.com/riskibarqy/sports-intel/internal/platform/cache"
	"github.com/riskibarqy/sports-intel/internal/platform/logging"
)

// expiredPurger is implemented by backends that keep rows until an explicit sweep.
type expiredPurger interface {
	PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error)
}

type cacheBackend struct {
	store  cache.Store
	purger expiredPurger
	close  func() error
}

func openCacheBackend(ctx context.Context, cfg config.Config, logger *logging.Logger) (cacheBackend, error) {
	switch cfg.CacheBackend {
	case config.CacheBackendRedis:
		store, err := redisstore.Open(ctx, cfg.RedisURL, redisstore.WithRetention(cfg.CacheRetention))
		if err != nil {
			return cacheBackend{}, fmt.Errorf("open redis cache: %w", err)
		}
		logger.Info("cache backend ready", "backend", cfg.CacheBackend)
		return cacheBackend{store: store, close: store.Close}, nil

	case config.CacheBackendPostgres:
		db, err := openPostgres(ctx, cfg)
		if err != nil {
			return cacheBackend{}, err
		}
		store := pgstore.New(db)
		logger.Info("cache backend ready", "backend", cfg.CacheBackend, "db_name", postgresDBName(cfg.DBURL))
		return cacheBackend{store: store, purger: store, close: db.Close}, nil

	case config.CacheBackendMemory, "":
		logger.Info("cache backend ready", "backend", config.CacheBackendMemory)
		return cacheBackend{store: cache.NewMemoryStore(), close: func() error { return nil }}, nil

	default:
		return cacheBackend{}, fmt.Errorf("unsupported cache backend %q", cfg.CacheBackend)
	}
}
