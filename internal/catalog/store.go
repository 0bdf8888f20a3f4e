package catalog

import (
	"context"
	"fmt"
	"strconv"

	"github.com/tair/plant-catalog/internal/catalog/domain"
	"github.com/tair/plant-catalog/internal/catalog/repository"
	"github.com/tair/plant-catalog/internal/config"
	"github.com/tair/plant-catalog/pkg/database"
	"github.com/tair/plant-catalog/pkg/logger"
)

// OpenStore connects the configured backend and wraps it with tracing and,
// when enabled, the circuit breaker. The breaker sits outside tracing so
// calls it rejects produce no store spans.
func OpenStore(ctx context.Context, cfg *config.Config) (domain.Store, error) {
	var store domain.Store

	switch cfg.Store.Driver {
	case config.DriverMemory:
		store = repository.NewMemoryCatalogRepository()

	case config.DriverSQLite:
		sqlite, err := repository.NewSQLiteCatalogRepository(ctx, cfg.Store.SQLitePath)
		if err != nil {
			return nil, err
		}
		store = sqlite

	case config.DriverPostgres:
		db, err := database.NewGormConnection(database.Config{
			Host:     cfg.Database.Host,
			Port:     strconv.Itoa(cfg.Database.Port),
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			DBName:   cfg.Database.Name,
			SSLMode:  cfg.Database.SSLMode,
		})
		if err != nil {
			return nil, err
		}
		gormRepo := repository.NewGormCatalogRepository(db)
		if err := gormRepo.AutoMigrate(ctx); err != nil {
			gormRepo.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		store = gormRepo

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	store = repository.NewStoreWithTracing(store, cfg.Store.Driver)

	if cfg.Breaker.Enabled {
		breakerCfg := repository.DefaultBreakerConfig()
		if cfg.Breaker.FailureThreshold > 0 {
			breakerCfg.FailureThreshold = cfg.Breaker.FailureThreshold
		}
		if cfg.Breaker.Timeout > 0 {
			breakerCfg.Timeout = cfg.Breaker.Timeout
		}
		store = repository.NewStoreWithBreaker(store, breakerCfg)
	}

	logger.Logger.Info().
		Str("driver", cfg.Store.Driver).
		Bool("breaker", cfg.Breaker.Enabled).
		Msg("Catalog store initialized")

	return store, nil
}
