package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/CaseDrop_Go/internal/catalog"
	"github.com/osse101/CaseDrop_Go/internal/config"
	"github.com/osse101/CaseDrop_Go/internal/database"
	"github.com/osse101/CaseDrop_Go/internal/database/memory"
	"github.com/osse101/CaseDrop_Go/internal/database/postgres"
	"github.com/osse101/CaseDrop_Go/internal/repository"
)

// Storage holds the repositories the case engine runs on. Catalog reads go
// through an expirable LRU in front of the backing store.
type Storage struct {
	Cases   repository.Case
	Catalog *catalog.Cached
	Pinger  database.Pool
}

// Close releases the backing store
func (s *Storage) Close() {
	if s.Pinger != nil {
		s.Pinger.Close()
	}
}

// InitializeStorage connects the configured backend. Postgres is migrated to
// the latest schema; memory storage is seeded from cfg.SeedPath.
func InitializeStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	var (
		cases  repository.Case
		source repository.Catalog
		pinger database.Pool
	)

	switch cfg.Storage {
	case config.StoragePostgres:
		pool, err := database.NewPool(ctx, database.PoolConfig{
			ConnString:  cfg.GetDBConnString(),
			MaxConns:    cfg.DBMaxConns,
			MaxConnIdle: cfg.DBMaxConnIdle,
			MaxConnLife: cfg.DBMaxConnLife,
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectDB, err)
		}
		if err := database.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
		}
		cases = postgres.NewCaseRepository(pool)
		source = postgres.NewCatalogRepository(pool)
		pinger = pool

	case config.StorageMemory:
		store := memory.NewStore()
		if err := SeedMemoryStore(cfg.SeedPath, store); err != nil {
			return nil, err
		}
		cases, source, pinger = store, store, store

	default:
		return nil, fmt.Errorf(ErrMsgUnknownStorage, cfg.Storage)
	}

	slog.Info(LogMsgStorageInitialized, "storage", cfg.Storage)

	return &Storage{
		Cases:   cases,
		Catalog: catalog.NewCached(source, cfg.CatalogCacheSize, cfg.CatalogCacheTTL),
		Pinger:  pinger,
	}, nil
}
