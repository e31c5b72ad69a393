package database

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool is the part of a connection pool the readiness probe and shutdown need
type Pool interface {
	Ping(ctx context.Context) error
	Close()
}

// PoolConfig sizes and labels the case store's connection pool
type PoolConfig struct {
	ConnString      string
	MaxConns        int
	MaxConnIdle     time.Duration
	MaxConnLife     time.Duration
	ApplicationName string
}

// NewPool opens a pgx pool and verifies it with a ping
func NewPool(ctx context.Context, cfg PoolConfig) (*pgxpool.Pool, error) {
	pgCfg, err := pgxpool.ParseConfig(cfg.ConnString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToParseConnString, err)
	}

	if cfg.MaxConns > 0 {
		pgCfg.MaxConns = int32(min(cfg.MaxConns, math.MaxInt32))
	}
	pgCfg.MinConns = min(DefaultMinConnections, pgCfg.MaxConns)
	if cfg.MaxConnLife > 0 {
		pgCfg.MaxConnLifetime = cfg.MaxConnLife
	}
	if cfg.MaxConnIdle > 0 {
		pgCfg.MaxConnIdleTime = cfg.MaxConnIdle
	}

	appName := cfg.ApplicationName
	if appName == "" {
		appName = DefaultApplicationName
	}
	pgCfg.ConnConfig.RuntimeParams["application_name"] = appName

	pool, err := pgxpool.NewWithConfig(ctx, pgCfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCreatePool, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToPingDatabase, err)
	}

	slog.Default().Info(LogMsgSuccessfullyConnectedToDatabase,
		"max_conns", pgCfg.MaxConns,
		"application_name", appName)
	return pool, nil
}

// ConnString builds a postgres URL from its parts.
func ConnString(user, password, host, port, name, sslMode string) string {
	if sslMode == "" {
		sslMode = DefaultSSLMode
	}
	return fmt.Sprintf(ConnStringFormat, user, password, host, port, name, sslMode)
}
