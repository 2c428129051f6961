package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fractional-market/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect opens a pgx pool and pings it, retrying while the database comes up.
func Connect(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, func(), error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.BuildDSN())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	poolCfg.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	attempts := max(cfg.ConnectRetries, 1)
	for attempt := 1; ; attempt++ {
		err = pool.Ping(ctx)
		if err == nil {
			break
		}
		if attempt >= attempts {
			pool.Close()
			return nil, nil, fmt.Errorf("failed to ping database after %d attempts: %w", attempt, err)
		}
		slog.Warn("database not ready, retrying",
			"attempt", attempt,
			"delay", cfg.ConnectRetryDelay.String(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			pool.Close()
			return nil, nil, ctx.Err()
		case <-time.After(cfg.ConnectRetryDelay):
		}
	}

	cleanup := func() {
		pool.Close()
	}

	return pool, cleanup, nil
}
