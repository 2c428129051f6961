package bootstrap

import (
	"context"
	"log/slog"

	"fractional-market/internal/infra/cache"
	"fractional-market/internal/pkg/config"
	"fractional-market/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var CacheModule = fx.Module("cache",
	fx.Provide(
		NewEventCache,
	),
)

func NewEventCache(lc fx.Lifecycle, cfg config.Config) shared.EventCache {
	if cfg.Redis.Addr == "" {
		slog.Info("redis not configured, payment event replay cache disabled")
		return cache.NoopEventCache{}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// the cache is advisory; a missing redis only costs a database lookup
			if err := rdb.Ping(ctx).Err(); err != nil {
				slog.Warn("redis ping failed", "addr", cfg.Redis.Addr, "error", err.Error())
			}
			return nil
		},
		OnStop: func(_ context.Context) error {
			return rdb.Close()
		},
	})

	return cache.NewRedisEventCache(rdb, cfg.Redis.EventTTL)
}
