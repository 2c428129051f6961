package cache

import (
	"context"
	"time"

	"fractional-market/internal/domain/payment"
	"fractional-market/internal/pkg/errs"
	"fractional-market/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
)

// RedisEventCache remembers processed provider events so replays skip the database.
// payment_events stays the source of truth; a miss here only costs a query.
type RedisEventCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisEventCache(rdb *redis.Client, ttl time.Duration) *RedisEventCache {
	return &RedisEventCache{rdb: rdb, ttl: ttl}
}

func eventKey(provider payment.Provider, eventID string) string {
	return "payment_event:" + provider.String() + ":" + eventID
}

func (c *RedisEventCache) Seen(ctx context.Context, provider payment.Provider, eventID string) (bool, error) {
	n, err := c.rdb.Exists(ctx, eventKey(provider, eventID)).Result()
	if err != nil {
		return false, errs.Wrap(err, "redis exists")
	}
	return n > 0, nil
}

func (c *RedisEventCache) Remember(ctx context.Context, provider payment.Provider, eventID string) error {
	if err := c.rdb.Set(ctx, eventKey(provider, eventID), "1", c.ttl).Err(); err != nil {
		return errs.Wrap(err, "redis set")
	}
	return nil
}

// NoopEventCache is used when no Redis address is configured.
type NoopEventCache struct{}

func (NoopEventCache) Seen(context.Context, payment.Provider, string) (bool, error) { return false, nil }
func (NoopEventCache) Remember(context.Context, payment.Provider, string) error     { return nil }

var (
	_ shared.EventCache = (*RedisEventCache)(nil)
	_ shared.EventCache = NoopEventCache{}
)
