package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter is a fixed window request counter kept in redis.
type Limiter struct {
	client *redis.Client
	prefix string
	limit  int
	window time.Duration
}

func (c *RedisCache) Limiter(prefix string, limit int, window time.Duration) *Limiter {
	return &Limiter{client: c.client, prefix: prefix, limit: limit, window: window}
}

// Allow counts one request for key and reports whether it fits the window,
// together with the requests left in it.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, int, error) {
	k := windowKey(l.prefix, key, time.Now(), l.window)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.ExpireNX(ctx, k, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return true, l.limit, err
	}

	n := int(incr.Val())
	remaining := l.limit - n
	if remaining < 0 {
		remaining = 0
	}
	return n <= l.limit, remaining, nil
}

func (l *Limiter) Limit() int {
	return l.limit
}

func windowKey(prefix, key string, now time.Time, window time.Duration) string {
	slot := now.Truncate(window).Unix()
	return prefix + ":" + key + ":" + strconv.FormatInt(slot, 10)
}
