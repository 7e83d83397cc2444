package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/airport/config"
	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/query"
	"github.com/redis/go-redis/v9"
)

const flightsVersionKey = "cache:flights:version"

type RedisCache struct {
	client     *redis.Client
	flightsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, flightsTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:     redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		flightsTTL: flightsTTL,
	}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// GetFlights returns a cached flight page for the given listing key, or nil
// on a miss, together with the listing version it looked under. The version
// must be handed back to SetFlights so a page computed before an
// invalidation is stored where no reader will look.
func (c *RedisCache) GetFlights(ctx context.Context, listing string) (*query.Result[domain.FlightSummary], int64, error) {
	version, err := c.flightsVersion(ctx)
	if err != nil {
		return nil, 0, err
	}
	data, err := c.client.Get(ctx, flightsKey(version, listing)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, version, nil
		}
		return nil, version, err
	}

	var page query.Result[domain.FlightSummary]
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, version, err
	}
	return &page, version, nil
}

func (c *RedisCache) SetFlights(ctx context.Context, version int64, listing string, page *query.Result[domain.FlightSummary]) error {
	if c.flightsTTL <= 0 {
		return nil
	}
	payload, err := json.Marshal(page)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, flightsKey(version, listing), payload, c.flightsTTL).Err()
}

// InvalidateFlights bumps the listing version; entries cached under older
// versions are never read again and expire on their own.
func (c *RedisCache) InvalidateFlights(ctx context.Context) error {
	return c.client.Incr(ctx, flightsVersionKey).Err()
}

func (c *RedisCache) flightsVersion(ctx context.Context) (int64, error) {
	version, err := c.client.Get(ctx, flightsVersionKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return 0, err
	}
	return version, nil
}

func (c *RedisCache) AcquireSeatLock(ctx context.Context, flightID int64, row, seat int, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, seatLockKey(flightID, row, seat), "locked", ttl).Result()
}

func (c *RedisCache) ReleaseSeatLock(ctx context.Context, flightID int64, row, seat int) error {
	return c.client.Del(ctx, seatLockKey(flightID, row, seat)).Err()
}

func flightsKey(version int64, listing string) string {
	return fmt.Sprintf("cache:flights:v%d:%s", version, listing)
}

func seatLockKey(flightID int64, row, seat int) string {
	return fmt.Sprintf("lock:flight:%d:row:%d:seat:%d", flightID, row, seat)
}
