// Package cache is a thin JSON read-through layer over Redis used by the
// quick-pick (/select) endpoints. Every method is nil-receiver safe so unit
// tests and degraded deployments can run without a Redis instance.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(rdb *redis.Client, ttl time.Duration) *Cache {
	if rdb == nil {
		return nil
	}
	return &Cache{rdb: rdb, ttl: ttl}
}

// GetJSON loads key into dest, reporting whether a valid entry was found.
func (c *Cache) GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if c == nil {
		return false
	}
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(b, dest); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache: entrada corrupta, se descarta")
		return false
	}
	return true
}

// SetJSON stores v under key, best effort.
func (c *Cache) SetJSON(ctx context.Context, key string, v interface{}) {
	if c == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache: set falló")
	}
}

// Invalidate removes keys matching the given exact keys, best effort. Called
// after writes that would make a cached quick-pick stale.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Warn().Err(err).Msg("cache: invalidación falló")
	}
}
