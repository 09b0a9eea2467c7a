package infra

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// NewRedis builds the client backing the select-endpoint cache. The
// connection is verified before the server starts taking requests; a
// misconfigured REDIS_URL fails the boot instead of every cache read.
func NewRedis(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return rdb, nil
}
