package store

import (
	"context"

	"FirebiAPI/internal/logger"

	"github.com/redis/go-redis/v9"
)

// InitRedis takes the address explicitly instead of reading the env itself.
func InitRedis(addr string) *redis.Client {
	if addr == "" {
		addr = "localhost:6379"
		logger.Warn("redis_default_addr", nil)
	}

	return redis.NewClient(&redis.Options{
		Addr: addr,
	})
}

func PingRedis(ctx context.Context, rdb *redis.Client) error {
	return rdb.Ping(ctx).Err()
}
