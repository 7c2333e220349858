package config

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisClient is a global Redis client instance
var RedisClient *redis.Client

// InitRedis creates the client when REDIS_ADDR is configured. Leaves the
// client nil otherwise; callers treat nil as caching disabled.
func InitRedis(cfg *Config) {
	if cfg.RedisAddr == "" {
		RedisClient = nil
		return
	}
	RedisClient = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       0,
	})
}

func RedisCtx() context.Context {
	return context.Background()
}
