package myredis

import (
	"fmt"

	"github.com/go-redis/redis/v8"
)

// RedisConfig holds the connection parameters of the shared store.
type RedisConfig struct {
	Addr string // redis URL, e.g. redis://localhost:6379/0
}

// ConfigOption adjusts parsed client options before the client is built.
type ConfigOption func(*redis.Options)

// WithPoolSize overrides the connection pool size.
func WithPoolSize(size int) ConfigOption {
	return func(o *redis.Options) {
		o.PoolSize = size
	}
}

// NewRedisUniversalClient parses redisAddr as a redis URL and creates a universal client.
// One client is shared by the registry, discovery and router of a fabric instance.
func NewRedisUniversalClient(redisAddr string, options ...ConfigOption) (redis.UniversalClient, error) {
	redisOptions, err := redis.ParseURL(redisAddr)
	if err != nil {
		return nil, fmt.Errorf("can't parse redis url: %w", err)
	}
	for _, opt := range options {
		opt(redisOptions)
	}
	return redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:        []string{redisOptions.Addr},
		DB:           redisOptions.DB,
		Username:     redisOptions.Username,
		Password:     redisOptions.Password,
		TLSConfig:    redisOptions.TLSConfig,
		DialTimeout:  redisOptions.DialTimeout,
		ReadTimeout:  redisOptions.ReadTimeout,
		WriteTimeout: redisOptions.WriteTimeout,
		MaxRetries:   redisOptions.MaxRetries,
		PoolSize:     redisOptions.PoolSize,
		PoolTimeout:  redisOptions.PoolTimeout,
		MinIdleConns: redisOptions.MinIdleConns,
		IdleTimeout:  redisOptions.IdleTimeout,
	}), nil
}
