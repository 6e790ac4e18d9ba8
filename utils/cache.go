package utils

import (
	"context"
	"fmt"
	"time"

	"lexmarket/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// AuthCachePrefix prefixes the per-account token hash key.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is how long a cached token hash lives without being used.
const AuthCacheTTL = 10 * time.Minute

// AuthCacheClient is the dedicated client for authorization caching.
var AuthCacheClient *redis.Client

// NewRedisClient returns a client for one logical database of the configured
// server after checking that it answers.
func NewRedisClient(ctx context.Context, cfg *config.Config, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis db %d at %s: %w", db, cfg.RedisAddr, err)
	}
	return client, nil
}

// GetAuthCacheClient returns the auth cache client, connecting on first use.
// The process exits when Redis is unreachable.
func GetAuthCacheClient() *redis.Client {
	if AuthCacheClient == nil {
		client, err := NewRedisClient(context.Background(), &config.AppConfig, config.AppConfig.RedisAuthDB)
		if err != nil {
			GetLogger().Fatal("auth cache: startup failed", zap.Error(err))
		}
		AuthCacheClient = client
	}
	return AuthCacheClient
}
