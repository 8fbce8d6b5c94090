package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/carhive/carhive-backend/config"
	"github.com/carhive/carhive-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// Init initializes Redis connection
func Init(cfg *config.RedisConfig) error {
	logger.Info("Initializing Redis connection", map[string]interface{}{
		"host": cfg.Host,
		"port": cfg.Port,
		"db":   cfg.DB,
	})

	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", err, map[string]interface{}{
			"host": cfg.Host,
			"port": cfg.Port,
		})
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection established successfully", nil)
	return nil
}

// GetClient returns the Redis client instance
func GetClient() *redis.Client {
	return client
}

// Close closes the Redis connection
func Close() error {
	if client != nil {
		logger.Info("Closing Redis connection", nil)
		return client.Close()
	}
	return nil
}

// BlacklistToken adds a token to the blacklist until it would have expired
func BlacklistToken(ctx context.Context, token string, expiry time.Duration) error {
	if client == nil {
		return fmt.Errorf("redis is not initialized")
	}
	key := fmt.Sprintf("blacklist:%s", token)
	if err := client.Set(ctx, key, "revoked", expiry).Err(); err != nil {
		logger.Error("Failed to blacklist token", err, nil)
		return err
	}
	return nil
}

// IsTokenBlacklisted checks if a token is in the blacklist. Without Redis
// every token reads as live; revocation degrades rather than locking out.
func IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	if client == nil {
		return false, nil
	}
	key := fmt.Sprintf("blacklist:%s", token)
	val, err := client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		logger.Error("Failed to check token blacklist", err, nil)
		return false, err
	}
	return val == "revoked", nil
}

// Catalog listing cache. Public car browsing is read-heavy; listings are
// cached as serialized JSON and invalidated whenever a company mutates
// its inventory.

const catalogKeyPrefix = "catalog:cars:"

// GetCachedListing returns the cached JSON payload for a listing key
func GetCachedListing(ctx context.Context, key string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	val, err := client.Get(ctx, catalogKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		logger.Error("Failed to read catalog cache", err, map[string]interface{}{
			"key": key,
		})
		return nil, false
	}
	return val, true
}

// SetCachedListing stores a serialized listing payload with a TTL
func SetCachedListing(ctx context.Context, key string, payload []byte, ttl time.Duration) {
	if client == nil {
		return
	}
	if err := client.Set(ctx, catalogKeyPrefix+key, payload, ttl).Err(); err != nil {
		logger.Error("Failed to write catalog cache", err, map[string]interface{}{
			"key": key,
		})
	}
}

// InvalidateCatalog drops every cached listing. Called after car mutations.
func InvalidateCatalog(ctx context.Context) {
	if client == nil {
		return
	}
	iter := client.Scan(ctx, 0, catalogKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := client.Del(ctx, iter.Val()).Err(); err != nil {
			logger.Error("Failed to invalidate catalog cache entry", err, map[string]interface{}{
				"key": iter.Val(),
			})
		}
	}
	if err := iter.Err(); err != nil {
		logger.Error("Failed to scan catalog cache keys", err, nil)
	}
}
