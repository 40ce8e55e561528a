package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/karimelh/vitrine-backend/config"
	"github.com/karimelh/vitrine-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

var client *redis.Client

const categoryTreeKey = "vitrine:category-tree"

// Init initializes the Redis connection
func Init(cfg *config.RedisConfig) error {
	logger.Info("Initializing Redis connection", map[string]interface{}{
		"host": cfg.Host,
		"port": cfg.Port,
		"db":   cfg.DB,
	})

	client = redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
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

// GetClient returns the Redis client instance, nil when Redis is disabled
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

// GetCategoryTree returns the cached storefront category tree JSON, or ""
// when the cache is cold or Redis is disabled.
func GetCategoryTree(ctx context.Context) string {
	if client == nil {
		return ""
	}

	val, err := client.Get(ctx, categoryTreeKey).Result()
	if err == redis.Nil {
		return ""
	}
	if err != nil {
		logger.Warn("Failed to read category tree cache", map[string]interface{}{
			"error": err.Error(),
		})
		return ""
	}
	return val
}

// SetCategoryTree stores the serialized storefront category tree
func SetCategoryTree(ctx context.Context, payload string, expiry time.Duration) {
	if client == nil {
		return
	}

	if err := client.Set(ctx, categoryTreeKey, payload, expiry).Err(); err != nil {
		logger.Warn("Failed to write category tree cache", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// InvalidateCategoryTree drops the cached tree after a category or product
// mutation.
func InvalidateCategoryTree(ctx context.Context) {
	if client == nil {
		return
	}

	if err := client.Del(ctx, categoryTreeKey).Err(); err != nil {
		logger.Warn("Failed to invalidate category tree cache", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// BlacklistToken adds a token to the blacklist until it would have expired
func BlacklistToken(ctx context.Context, token string, expiry time.Duration) error {
	if client == nil {
		return nil
	}

	key := fmt.Sprintf("blacklist:%s", token)
	if err := client.Set(ctx, key, "revoked", expiry).Err(); err != nil {
		logger.Error("Failed to blacklist token", err, nil)
		return err
	}
	return nil
}

// IsTokenBlacklisted checks if a token is in the blacklist
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
