package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"reservation-server/config"
)

var (
	RedisClient *redis.Client
	redisCtx    = context.Background()
)

// InitRedis initializes the Redis client. The cache is optional: when
// Redis is unreachable the server still runs, reads just skip the
// cache.
func InitRedis() error {
	cfg := config.AppConfig.Redis
	addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)

	RedisClient = redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	if _, err := RedisClient.Ping(redisCtx).Result(); err != nil {
		RedisClient = nil
		return fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}

	logrus.WithField("addr", addr).Info("Connected to Redis")
	return nil
}

// CacheSet stores a value with an expiration. No-op without Redis.
func CacheSet(key, value string, expiration time.Duration) {
	if RedisClient == nil {
		return
	}
	if err := RedisClient.Set(redisCtx, key, value, expiration).Err(); err != nil {
		logrus.WithError(err).WithField("key", key).Debug("Cache set failed")
	}
}

// CacheGet retrieves a value. The second return reports a hit.
func CacheGet(key string) (string, bool) {
	if RedisClient == nil {
		return "", false
	}
	val, err := RedisClient.Get(redisCtx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// CacheDelete removes keys. No-op without Redis.
func CacheDelete(keys ...string) {
	if RedisClient == nil || len(keys) == 0 {
		return
	}
	if err := RedisClient.Del(redisCtx, keys...).Err(); err != nil {
		logrus.WithError(err).Debug("Cache delete failed")
	}
}

// PropertyCacheKey is the cache key for a property detail payload.
func PropertyCacheKey(propertyID uint) string {
	return fmt.Sprintf("property:%d", propertyID)
}

// CloseRedis closes the Redis connection.
func CloseRedis() {
	if RedisClient != nil {
		RedisClient.Close()
	}
}
