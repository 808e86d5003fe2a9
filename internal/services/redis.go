package services

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

// InitRedis initializes the Redis client
func InitRedis() error {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://redis:6379" // Default Redis address for Docker
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	RedisClient = redis.NewClient(opt)

	// Test the connection
	ctx := context.Background()
	_, err = RedisClient.Ping(ctx).Result()
	if err != nil {
		RedisClient = nil
		return fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return nil
}

// RevokeToken denylists a session token until its natural expiry. Logout
// without Redis configured is a no-op; the token simply runs out.
func RevokeToken(ctx context.Context, token string, ttl time.Duration) error {
	if RedisClient == nil {
		return nil
	}
	if ttl <= 0 {
		return nil
	}
	key := fmt.Sprintf("auth:revoked:%s", token)
	return RedisClient.Set(ctx, key, "1", ttl).Err()
}

// IsTokenRevoked reports whether a token was denylisted at logout.
func IsTokenRevoked(ctx context.Context, token string) bool {
	if RedisClient == nil {
		return false
	}
	key := fmt.Sprintf("auth:revoked:%s", token)
	n, err := RedisClient.Exists(ctx, key).Result()
	return err == nil && n > 0
}
