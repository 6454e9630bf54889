// Package ratelimit throttles repeated login attempts using a fixed-window
// counter in Redis.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginLimiter counts login attempts per key within a fixed window. A nil
// Redis client disables limiting so the service keeps working without Redis.
type LoginLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	prefix string
}

// NewLoginLimiter creates a new LoginLimiter. limit is the number of attempts
// allowed per window.
func NewLoginLimiter(client *redis.Client, limit int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{
		client: client,
		limit:  limit,
		window: window,
		prefix: "login_attempts",
	}
}

// Allow reports whether another attempt for key is permitted. The counter is
// created with the window's TTL on first increment. Redis failures fail open:
// an unavailable limiter must not lock every student out.
func (l *LoginLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if l.client == nil || l.limit <= 0 {
		return true, nil
	}

	redisKey := fmt.Sprintf("%s:%s", l.prefix, key)
	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return true, err
	}
	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			return true, err
		}
	}
	return count <= int64(l.limit), nil
}
