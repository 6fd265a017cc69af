package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrLoginRateLimited signals too many login attempts for one account within
// the cooldown window.
var ErrLoginRateLimited = errors.New("login rate limited")

// LoginLimiter counts login attempts per user id in Redis. The counter is set
// to expire when first incremented, so the window slides naturally.
type LoginLimiter struct {
	client      *redis.Client
	maxAttempts int
	cooldown    time.Duration
}

// NewLoginLimiter builds a limiter. A nil client disables limiting.
func NewLoginLimiter(client *redis.Client, maxAttempts int, cooldown time.Duration) *LoginLimiter {
	if maxAttempts <= 0 {
		maxAttempts = 10
	}
	if cooldown <= 0 {
		cooldown = 5 * time.Minute
	}
	return &LoginLimiter{client: client, maxAttempts: maxAttempts, cooldown: cooldown}
}

// Enforce increments the attempt counter for the user and returns
// ErrLoginRateLimited once the threshold is crossed. Redis failures are
// returned as-is so the caller can decide to fail open.
func (l *LoginLimiter) Enforce(ctx context.Context, userID string) error {
	if l == nil || l.client == nil {
		return nil
	}

	key := attemptKey(userID)
	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("login limiter: %w", err)
	}
	if count == 1 {
		if err := l.client.Expire(ctx, key, l.cooldown).Err(); err != nil {
			return fmt.Errorf("login limiter: %w", err)
		}
	}
	if count > int64(l.maxAttempts) {
		return ErrLoginRateLimited
	}
	return nil
}

// Reset clears the counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, userID string) {
	if l == nil || l.client == nil {
		return
	}
	l.client.Del(ctx, attemptKey(userID))
}

func attemptKey(userID string) string {
	return "login:attempts:" + userID
}
