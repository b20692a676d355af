package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter bounds request rates per caller using a fixed window counter
// in Redis. Because the counter lives in a shared store, the limit holds
// across multiple service instances.
// Key format: ratelimit:<caller>:<window_start_unix>
type RateLimiter struct {
	client *redis.Client
	max    int64
	window time.Duration
}

// NewRateLimiter creates a limiter allowing max requests per window.
func NewRateLimiter(client *redis.Client, max int, window time.Duration) *RateLimiter {
	if max <= 0 {
		max = 100
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{client: client, max: int64(max), window: window}
}

// Allow increments the caller's counter for the current window and reports
// whether the request may proceed. retryAfter is the time until the window
// resets, meaningful only when allowed is false.
func (l *RateLimiter) Allow(ctx context.Context, caller string) (allowed bool, retryAfter time.Duration, err error) {
	now := time.Now()
	windowStart := now.Truncate(l.window)
	key := fmt.Sprintf("ratelimit:%s:%d", caller, windowStart.Unix())

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, fmt.Errorf("rate limit check: %w", err)
	}

	if incr.Val() > l.max {
		return false, windowStart.Add(l.window).Sub(now), nil
	}
	return true, 0, nil
}
