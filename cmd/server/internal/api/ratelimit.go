package api

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimiter answers whether a caller may proceed. retryAfter is the
// number of seconds until the window resets, meaningful only when the
// request was denied.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (allowed bool, retryAfter int, err error)
}

// NoopRateLimiter admits everything. Used when Redis is disabled and in
// handler tests.
type NoopRateLimiter struct{}

func (NoopRateLimiter) Allow(ctx context.Context, key string) (bool, int, error) {
	return true, 0, nil
}

// RedisRateLimiter is a fixed-window counter per key. The first request
// in a window creates the counter with a TTL; subsequent requests
// increment it until the cap is hit.
type RedisRateLimiter struct {
	client *redis.Client
	window time.Duration
	max    int
}

func NewRedisRateLimiter(client *redis.Client, window time.Duration, max int) *RedisRateLimiter {
	return &RedisRateLimiter{client: client, window: window, max: max}
}

func (l *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, int, error) {
	redisKey := "ratelimit:" + key

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, 0, err
	}
	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			return false, 0, err
		}
	}
	if count <= int64(l.max) {
		return true, 0, nil
	}

	ttl, err := l.client.TTL(ctx, redisKey).Result()
	if err != nil || ttl < 0 {
		ttl = l.window
	}
	retryAfter := int(ttl.Seconds())
	if retryAfter < 1 {
		retryAfter = 1
	}
	return false, retryAfter, nil
}

// rateLimit wraps a handler with the per-client limiter. Limiter errors
// fail open: a Redis outage must not take the read API down with it.
func (a *API) rateLimit(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, retryAfter, err := a.limiter.Allow(r.Context(), clientIP(r))
		if err != nil {
			a.logger.Warn("Rate limiter unavailable, allowing request", zap.Error(err))
			next(w, r)
			return
		}
		if !allowed {
			a.writeJSON(w, http.StatusTooManyRequests, response{
				Success:    false,
				Error:      "Too many requests",
				RetryAfter: retryAfter,
			})
			return
		}
		next(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
