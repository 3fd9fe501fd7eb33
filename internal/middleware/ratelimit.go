package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/p-karmelita/KARLAB-SOFTWARE/internal/apperror"
)

// Limiter decides whether another request from key fits in the current window.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// rateLimitEntry tracks request counts for a single IP within a time window.
type rateLimitEntry struct {
	count       int
	windowStart time.Time
}

// MemoryLimiter is a fixed-window counter per key kept in process memory.
// Used when Redis is not configured.
type MemoryLimiter struct {
	maxRequests int
	window      time.Duration

	mu      sync.Mutex
	entries map[string]*rateLimitEntry
	now     func() time.Time
}

// NewMemoryLimiter creates a limiter and starts a janitor goroutine that
// drops expired entries every minute until ctx is cancelled.
func NewMemoryLimiter(ctx context.Context, maxRequests int, window time.Duration) *MemoryLimiter {
	l := &MemoryLimiter{
		maxRequests: maxRequests,
		window:      window,
		entries:     make(map[string]*rateLimitEntry),
		now:         time.Now,
	}
	go l.janitor(ctx, time.Minute)
	return l
}

func (l *MemoryLimiter) janitor(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.sweep()
		}
	}
}

// sweep removes entries whose window ended more than one window ago.
func (l *MemoryLimiter) sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	for key, entry := range l.entries {
		if now.Sub(entry.windowStart) > l.window*2 {
			delete(l.entries, key)
		}
	}
}

// Allow implements Limiter. It never returns an error.
func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	entry, exists := l.entries[key]
	if !exists || now.Sub(entry.windowStart) > l.window {
		l.entries[key] = &rateLimitEntry{count: 1, windowStart: now}
		return true, nil
	}

	entry.count++
	return entry.count <= l.maxRequests, nil
}

// RedisLimiter is a fixed-window counter shared by every instance of the
// site through Redis. Keys expire with their window.
type RedisLimiter struct {
	client      *redis.Client
	maxRequests int
	window      time.Duration
	prefix      string
	now         func() time.Time
}

// NewRedisLimiter creates a Redis-backed limiter.
func NewRedisLimiter(client *redis.Client, maxRequests int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client:      client,
		maxRequests: maxRequests,
		window:      window,
		prefix:      "karlab:ratelimit:",
		now:         time.Now,
	}
}

// Allow implements Limiter with INCR + EXPIRE on a per-window key.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if l.window <= 0 {
		return false, fmt.Errorf("invalid rate limit window %s", l.window)
	}
	bucket := l.now().UnixNano() / int64(l.window)
	redisKey := l.prefix + key + ":" + strconv.FormatInt(bucket, 10)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("incrementing rate limit counter: %w", err)
	}
	return incr.Val() <= int64(l.maxRequests), nil
}

// RateLimit returns middleware that limits requests per client IP using the
// given limiter. Returns a 429 AppError when exceeded. A failing limiter lets the
// request through.
func RateLimit(limiter Limiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			allowed, err := limiter.Allow(c.Request().Context(), c.RealIP())
			if err != nil {
				slog.Warn("rate limiter unavailable, allowing request",
					slog.Any("error", err),
					slog.String("path", c.Request().URL.Path),
				)
				return next(c)
			}
			if !allowed {
				return apperror.NewTooManyRequests("Zbyt wiele żądań. Spróbuj ponownie za chwilę.")
			}
			return next(c)
		}
	}
}
