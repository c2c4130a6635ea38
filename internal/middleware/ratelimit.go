package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/cosmoruler/Summerbuild/internal/config"
)

// CounterStore increments a per-key counter and returns its value after the
// increment. The key expires when its window ends, so the first increment in
// a window starts at 1.
type CounterStore interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RedisCounter counts windows in Redis so the limit holds across replicas.
type RedisCounter struct{ RDB *redis.Client }

func (s *RedisCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	n, err := s.RDB.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		s.RDB.Expire(ctx, key, window)
	}
	return n, nil
}

// MemoryCounter is the single-process fallback used when Redis is absent.
type MemoryCounter struct {
	mu      sync.Mutex
	counts  map[string]int64
	expires map[string]time.Time
}

func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{counts: map[string]int64{}, expires: map[string]time.Time{}}
}

func (s *MemoryCounter) Incr(_ context.Context, key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	if exp, ok := s.expires[key]; !ok || now.After(exp) {
		s.counts[key] = 0
		s.expires[key] = now.Add(window)
	}
	s.counts[key]++
	return s.counts[key], nil
}

// NewFixedWindow returns an Echo middleware enforcing a fixed-window request
// limit per client IP. Every request in the current window counts, including
// rejected ones. When the store errors the request is let through; the
// limiter protects the upstream quota, it is not a security boundary.
func NewFixedWindow(cfg config.RateLimitConfig, store CounterStore) echo.MiddlewareFunc {
	if !cfg.Enabled || store == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			if ip == "" {
				ip = "unknown"
			}
			window := time.Now().Unix() / int64(cfg.Window/time.Second)
			key := fmt.Sprintf("%s:%s:%d", cfg.Prefix, ip, window)

			n, err := store.Incr(c.Request().Context(), key, cfg.Window)
			if err != nil {
				c.Logger().Warnf("ratelimit: counter error for %s: %v", ip, err)
				return next(c)
			}

			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
			remaining := int64(cfg.Limit) - n
			if remaining < 0 {
				remaining = 0
			}
			c.Response().Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if n > int64(cfg.Limit) {
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(cfg.Window/time.Second)))
				return c.JSON(http.StatusTooManyRequests, echo.Map{
					"error": "Too many requests, please try again later.",
				})
			}
			return next(c)
		}
	}
}
