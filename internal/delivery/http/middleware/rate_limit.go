package middleware

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go-inquiry-backend/internal/delivery/http/response"
	"go-inquiry-backend/pkg/apperror"
	"go-inquiry-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	// Requests per window
	Limit int
	// Time window duration
	Window time.Duration
	// Custom key extractor (default: IP-based)
	KeyFunc func(*gin.Context) string
	// Key prefix for Redis (default: "rl:submit:")
	KeyPrefix string
}

// SubmitRateLimitConfig is the per-IP limit applied to the form endpoints.
func SubmitRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:     limit,
		Window:    window,
		KeyPrefix: "rl:submit:",
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	}
}

// rateLimitEntry tracks request count for a key (in-memory fallback)
type rateLimitEntry struct {
	count   int
	resetAt time.Time
	mu      sync.Mutex
}

// Lua script for atomic increment with TTL on first set
// KEYS[1] = counter key
// ARGV[1] = TTL in seconds
// Returns: [current_count, ttl_remaining]
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

// RateLimiter counts requests in Redis when a client is given and in
// process memory otherwise. It always fails open: a Redis error falls back
// to the in-memory counter.
type RateLimiter struct {
	cfg   RateLimitConfig
	redis *goredis.Client
	store sync.Map
	now   func() time.Time
}

func NewRateLimiter(cfg RateLimitConfig, redis *goredis.Client) *RateLimiter {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = func(c *gin.Context) string { return c.ClientIP() }
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	return &RateLimiter{cfg: cfg, redis: redis, now: time.Now}
}

// Cleanup drops expired in-memory entries every interval until ctx ends.
func (rl *RateLimiter) Cleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := rl.now()
			rl.store.Range(func(key, value interface{}) bool {
				entry := value.(*rateLimitEntry)
				entry.mu.Lock()
				if now.After(entry.resetAt) {
					rl.store.Delete(key)
				}
				entry.mu.Unlock()
				return true
			})
		}
	}
}

// Middleware rejects requests beyond the limit with 429.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.cfg.Limit <= 0 {
			c.Next()
			return
		}

		fullKey := rl.cfg.KeyPrefix + rl.cfg.KeyFunc(c)
		count, resetAt := rl.count(c, fullKey)

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.cfg.Limit))
		c.Header("X-RateLimit-Reset", resetAt.Format(time.RFC3339))

		if count > rl.cfg.Limit {
			retryAfter := int(resetAt.Sub(rl.now()).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			logger.FromContext(c.Request.Context()).Warn("Rate limit triggered",
				zap.String("client_ip", c.ClientIP()),
				zap.String("path", c.FullPath()),
				zap.Int("count", count),
			)

			appErr := apperror.TooManyRequests("Too many submissions. Please try again later.")
			response.Error(c, appErr.Code, appErr.Label, appErr.Message, nil)
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(max(rl.cfg.Limit-count, 0)))
		c.Next()
	}
}

func (rl *RateLimiter) count(c *gin.Context, key string) (int, time.Time) {
	if rl.redis != nil {
		count, resetAt, err := rl.countRedis(c.Request.Context(), key)
		if err == nil {
			return count, resetAt
		}
		logger.FromContext(c.Request.Context()).Warn("Rate limit store unavailable, using in-memory fallback", zap.Error(err))
	}
	return rl.countInMemory(key, rl.now())
}

// countRedis checks rate limit using Redis with atomic Lua script
func (rl *RateLimiter) countRedis(ctx context.Context, key string) (int, time.Time, error) {
	ttlSeconds := int(rl.cfg.Window.Seconds())

	result, err := rl.redis.Eval(ctx, rateLimitLuaScript, []string{key}, ttlSeconds).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis rate limit eval failed: %w", err)
	}

	// Parse result [count, ttl]
	arr, ok := result.([]interface{})
	if !ok || len(arr) < 2 {
		return 0, time.Time{}, errors.New("unexpected redis result format")
	}

	count, _ := arr[0].(int64)
	ttl, _ := arr[1].(int64)

	return int(count), rl.now().Add(time.Duration(ttl) * time.Second), nil
}

// countInMemory checks rate limit using in-memory store (fallback)
func (rl *RateLimiter) countInMemory(key string, now time.Time) (int, time.Time) {
	entryI, _ := rl.store.LoadOrStore(key, &rateLimitEntry{
		resetAt: now.Add(rl.cfg.Window),
	})
	entry := entryI.(*rateLimitEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	// Reset if window expired
	if now.After(entry.resetAt) {
		entry.count = 0
		entry.resetAt = now.Add(rl.cfg.Window)
	}

	entry.count++
	return entry.count, entry.resetAt
}
