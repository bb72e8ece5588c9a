package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"beauty-solutions-backend/internal/delivery/http/response"
	"beauty-solutions-backend/pkg/logger"
	"beauty-solutions-backend/pkg/security"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
	goredis "github.com/redis/go-redis/v9"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	// Requests per window
	Limit int
	// Time window duration
	Window time.Duration
	// Custom key extractor (default: client IP)
	KeyFunc func(*gin.Context) string
	// Key prefix for Redis
	KeyPrefix string
	// Reject when Redis fails instead of falling back to memory
	FailClosed bool
	// Redis client; nil uses the in-memory store
	Redis *goredis.Client
	// Audit logger for triggered limits; optional
	Audit *security.SecurityLogger
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

// ContactRateLimitConfig limits contact submissions per client IP
func ContactRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:      limit,
		Window:     window,
		KeyPrefix:  "rl:contact:",
		FailClosed: false, // the form must stay usable when Redis is down
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	}
}

// memoryStore is the fixed-window fallback when Redis is unavailable
type memoryStore struct {
	mu    sync.Mutex
	cache *gocache.Cache
}

func newMemoryStore(window time.Duration) *memoryStore {
	return &memoryStore{cache: gocache.New(window, 5*time.Minute)}
}

func (s *memoryStore) incr(key string, window time.Duration) (int, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if err := s.cache.Add(key, 1, window); err == nil {
		return 1, now.Add(window)
	}

	count, err := s.cache.IncrementInt(key, 1)
	if err != nil {
		// expired between Add and IncrementInt
		s.cache.Set(key, 1, window)
		return 1, now.Add(window)
	}

	_, resetAt, _ := s.cache.GetWithExpiration(key)
	return count, resetAt
}

// RateLimitMiddleware creates a rate limiting middleware with the given config.
// Uses Redis when configured and falls back to memory when it fails.
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	if config.KeyFunc == nil {
		config.KeyFunc = func(c *gin.Context) string { return c.ClientIP() }
	}
	store := newMemoryStore(config.Window)

	return func(c *gin.Context) {
		if config.Limit <= 0 {
			c.Next()
			return
		}

		fullKey := config.KeyPrefix + config.KeyFunc(c)

		var count int
		var resetAt time.Time

		if config.Redis != nil {
			var err error
			count, resetAt, err = checkRateLimitRedis(c.Request.Context(), config.Redis, fullKey, config)
			if err != nil {
				logger.Log.WarnContext(c.Request.Context(), "Redis rate limit failed", "error", err)
				if config.FailClosed {
					response.Error(c, http.StatusServiceUnavailable, "Service temporarily unavailable. Please try again.")
					c.Abort()
					return
				}
				count, resetAt = store.incr(fullKey, config.Window)
			}
		} else {
			count, resetAt = store.incr(fullKey, config.Window)
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
		c.Header("X-RateLimit-Reset", resetAt.UTC().Format(time.RFC3339))

		if count > config.Limit {
			retryAfter := int(time.Until(resetAt).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			if config.Audit != nil {
				requestID, _ := c.Get("RequestID")
				reqIDStr, _ := requestID.(string)
				config.Audit.LogRateLimitTriggered(c.Request.Context(), c.ClientIP(), c.Request.UserAgent(), reqIDStr, c.FullPath())
			}

			response.Error(c, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(config.Limit-count))
		c.Next()
	}
}

// checkRateLimitRedis checks rate limit using Redis with atomic Lua script
func checkRateLimitRedis(ctx context.Context, client *goredis.Client, key string, config RateLimitConfig) (int, time.Time, error) {
	ttlSeconds := int(config.Window.Seconds())
	if ttlSeconds < 1 {
		ttlSeconds = 1
	}

	result, err := client.Eval(ctx, rateLimitLuaScript, []string{key}, ttlSeconds).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis rate limit eval failed: %w", err)
	}

	arr, ok := result.([]interface{})
	if !ok || len(arr) < 2 {
		return 0, time.Time{}, fmt.Errorf("unexpected redis result format")
	}

	count, _ := arr[0].(int64)
	ttl, _ := arr[1].(int64)

	return int(count), time.Now().Add(time.Duration(ttl) * time.Second), nil
}
