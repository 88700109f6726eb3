package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"main/utils"
)

type bucket struct {
	count   int
	resetAt time.Time
}

// RateLimiter tracks request counts per client address in process memory.
// State is unbounded in key count and resets on restart; acceptable for a
// small-scale, trusted deployment.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	limit   int
	window  time.Duration
	now     func() time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		buckets: make(map[string]*bucket),
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
}

// Allow records one request for key and reports whether it is within the
// limit. The window resets wholesale once its deadline passes.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	current, ok := rl.buckets[key]
	if !ok || now.After(current.resetAt) {
		rl.buckets[key] = &bucket{count: 1, resetAt: now.Add(rl.window)}
		return true
	}

	if current.count >= rl.limit {
		return false
	}

	current.count++
	return true
}

// Middleware rejects over-limit requests with too_many_requests before any
// store access happens.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if key == "" {
			key = "local"
		}

		if !rl.Allow(key) {
			RateLimitedTotal.Inc()
			utils.TooManyRequests(c)
			c.Abort()
			return
		}

		c.Next()
	}
}
