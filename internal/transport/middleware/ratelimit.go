package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/nsinterior-dev/figment/internal/database/redis"
	"github.com/nsinterior-dev/figment/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RateLimiter applies a fixed-window per-IP limit. When redis is available
// the window lives there so replicas share it; otherwise an in-memory
// counter is used.
type RateLimiter struct {
	cache      *redis.CacheRepository
	maxPerMin  int
	mu         sync.Mutex
	counts     map[string]int
	windowFrom time.Time
}

func NewRateLimiter(cache *redis.CacheRepository, maxPerMin int) *RateLimiter {
	if maxPerMin <= 0 {
		return nil
	}
	return &RateLimiter{
		cache:      cache,
		maxPerMin:  maxPerMin,
		counts:     make(map[string]int),
		windowFrom: time.Now(),
	}
}

func (l *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		ip := c.ClientIP()
		allowed := true
		if l.cache != nil {
			count, err := l.cache.Allow(c.Request.Context(), ip, time.Minute)
			if err != nil {
				// Redis down: degrade to allowing the request.
				logrus.Warnf("Rate limiter unavailable: %v", err)
			} else if count > int64(l.maxPerMin) {
				allowed = false
			}
		} else {
			allowed = l.allowInMemory(ip)
		}

		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				entity.Fail(http.StatusTooManyRequests, "Rate limit exceeded, please slow down"))
			return
		}
		c.Next()
	}
}

func (l *RateLimiter) allowInMemory(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if time.Since(l.windowFrom) >= time.Minute {
		l.counts = make(map[string]int)
		l.windowFrom = time.Now()
	}
	l.counts[ip]++
	return l.counts[ip] <= l.maxPerMin
}
