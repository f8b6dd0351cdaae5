package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiter keeps a token bucket per client IP, with a tighter bucket for
// auth endpoints. Buckets are dropped wholesale every cleanup interval so the
// maps cannot grow without bound.
type RateLimiter struct {
	mu            sync.Mutex
	limiters      map[string]*rate.Limiter
	authLimiters  map[string]*rate.Limiter
	limit         rate.Limit
	burst         int
	authLimit     rate.Limit
	authBurst     int
	cleanupTicker *time.Ticker
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(requestsPerSecond float64, burst int, authRequestsPerMinute float64, authBurst int) *RateLimiter {
	rl := &RateLimiter{
		limiters:      make(map[string]*rate.Limiter),
		authLimiters:  make(map[string]*rate.Limiter),
		limit:         rate.Limit(requestsPerSecond),
		burst:         burst,
		authLimit:     rate.Limit(authRequestsPerMinute / 60),
		authBurst:     authBurst,
		cleanupTicker: time.NewTicker(10 * time.Minute),
	}

	go rl.cleanup()

	return rl
}

func (rl *RateLimiter) cleanup() {
	for range rl.cleanupTicker.C {
		rl.mu.Lock()
		rl.limiters = make(map[string]*rate.Limiter)
		rl.authLimiters = make(map[string]*rate.Limiter)
		rl.mu.Unlock()
	}
}

// Stop stops the background cleanup.
func (rl *RateLimiter) Stop() {
	rl.cleanupTicker.Stop()
}

func (rl *RateLimiter) limiterFor(ip string, auth bool) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	m := rl.limiters
	limit, burst := rl.limit, rl.burst
	if auth {
		m = rl.authLimiters
		limit, burst = rl.authLimit, rl.authBurst
	}

	limiter, ok := m[ip]
	if !ok {
		limiter = rate.NewLimiter(limit, burst)
		m[ip] = limiter
	}
	return limiter
}

// IPRateLimiterMiddleware limits requests based on client IP.
func (rl *RateLimiter) IPRateLimiterMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.limiterFor(c.ClientIP(), false).Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// AuthRateLimiterMiddleware applies the tighter auth bucket; mounted on
// login/register routes in addition to the global limiter.
func (rl *RateLimiter) AuthRateLimiterMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.limiterFor(c.ClientIP(), true).Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many authentication attempts, please try again later"})
			c.Abort()
			return
		}
		c.Next()
	}
}
