package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter throttles the results API per client IP over a fixed window.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientWindow
	limit   int
	window  time.Duration
}

type clientWindow struct {
	windowStart time.Time
	count       int
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		clients: make(map[string]*clientWindow),
		limit:   limit,
		window:  window,
	}
}

// Allow records a request from ip at the given time and reports whether it
// fits the limit. Expired windows reset; stale entries are pruned lazily.
func (rl *RateLimiter) Allow(ip string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cw, ok := rl.clients[ip]
	if !ok || now.Sub(cw.windowStart) > rl.window {
		rl.clients[ip] = &clientWindow{windowStart: now, count: 1}
		rl.prune(now)
		return true
	}

	if cw.count >= rl.limit {
		return false
	}
	cw.count++
	return true
}

// prune drops clients whose window expired long ago. Called with the lock
// held.
func (rl *RateLimiter) prune(now time.Time) {
	for ip, cw := range rl.clients {
		if now.Sub(cw.windowStart) > 2*rl.window {
			delete(rl.clients, ip)
		}
	}
}

// Limit returns the gin middleware enforcing the limiter.
func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP(), time.Now()) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded. Please try again later.",
				"retry_after": rl.window.Seconds(),
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
