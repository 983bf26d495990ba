package middleware

import (
	"sync"
	"time"

	"go-taxcalc/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// limiterIdleTTL must exceed the time any bucket needs to refill, so a
// dropped limiter is indistinguishable from a full one.
const limiterIdleTTL = 10 * time.Minute

type keyedLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// KeyedRateLimiter hands out one token bucket per key (client IP or user).
// Keys unused for limiterIdleTTL are evicted.
type KeyedRateLimiter struct {
	limiters  map[string]*keyedLimiter
	mu        sync.Mutex
	r         rate.Limit // requests per second
	b         int        // burst
	lastSweep time.Time
}

func NewKeyedRateLimiter(r rate.Limit, b int) *KeyedRateLimiter {
	return &KeyedRateLimiter{
		limiters:  make(map[string]*keyedLimiter),
		r:         r,
		b:         b,
		lastSweep: time.Now(),
	}
}

func (l *KeyedRateLimiter) GetLimiter(key string) *rate.Limiter {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= limiterIdleTTL {
		l.sweep(now)
	}

	entry, exists := l.limiters[key]
	if !exists {
		entry = &keyedLimiter{limiter: rate.NewLimiter(l.r, l.b)}
		l.limiters[key] = entry
	}
	entry.lastSeen = now

	return entry.limiter
}

// Sweep drops keys idle at now and reports how many were removed.
func (l *KeyedRateLimiter) Sweep(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sweep(now)
}

func (l *KeyedRateLimiter) sweep(now time.Time) int {
	removed := 0
	for key, entry := range l.limiters {
		if now.Sub(entry.lastSeen) >= limiterIdleTTL {
			delete(l.limiters, key)
			removed++
		}
	}
	l.lastSweep = now
	return removed
}

func (l *KeyedRateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

func RateLimitByIP(r rate.Limit, b int) gin.HandlerFunc {
	limiter := NewKeyedRateLimiter(r, b)
	return func(c *gin.Context) {
		if !limiter.GetLimiter(c.ClientIP()).Allow() {
			abortWith(c, apperror.ErrTooManyRequests)
			return
		}
		c.Next()
	}
}

// RateLimitByUser must run after ExtractUserID; anonymous requests pass.
func RateLimitByUser(r rate.Limit, b int) gin.HandlerFunc {
	limiter := NewKeyedRateLimiter(r, b)
	return func(c *gin.Context) {
		userID := c.GetString(ValidatedUserIDKey)
		if userID == "" {
			c.Next()
			return
		}
		if !limiter.GetLimiter(userID).Allow() {
			abortWith(c, apperror.ErrTooManyRequests)
			return
		}
		c.Next()
	}
}
