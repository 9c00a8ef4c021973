package middleware

import (
	"sync"
	"time"

	"intelligence-srv/pkg/response"
	"intelligence-srv/pkg/scope"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	defaultPerMinute = 10
	defaultBurst     = 3
	limiterIdleTTL   = 10 * time.Minute
)

type userLimiter struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	limiters map[string]*limiterEntry
	now      func() time.Time
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newUserLimiter(perMinute, burst int) *userLimiter {
	if perMinute <= 0 {
		perMinute = defaultPerMinute
	}
	if burst <= 0 {
		burst = defaultBurst
	}
	return &userLimiter{
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    burst,
		limiters: make(map[string]*limiterEntry),
		now:      time.Now,
	}
}

func (u *userLimiter) allow(key string) bool {
	u.mu.Lock()
	defer u.mu.Unlock()

	now := u.now()
	for k, e := range u.limiters {
		if now.Sub(e.lastSeen) > limiterIdleTTL {
			delete(u.limiters, k)
		}
	}

	e, ok := u.limiters[key]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(u.limit, u.burst)}
		u.limiters[key] = e
	}
	e.lastSeen = now
	return e.limiter.AllowN(now, 1)
}

// RateLimit bounds how often one caller may start report runs.
// Must run after Auth; unauthenticated calls share the client IP bucket.
func (m Middleware) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if sc, ok := scope.GetScopeFromContext(c.Request.Context()); ok && sc.UserID != "" {
			key = "user:" + sc.UserID
		}

		if !m.limiter.allow(key) {
			m.l.Warnf(c.Request.Context(), "middleware.RateLimit: %s exceeded the generate rate", key)
			response.TooManyRequests(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
