package middleware

import (
	"net/http"
	"sync"
	"time"

	"pdf-voice/backend/common"
	pverrors "pdf-voice/backend/common/errors"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type ipRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	idle     time.Duration
	lastGC   time.Time
}

func newIPRateLimiter(num int, duration time.Duration) *ipRateLimiter {
	return &ipRateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Every(duration / time.Duration(num)),
		burst:    num,
		idle:     duration,
		lastGC:   time.Now(),
	}
}

func (l *ipRateLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if now.Sub(l.lastGC) > l.idle {
		for k, v := range l.visitors {
			if now.Sub(v.lastSeen) > l.idle {
				delete(l.visitors, k)
			}
		}
		l.lastGC = now
	}

	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter.Allow()
}

func rateLimitFactory(num int, duration time.Duration) gin.HandlerFunc {
	limiter := newIPRateLimiter(num, duration)
	return func(c *gin.Context) {
		if !limiter.allow(c.ClientIP()) {
			common.RespErrorCode(c, http.StatusTooManyRequests, pverrors.ErrTooManyRequests)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CriticalRateLimit throttles signup, login and token requests per client IP.
func CriticalRateLimit() gin.HandlerFunc {
	return rateLimitFactory(common.CriticalRateLimitNum, common.CriticalRateLimitDuration)
}
