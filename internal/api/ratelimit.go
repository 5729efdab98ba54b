package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/page-comments-api/internal/config"
	"golang.org/x/time/rate"
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// addressLimiter is an in-process token bucket per client address. It only
// smooths bursts on one instance; cooldowns in the KV store are authoritative.
type addressLimiter struct {
	mu        sync.Mutex
	entries   map[string]*limiterEntry
	rps       rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func newAddressLimiter(cfg config.RateLimitConfig, idleTTL time.Duration) *addressLimiter {
	return &addressLimiter{
		entries: make(map[string]*limiterEntry),
		rps:     rate.Limit(cfg.RPS),
		burst:   cfg.Burst,
		idleTTL: idleTTL,
		now:     time.Now,
	}
}

// allow reports whether addr may make another request now
func (l *addressLimiter) allow(addr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > l.idleTTL {
		for key, e := range l.entries {
			if now.Sub(e.lastSeen) > l.idleTTL {
				delete(l.entries, key)
			}
		}
		l.lastSweep = now
	}

	e, ok := l.entries[addr]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.entries[addr] = e
	}
	e.lastSeen = now

	return e.limiter.AllowN(now, 1)
}

func (l *addressLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func (l *addressLimiter) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.allow(c.ClientIP()) {
			c.String(http.StatusTooManyRequests, textTooManyRequests)
			c.Abort()
			return
		}
		c.Next()
	}
}
