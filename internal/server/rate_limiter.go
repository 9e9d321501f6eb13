package server

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"
	"webook-smoke/internal/configs"
	"webook-smoke/internal/util"

	"github.com/gin-gonic/gin"
	zlog "github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64 // unix nanos
}

// ipRateLimiter keeps one token bucket per client ip. Buckets idle longer
// than ttl are dropped by cleanup.
type ipRateLimiter struct {
	visitors *util.SyncMap[string, *visitor]
	limit    rate.Limit
	burst    int
	enabled  bool
	ttl      time.Duration
	interval time.Duration
}

func newIPRateLimiter(cfg *configs.RateLimitConfig) *ipRateLimiter {
	rl := &ipRateLimiter{
		visitors: util.NewSyncMap[string, *visitor](),
		enabled:  cfg.Requests > 0 && cfg.Window > 0,
		burst:    cfg.Requests,
		ttl:      cfg.TTL,
		interval: cfg.CleanupGap,
	}
	if rl.enabled {
		rl.limit = rate.Every(cfg.Window / time.Duration(cfg.Requests))
	}
	return rl
}

func (rl *ipRateLimiter) allow(ip string) bool {
	if !rl.enabled {
		return true
	}

	v := rl.visitors.LoadOrStore(ip, func() *visitor {
		return &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
	})
	v.lastSeen.Store(time.Now().UnixNano())
	return v.limiter.Allow()
}

func (rl *ipRateLimiter) cleanup(ctx context.Context) {
	if !rl.enabled || rl.interval <= 0 {
		return
	}

	ticker := time.NewTicker(rl.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			threshold := time.Now().Add(-rl.ttl).UnixNano()
			rl.visitors.Retain(func(_ string, v *visitor) bool {
				return v.lastSeen.Load() >= threshold
			})
			zlog.Debug().Int("visitors", rl.visitors.Len()).Msg("rate limiter cleanup")
		}
	}
}

func (rl *ipRateLimiter) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !rl.allow(ip) {
			zlog.Warn().Str("ip", ip).Str("path", c.Request.URL.Path).Msg("rate limit exceeded")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests, try again later"})
			return
		}
		c.Next()
	}
}
