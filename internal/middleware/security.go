package middleware

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"rooftopgarden/internal/apperrors"
	"rooftopgarden/internal/services"
)

// SecurityHeaders adds security-related headers to all responses
func SecurityHeaders(tls bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data: https:; media-src 'self' blob:; form-action 'self'")
		// Mikrofon, ses kaydı yüklemeleri için aynı origin'e açık
		c.Header("Permissions-Policy", "geolocation=(), microphone=(self), camera=()")
		if tls {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}
		if !strings.HasPrefix(c.Request.URL.Path, "/static/") {
			c.Header("Cache-Control", "no-store")
		}
		c.Next()
	}
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter, IP başına token bucket tutar.
// Eski kayıtlar yeni bir IP eklenirken temizlenir.
type RateLimiter struct {
	mu        sync.Mutex
	ips       map[string]*limiterEntry
	rate      rate.Limit
	burst     int
	ttl       time.Duration
	lastSweep time.Time
	now       func() time.Time
	security  *services.SecurityLogger
}

// NewRateLimiter creates a limiter allowing perMinute requests per IP.
func NewRateLimiter(perMinute int, ttl time.Duration, security *services.SecurityLogger) *RateLimiter {
	if perMinute <= 0 {
		perMinute = 1
	}
	burst := perMinute / 4
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		ips:      make(map[string]*limiterEntry),
		rate:     rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    burst,
		ttl:      ttl,
		now:      time.Now,
		security: security,
	}
}

// Allow reports whether a request from ip may proceed.
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	entry, ok := rl.ips[ip]
	if !ok {
		rl.sweepLocked(now)
		entry = &limiterEntry{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.ips[ip] = entry
	}
	entry.lastSeen = now
	return entry.limiter.AllowN(now, 1)
}

func (rl *RateLimiter) sweepLocked(now time.Time) {
	if rl.ttl <= 0 || now.Sub(rl.lastSweep) < rl.ttl {
		return
	}
	for ip, e := range rl.ips {
		if now.Sub(e.lastSeen) > rl.ttl {
			delete(rl.ips, ip)
		}
	}
	rl.lastSweep = now
}

// Middleware rejects requests over the limit. onLimit renders the rejection;
// when nil a JSON error is written.
func (rl *RateLimiter) Middleware(onLimit gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if rl.Allow(ip) {
			c.Next()
			return
		}
		rl.security.LogSecurityEvent("RATE_LIMIT", c.Request.URL.Path, ip)
		if onLimit != nil {
			onLimit(c)
			c.Abort()
			return
		}
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"success": false,
			"error":   apperrors.ErrTooManyRequests.Message,
		})
	}
}
