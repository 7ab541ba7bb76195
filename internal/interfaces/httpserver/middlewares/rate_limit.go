package middlewares

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AnuGuin/LegalAI-Backend/internal/utils/platformerrors"
)

// bucketIdleTTL bounds limiter memory: buckets untouched this long are
// dropped on the next sweep.
const bucketIdleTTL = 10 * time.Minute

type rateBucket struct {
	tokens   float64
	lastSeen time.Time
}

type rateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*rateBucket
	burst   float64
	perSec  float64
	swept   time.Time
}

// RateLimitMiddleware enforces a per-key token bucket. Authenticated callers
// are keyed by principal, anonymous callers by client IP.
func RateLimitMiddleware(limitPerMinute float64) gin.HandlerFunc {
	limiter := &rateLimiter{
		buckets: make(map[string]*rateBucket),
		burst:   limitPerMinute,
		perSec:  limitPerMinute / 60.0,
		swept:   time.Now(),
	}

	return func(c *gin.Context) {
		if !limiter.allow(rateKey(c)) {
			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, platformerrors.HTTPErrorResponse{
				Error: &platformerrors.HTTPErrorDetail{
					Message:   "too many requests, slow down",
					Type:      "rate_limited_error",
					RequestID: RequestIDFromContext(c),
				},
			})
			return
		}
		c.Next()
	}
}

func (l *rateLimiter) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if now.Sub(l.swept) > bucketIdleTTL {
		for k, b := range l.buckets {
			if now.Sub(b.lastSeen) > bucketIdleTTL {
				delete(l.buckets, k)
			}
		}
		l.swept = now
	}

	bucket, ok := l.buckets[key]
	if !ok {
		bucket = &rateBucket{tokens: l.burst, lastSeen: now}
		l.buckets[key] = bucket
	}

	refilled := bucket.tokens + now.Sub(bucket.lastSeen).Seconds()*l.perSec
	if refilled > l.burst {
		refilled = l.burst
	}
	bucket.lastSeen = now

	if refilled < 1 {
		bucket.tokens = refilled
		return false
	}
	bucket.tokens = refilled - 1
	return true
}

func rateKey(c *gin.Context) string {
	if principal, ok := PrincipalFromContext(c); ok && principal.PublicID != "" {
		return "pid:" + principal.PublicID
	}
	if ip := clientIP(c.ClientIP()); ip != "" {
		return "ip:" + ip
	}
	return "anonymous"
}

// Normalize IPv6-mapped IPv4 etc.
func clientIP(raw string) string {
	if raw == "" {
		return ""
	}
	if ip := net.ParseIP(raw); ip != nil {
		return ip.String()
	}
	return raw
}
