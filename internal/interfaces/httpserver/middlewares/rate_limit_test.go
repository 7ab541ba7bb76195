package middlewares

import (
	"testing"
	"time"
)

func newTestLimiter(limitPerMinute float64) *rateLimiter {
	return &rateLimiter{
		buckets: make(map[string]*rateBucket),
		burst:   limitPerMinute,
		perSec:  limitPerMinute / 60.0,
		swept:   time.Now(),
	}
}

func TestRateLimiter_ExhaustsBurst(t *testing.T) {
	limiter := newTestLimiter(3)

	for i := 0; i < 3; i++ {
		if !limiter.allow("ip:10.0.0.1") {
			t.Fatalf("request %d within the burst must pass", i+1)
		}
	}
	if limiter.allow("ip:10.0.0.1") {
		t.Fatal("request beyond the burst must be rejected")
	}
}

func TestRateLimiter_KeysAreIndependent(t *testing.T) {
	limiter := newTestLimiter(1)

	if !limiter.allow("ip:10.0.0.1") {
		t.Fatal("first key must pass")
	}
	if limiter.allow("ip:10.0.0.1") {
		t.Fatal("first key must be exhausted")
	}
	if !limiter.allow("ip:10.0.0.2") {
		t.Fatal("a different key keeps its own budget")
	}
}

func TestRateLimiter_RefillsOverTime(t *testing.T) {
	limiter := newTestLimiter(60)

	for limiter.allow("pid:user_1") {
	}

	// Backdate the bucket instead of sleeping.
	limiter.mu.Lock()
	limiter.buckets["pid:user_1"].lastSeen = time.Now().Add(-2 * time.Second)
	limiter.mu.Unlock()

	if !limiter.allow("pid:user_1") {
		t.Fatal("bucket must refill at one token per second")
	}
}

func TestRateLimiter_SweepsIdleBuckets(t *testing.T) {
	limiter := newTestLimiter(10)

	limiter.allow("ip:10.0.0.1")
	limiter.allow("ip:10.0.0.2")

	limiter.mu.Lock()
	limiter.buckets["ip:10.0.0.1"].lastSeen = time.Now().Add(-2 * bucketIdleTTL)
	limiter.swept = time.Now().Add(-2 * bucketIdleTTL)
	limiter.mu.Unlock()

	limiter.allow("ip:10.0.0.3")

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	if _, ok := limiter.buckets["ip:10.0.0.1"]; ok {
		t.Fatal("idle bucket must be swept")
	}
	if _, ok := limiter.buckets["ip:10.0.0.2"]; !ok {
		t.Fatal("active bucket must survive the sweep")
	}
}
