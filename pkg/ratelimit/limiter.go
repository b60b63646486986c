// Package ratelimit throttles repeated requests per client key. It exists
// to slow down credential guessing against the login endpoint, but the
// limiter itself is key-agnostic.
package ratelimit

import (
	"sync"
	"time"
)

// bucket is a token bucket. Tokens refill continuously at refillRate
// tokens per second up to the burst capacity.
type bucket struct {
	tokens     float64
	lastRefill time.Time
}

// Limiter keeps one token bucket per key. Inactive buckets are swept
// after the configured TTL so the map does not grow without bound.
type Limiter struct {
	mu         sync.Mutex
	buckets    map[string]*bucket
	burst      int
	refillRate float64
	ttl        time.Duration
}

// NewLimiter creates a limiter allowing a burst of `burst` requests per
// key, refilling at `perMinute` requests per minute. If ttl > 0 a
// background sweeper drops buckets idle for longer than ttl.
func NewLimiter(burst int, perMinute float64, ttl time.Duration) *Limiter {
	l := &Limiter{
		buckets:    make(map[string]*bucket),
		burst:      burst,
		refillRate: perMinute / 60.0,
		ttl:        ttl,
	}
	if ttl > 0 {
		go l.sweep()
	}
	return l
}

// Allow reports whether a request for key should proceed, consuming one
// token if so.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: float64(l.burst), lastRefill: now}
		l.buckets[key] = b
	} else {
		elapsed := now.Sub(b.lastRefill).Seconds()
		b.tokens = min(float64(l.burst), b.tokens+elapsed*l.refillRate)
		b.lastRefill = now
	}

	if b.tokens >= 1.0 {
		b.tokens -= 1.0
		return true
	}
	return false
}

// Reset clears the bucket for key. Called after a successful login so a
// legitimate user who mistyped a few times is not penalized further.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.buckets, key)
}

// ActiveKeys returns the number of keys currently tracked.
func (l *Limiter) ActiveKeys() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

func (l *Limiter) sweep() {
	ticker := time.NewTicker(l.ttl)
	defer ticker.Stop()

	for range ticker.C {
		l.mu.Lock()
		now := time.Now()
		for key, b := range l.buckets {
			if now.Sub(b.lastRefill) > l.ttl {
				delete(l.buckets, key)
			}
		}
		l.mu.Unlock()
	}
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
