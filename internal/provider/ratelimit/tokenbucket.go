package ratelimit

import (
	"context"
	"sync"
	"time"
)

// TokenBucket is a token bucket limiter.
// - rate: tokens per second
// - capacity: maximum tokens the bucket can hold (burst)
//
// Waiters reserve their token under the lock, so they are served in
// arrival order. The balance goes negative while reservations are queued.
type TokenBucket struct {
	rate     float64
	capacity float64

	mu     sync.Mutex
	tokens float64
	last   time.Time
}

func NewTokenBucket(tokensPerSecond float64, burst int) *TokenBucket {
	if tokensPerSecond <= 0 {
		tokensPerSecond = 0.0000001
	}
	if burst <= 0 {
		burst = 1
	}
	return &TokenBucket{
		rate:     tokensPerSecond,
		capacity: float64(burst),
		tokens:   float64(burst), // start full to allow an initial burst
		last:     time.Now(),
	}
}

// PerMinute builds a bucket from a requests-per-minute budget.
func PerMinute(rpm, burst int) *TokenBucket {
	return NewTokenBucket(float64(rpm)/60.0, burst)
}

// Wait blocks until the caller's reserved token is due or ctx is canceled.
// A canceled reservation is handed back to the bucket.
func (tb *TokenBucket) Wait(ctx context.Context) error {
	tb.mu.Lock()
	tb.refill(time.Now())
	tb.tokens--
	var wait time.Duration
	if tb.tokens < 0 {
		wait = time.Duration(-tb.tokens / tb.rate * float64(time.Second))
	}
	tb.mu.Unlock()

	if wait <= 0 {
		return nil
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		tb.mu.Lock()
		tb.tokens++
		tb.mu.Unlock()
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (tb *TokenBucket) refill(now time.Time) {
	elapsed := now.Sub(tb.last).Seconds()
	if elapsed <= 0 {
		return
	}
	tb.tokens += elapsed * tb.rate
	if tb.tokens > tb.capacity {
		tb.tokens = tb.capacity
	}
	tb.last = now
}
