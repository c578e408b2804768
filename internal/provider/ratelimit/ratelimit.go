// Package ratelimit gates provider calls. Callers wait on a Limiter before
// they start the call's own timeout, so time spent queued never counts
// against a request.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MinInterval enforces a minimum time between call starts. Each caller
// reserves the next slot, so concurrent callers are spaced out in arrival
// order instead of all waking after the same interval.
type MinInterval struct {
	Interval time.Duration
	mu       sync.Mutex
	last     time.Time
}

func (m *MinInterval) Wait(ctx context.Context) error {
	if m.Interval <= 0 {
		return nil
	}
	m.mu.Lock()
	now := time.Now()
	next := m.last.Add(m.Interval)
	if next.Before(now) {
		next = now
	}
	m.last = next
	m.mu.Unlock()

	wait := time.Until(next)
	if wait <= 0 {
		return nil
	}
	t := time.NewTimer(wait)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Limiter combines the configured limits: a token bucket when rpm is
// positive, then a minimum interval when one is set. A nil Limiter, or one
// with neither limit, never blocks.
type Limiter struct {
	bucket  *TokenBucket
	spacing *MinInterval
}

func New(rpm, burst int, minInterval time.Duration) *Limiter {
	l := &Limiter{}
	if rpm > 0 {
		l.bucket = PerMinute(rpm, burst)
	}
	if minInterval > 0 {
		l.spacing = &MinInterval{Interval: minInterval}
	}
	return l
}

// Wait blocks until the caller may issue one provider call.
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil {
		return nil
	}
	if l.bucket != nil {
		if err := l.bucket.Wait(ctx); err != nil {
			return err
		}
	}
	if l.spacing != nil {
		return l.spacing.Wait(ctx)
	}
	return nil
}
