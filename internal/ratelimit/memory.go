package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryLimiter is an in-process sliding-window limiter. It keeps the
// admission timestamps per key and prunes them on every check, so the
// window slides continuously rather than resetting at fixed boundaries.
// Used by tests and by deployments without a Redis backend.
type MemoryLimiter struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry

	limit  int
	window time.Duration
	now    func() time.Time
}

type memoryEntry struct {
	admissions []time.Time
	lastSeen   time.Time
}

type MemoryOption func(*MemoryLimiter)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(l *MemoryLimiter) { l.now = now }
}

func NewMemoryLimiter(limit int, window time.Duration, opts ...MemoryOption) *MemoryLimiter {
	l := &MemoryLimiter{
		entries: make(map[string]*memoryEntry),
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *MemoryLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	ent, ok := l.entries[key]
	if !ok {
		ent = &memoryEntry{}
		l.entries[key] = ent
	}
	ent.lastSeen = now

	cutoff := now.Add(-l.window)
	kept := ent.admissions[:0]
	for _, at := range ent.admissions {
		if at.After(cutoff) {
			kept = append(kept, at)
		}
	}
	ent.admissions = kept

	if len(ent.admissions) < l.limit {
		ent.admissions = append(ent.admissions, now)
		return Decision{Allowed: true, Remaining: l.limit - len(ent.admissions)}, nil
	}

	retry := ent.admissions[0].Add(l.window).Sub(now)
	if retry < 0 {
		retry = 0
	}
	return Decision{Allowed: false, RetryAfter: retry}, nil
}

// Cleanup drops keys idle longer than the window, so one-off callers do
// not accumulate forever.
func (l *MemoryLimiter) Cleanup() {
	cutoff := l.now().Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	for k, ent := range l.entries {
		if ent.lastSeen.Before(cutoff) {
			delete(l.entries, k)
		}
	}
}

// StartJanitor runs Cleanup every interval until ctx is done.
func (l *MemoryLimiter) StartJanitor(ctx context.Context, every time.Duration) {
	if every <= 0 {
		return
	}
	t := time.NewTicker(every)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				l.Cleanup()
			}
		}
	}()
}
