package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock lets tests slide the window without sleeping.
type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newFakeLimiter(limit int, window time.Duration) (*MemoryLimiter, *fakeClock) {
	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	return NewMemoryLimiter(limit, window, WithClock(clock.Now)), clock
}

func TestMemoryLimiter_BudgetExhaustsWithinWindow(t *testing.T) {
	lim, _ := newFakeLimiter(5, 10*time.Second)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		dec, err := lim.Allow(ctx, GlobalKey)
		require.NoError(t, err)
		assert.True(t, dec.Allowed, "admission %d should pass", i+1)
		assert.Equal(t, 4-i, dec.Remaining)
	}

	dec, err := lim.Allow(ctx, GlobalKey)
	require.NoError(t, err)
	assert.False(t, dec.Allowed, "6th admission in the window must be denied")
	assert.Equal(t, 10*time.Second, dec.RetryAfter)
}

func TestMemoryLimiter_WindowSlides(t *testing.T) {
	lim, clock := newFakeLimiter(5, 10*time.Second)
	ctx := context.Background()

	// Two admissions at t=0, three at t=6s: budget gone.
	for i := 0; i < 2; i++ {
		dec, _ := lim.Allow(ctx, GlobalKey)
		require.True(t, dec.Allowed)
	}
	clock.Advance(6 * time.Second)
	for i := 0; i < 3; i++ {
		dec, _ := lim.Allow(ctx, GlobalKey)
		require.True(t, dec.Allowed)
	}
	dec, _ := lim.Allow(ctx, GlobalKey)
	assert.False(t, dec.Allowed)

	// At t=11s the two oldest admissions have left the window.
	clock.Advance(5 * time.Second)
	dec, _ = lim.Allow(ctx, GlobalKey)
	assert.True(t, dec.Allowed, "budget frees as admissions age out")
	dec, _ = lim.Allow(ctx, GlobalKey)
	assert.True(t, dec.Allowed)
	dec, _ = lim.Allow(ctx, GlobalKey)
	assert.False(t, dec.Allowed, "the t=6s admissions still occupy the window")

	// After the full window elapses the budget is whole again.
	clock.Advance(11 * time.Second)
	for i := 0; i < 5; i++ {
		dec, _ := lim.Allow(ctx, GlobalKey)
		assert.True(t, dec.Allowed)
	}
}

func TestMemoryLimiter_KeysHaveIndependentBudgets(t *testing.T) {
	lim, _ := newFakeLimiter(1, 10*time.Second)
	ctx := context.Background()

	dec, _ := lim.Allow(ctx, "10.0.0.1")
	assert.True(t, dec.Allowed)
	dec, _ = lim.Allow(ctx, "10.0.0.1")
	assert.False(t, dec.Allowed)

	dec, _ = lim.Allow(ctx, "10.0.0.2")
	assert.True(t, dec.Allowed, "a different key has its own budget")
}

func TestMemoryLimiter_RetryAfterCountsDownToOldest(t *testing.T) {
	lim, clock := newFakeLimiter(1, 10*time.Second)
	ctx := context.Background()

	dec, _ := lim.Allow(ctx, GlobalKey)
	require.True(t, dec.Allowed)

	clock.Advance(4 * time.Second)
	dec, _ = lim.Allow(ctx, GlobalKey)
	require.False(t, dec.Allowed)
	assert.Equal(t, 6*time.Second, dec.RetryAfter)
}

func TestMemoryLimiter_CleanupDropsIdleKeys(t *testing.T) {
	lim, clock := newFakeLimiter(1, time.Second)
	ctx := context.Background()

	_, err := lim.Allow(ctx, "idle")
	require.NoError(t, err)

	clock.Advance(2 * time.Second)
	lim.Cleanup()

	lim.mu.Lock()
	_, ok := lim.entries["idle"]
	lim.mu.Unlock()
	assert.False(t, ok, "idle key should be swept")
}
