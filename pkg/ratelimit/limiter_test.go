package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func TestTokenBucket(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	tb := NewTokenBucket(3, time.Minute)
	tb.now = clock.Now
	tb.lastRefill = clock.Now()

	for i := 0; i < 3; i++ {
		assert.True(t, tb.Allow(), "token %d", i+1)
	}
	assert.False(t, tb.Allow(), "bucket exhausted")

	clock.Advance(30 * time.Second)
	assert.False(t, tb.Allow(), "not refilled before the period")

	clock.Advance(30 * time.Second)
	assert.True(t, tb.Allow(), "refilled after the period")

	tb.tokens = 0
	tb.Reset()
	assert.Equal(t, tb.capacity, tb.tokens)
}

func TestTokenBucketWaitCancelled(t *testing.T) {
	tb := NewTokenBucket(1, time.Hour)
	require.True(t, tb.Allow())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := tb.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestTokenBucketWaitAvailable(t *testing.T) {
	tb := NewTokenBucket(2, time.Hour)
	assert.NoError(t, tb.Wait(context.Background()))
	assert.NoError(t, tb.Wait(context.Background()))
}

func TestNewLimiter(t *testing.T) {
	assert.IsType(t, Unlimited{}, NewLimiter(0, time.Minute))
	assert.IsType(t, &TokenBucket{}, NewLimiter(15, 15*time.Minute))

	l := NewLimiter(0, 0)
	for i := 0; i < 1000; i++ {
		require.True(t, l.Allow())
	}
}

func TestCooldownCountsWaits(t *testing.T) {
	c := NewCooldown(time.Millisecond, 2)
	assert.False(t, c.Exceeded())

	require.NoError(t, c.Wait(context.Background()))
	assert.Equal(t, 1, c.Waits())
	assert.False(t, c.Exceeded())

	require.NoError(t, c.Wait(context.Background()))
	assert.True(t, c.Exceeded())

	c.Reset()
	assert.Equal(t, 0, c.Waits())
	assert.False(t, c.Exceeded())
}

func TestCooldownUnbounded(t *testing.T) {
	c := NewCooldown(0, 0)
	for i := 0; i < 100; i++ {
		require.NoError(t, c.Wait(context.Background()))
	}
	assert.False(t, c.Exceeded())
	assert.Equal(t, 100, c.Waits())
}

func TestCooldownCancelled(t *testing.T) {
	c := NewCooldown(time.Hour, 0)
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	err := c.Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}
