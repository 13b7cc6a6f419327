package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Cooldown is the fixed pause taken after the API answers 429.
// It counts consecutive pauses so that a caller can give up after MaxWaits.
type Cooldown struct {
	Duration time.Duration
	// MaxWaits bounds consecutive waits, 0 means unlimited
	MaxWaits int

	mu    sync.Mutex
	waits int
}

// NewCooldown creates a cooldown of d, bounded by maxWaits consecutive waits
func NewCooldown(d time.Duration, maxWaits int) *Cooldown {
	return &Cooldown{Duration: d, MaxWaits: maxWaits}
}

// Exceeded reports whether another wait would go over MaxWaits
func (c *Cooldown) Exceeded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.MaxWaits > 0 && c.waits >= c.MaxWaits
}

// Wait counts one pause and sleeps for Duration, returning early with ctx.Err() if ctx is done
func (c *Cooldown) Wait(ctx context.Context) error {
	c.mu.Lock()
	c.waits++
	c.mu.Unlock()

	if c.Duration <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(c.Duration)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Waits returns the number of consecutive waits since the last Reset
func (c *Cooldown) Waits() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.waits
}

// Reset clears the consecutive wait counter, called after a successful page
func (c *Cooldown) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.waits = 0
}
