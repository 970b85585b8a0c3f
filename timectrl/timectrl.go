package timectrl

import (
	"sync"
	"time"
)

// Clock is an interface for accessing wall-clock time. The acquisition loop
// depends on this abstraction rather than the time package directly,
// enabling testability without real sleeps.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
	// Sleep blocks for the given duration.
	Sleep(d time.Duration)
}

// SystemClock is the real wall clock.
type SystemClock struct{}

// Now returns time.Now. Implements Clock.
func (SystemClock) Now() time.Time { return time.Now() }

// Sleep calls time.Sleep. Implements Clock.
func (SystemClock) Sleep(d time.Duration) { time.Sleep(d) }

// ManualClock is a test clock whose time only advances when told to.
// Sleep advances the clock by the slept duration and records it, so a loop
// driven by a ManualClock reaches its deadline without real waiting.
type ManualClock struct {
	mu    sync.Mutex
	now   time.Time
	slept []time.Duration
}

// NewManualClock constructs a manual clock starting at the given instant.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current manual time. Implements Clock.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Sleep advances the clock by d and records the request. Implements Clock.
func (c *ManualClock) Sleep(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	c.slept = append(c.slept, d)
}

// Advance moves the clock forward without recording a sleep.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Slept returns a copy of all sleep requests seen so far.
func (c *ManualClock) Slept() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]time.Duration, len(c.slept))
	copy(out, c.slept)
	return out
}
