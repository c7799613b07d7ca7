package core

import "time"

// FrameClock turns host timestamps into per-frame elapsed seconds.
// After Reset the next Delta returns zero, so time spent paused or waiting on
// a revive is discarded instead of being replayed as one huge step.
type FrameClock struct {
	last    time.Time
	running bool
}

// Reset forgets the previous timestamp.
func (c *FrameClock) Reset() {
	c.running = false
	c.last = time.Time{}
}

// Delta returns seconds elapsed since the previous call.
// Timestamps that go backwards yield zero.
func (c *FrameClock) Delta(now time.Time) float64 {
	if !c.running {
		c.running = true
		c.last = now
		return 0
	}
	dt := now.Sub(c.last).Seconds()
	c.last = now
	if dt < 0 {
		return 0
	}
	return dt
}
