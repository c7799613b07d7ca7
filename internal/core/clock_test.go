package core

import (
	"testing"
	"time"
)

func TestFrameClock(t *testing.T) {
	var c FrameClock
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	if dt := c.Delta(start); dt != 0 {
		t.Errorf("first Delta = %f, expected 0", dt)
	}
	if dt := c.Delta(start.Add(16 * time.Millisecond)); dt != 0.016 {
		t.Errorf("Delta = %f, expected 0.016", dt)
	}

	// Going backwards never produces negative time.
	if dt := c.Delta(start); dt != 0 {
		t.Errorf("backwards Delta = %f, expected 0", dt)
	}

	// A long pause followed by Reset must not catch up.
	c.Reset()
	if dt := c.Delta(start.Add(10 * time.Minute)); dt != 0 {
		t.Errorf("Delta after Reset = %f, expected 0", dt)
	}
}
