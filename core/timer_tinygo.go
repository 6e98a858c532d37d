//go:build tinygo

package core

import "time"

// SystemClock is the Clock backed by the TinyGo runtime timer
type SystemClock struct {
	epoch time.Time
}

// NewSystemClock creates a SystemClock whose counter starts at zero
func NewSystemClock() *SystemClock {
	return &SystemClock{epoch: time.Now()}
}

// Micros returns microseconds since the clock was created, truncated to 32 bits
func (c *SystemClock) Micros() uint32 {
	return uint32(time.Since(c.epoch) / time.Microsecond)
}

// DelayMicros busy-waits for us microseconds.
// Never yields to the scheduler, so pulse widths stay tight.
func (c *SystemClock) DelayMicros(us uint32) {
	start := c.Micros()
	for c.Micros()-start < us {
		// Busy wait
	}
}
