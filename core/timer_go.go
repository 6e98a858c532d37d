//go:build !tinygo

package core

import "time"

// spinThresholdUS is the delay below which the host clock busy-waits instead
// of sleeping. time.Sleep overshoots short waits by tens of microseconds.
const spinThresholdUS = 200

// SystemClock is the Clock backed by the host monotonic clock
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

// DelayMicros sleeps for most of the wait and spins for the tail
func (c *SystemClock) DelayMicros(us uint32) {
	deadline := time.Now().Add(time.Duration(us) * time.Microsecond)
	if us > spinThresholdUS {
		time.Sleep(time.Duration(us-spinThresholdUS) * time.Microsecond)
	}
	for time.Now().Before(deadline) {
		// Busy wait
	}
}
