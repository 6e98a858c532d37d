package core

// Clock is the monotonic microsecond time source plus the busy-wait delay
// primitive used for pulse widths and tick compensation.
type Clock interface {
	// Micros returns a free-running 32-bit microsecond counter.
	// The counter wraps; use ElapsedUS to compute differences.
	Micros() uint32

	// DelayMicros blocks the calling thread for us microseconds.
	DelayMicros(us uint32)
}

// ElapsedUS returns the time between two counter readings.
// Unsigned subtraction keeps the result correct across one wrap.
func ElapsedUS(start, now uint32) uint32 {
	return now - start
}

// RemainingUS returns how long to wait to fill a period when elapsed time has
// already been spent, and whether the period was overrun. The subtraction
// saturates at zero.
func RemainingUS(period, elapsed uint32) (uint32, bool) {
	if elapsed >= period {
		return 0, true
	}
	return period - elapsed, false
}

// ManualClock is a Clock whose time only moves when told to. DelayMicros
// advances the time instead of blocking, which makes timing deterministic
// for tests and step-by-step simulation.
type ManualClock struct {
	now uint32

	// Delays records every requested delay in order
	Delays []uint32

	// OnDelay, if set, is called after each delay with the requested length
	OnDelay func(us uint32)
}

// NewManualClock creates a ManualClock starting at the given counter value
func NewManualClock(start uint32) *ManualClock {
	return &ManualClock{now: start}
}

// Micros returns the current counter value
func (c *ManualClock) Micros() uint32 {
	return c.now
}

// DelayMicros advances the counter by us
func (c *ManualClock) DelayMicros(us uint32) {
	c.Delays = append(c.Delays, us)
	c.now += us
	if c.OnDelay != nil {
		c.OnDelay(us)
	}
}

// Advance moves time forward without recording a delay. Used to simulate
// work done between two readings.
func (c *ManualClock) Advance(us uint32) {
	c.now += us
}

// TotalDelay returns the sum of all recorded delays
func (c *ManualClock) TotalDelay() uint64 {
	var total uint64
	for _, d := range c.Delays {
		total += uint64(d)
	}
	return total
}
