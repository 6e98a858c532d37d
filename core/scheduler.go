package core

import (
	"sync"
	"sync/atomic"
)

// Stepper produces the next output pattern, once per tick
type Stepper interface {
	Advance() uint8
}

// Transmitter pushes one pattern to the output stage
type Transmitter interface {
	Transmit(pattern uint8) error
}

// TickStats summarizes loop activity since creation
type TickStats struct {
	Ticks       uint32 // Completed ticks
	Overruns    uint32 // Ticks whose work took the whole period or longer
	PortErrors  uint32 // Failed transmissions
	LastPattern uint8  // Pattern sent on the most recent tick
	LastWorkUS  uint32 // Work time of the most recent tick
	MaxWorkUS   uint32 // Longest work time seen
}

// TickLoop runs advance and transmit at a fixed rate, compensating the
// delay for the time the work itself took.
type TickLoop struct {
	stepper  Stepper
	tx       Transmitter
	clock    Clock
	periodUS uint32

	stats TickStats

	mu      sync.Mutex
	stopped atomic.Bool
	done    chan struct{} // Closed when Run returns; nil until Run starts
}

// NewTickLoop creates a tick loop with the given period in microseconds
func NewTickLoop(stepper Stepper, tx Transmitter, clock Clock, periodUS uint32) *TickLoop {
	return &TickLoop{
		stepper:  stepper,
		tx:       tx,
		clock:    clock,
		periodUS: periodUS,
	}
}

// PeriodUS returns the configured tick period
func (l *TickLoop) PeriodUS() uint32 {
	return l.periodUS
}

// Stats returns a copy of the loop counters
func (l *TickLoop) Stats() TickStats {
	return l.stats
}

// Tick runs exactly one tick: work, then the compensating delay.
// An overrun skips the delay so the next tick starts immediately.
func (l *TickLoop) Tick() {
	start := l.clock.Micros()

	pattern := l.stepper.Advance()
	if err := l.tx.Transmit(pattern); err != nil {
		// Nothing to recover; the next tick sends a fresh frame
		l.stats.PortErrors++
		RecordTiming(EvtPortError, l.stats.Ticks, start, uint32(pattern), 0)
		DebugAsync("[TICK] transmit failed: " + err.Error())
	}

	elapsed := ElapsedUS(start, l.clock.Micros())
	l.stats.Ticks++
	l.stats.LastPattern = pattern
	l.stats.LastWorkUS = elapsed
	if elapsed > l.stats.MaxWorkUS {
		l.stats.MaxWorkUS = elapsed
	}

	remaining, overrun := RemainingUS(l.periodUS, elapsed)
	if overrun {
		l.stats.Overruns++
		RecordTiming(EvtTickOverrun, l.stats.Ticks, start, elapsed, l.periodUS)
		DebugAsync("[TICK] overrun: work=" + utoa(elapsed) + "us period=" + utoa(l.periodUS) + "us")
		return
	}
	l.clock.DelayMicros(remaining)
}

// RunTicks runs n ticks and returns
func (l *TickLoop) RunTicks(n int) {
	for i := 0; i < n; i++ {
		l.Tick()
	}
}

// Run ticks until Stop is called. On the MCU nothing calls Stop, so it
// runs forever. Only one Run may be active.
func (l *TickLoop) Run() {
	l.mu.Lock()
	if l.done != nil {
		l.mu.Unlock()
		return
	}
	done := make(chan struct{})
	l.done = done
	l.mu.Unlock()
	defer close(done)

	for !l.stopped.Load() {
		l.Tick()
	}
}

// Stop makes Run return after the tick in progress and waits for it.
// After Stop returns the loop no longer touches the transmitter, so the
// caller may drive the outputs and read Stats and the timing ring.
func (l *TickLoop) Stop() {
	l.stopped.Store(true)

	l.mu.Lock()
	done := l.done
	l.mu.Unlock()
	if done != nil {
		<-done
	}
}
