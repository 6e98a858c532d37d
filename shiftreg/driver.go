// Package shiftreg drives a 74HC595-style serial-in/parallel-out shift
// register over three GPIO lines by bit-banging.
//
// A frame is eight data bits, most significant bit first. Each bit is put on
// the data line and clocked in with a pulse on the shift clock; after the
// eighth bit one pulse on the storage clock copies the shift chain to the
// output stage, so the outputs change in one step.
package shiftreg

import (
	"errors"
	"sync"

	"lauflicht/core"
)

// FrameBits is the number of bits shifted per frame
const FrameBits = 8

// Pins names the three bus lines
type Pins struct {
	Data         core.GPIOPin // Serial data (74HC595 SER)
	ShiftClock   core.GPIOPin // Shift register clock (SRCLK)
	StorageClock core.GPIOPin // Storage register clock (RCLK)
}

// Validate checks that the three lines are distinct
func (p Pins) Validate() error {
	if p.Data == p.ShiftClock || p.Data == p.StorageClock || p.ShiftClock == p.StorageClock {
		return errors.New("shift register pins must be distinct")
	}
	return nil
}

// Driver transmits frames to the register.
type Driver struct {
	mu sync.Mutex

	port         core.GPIODriver
	clock        core.Clock
	pins         Pins
	halfPeriodUS uint32
}

// NewDriver creates a driver. halfPeriodUS is the high time of every clock
// pulse and the time the clock stays low before the next edge is allowed.
func NewDriver(port core.GPIODriver, clock core.Clock, pins Pins, halfPeriodUS uint32) *Driver {
	return &Driver{
		port:         port,
		clock:        clock,
		pins:         pins,
		halfPeriodUS: halfPeriodUS,
	}
}

// Init configures the three lines as outputs and drives them low.
// Both clocks trigger on the rising edge, so they must idle low.
func (d *Driver) Init() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, pin := range []core.GPIOPin{d.pins.Data, d.pins.ShiftClock, d.pins.StorageClock} {
		if err := d.port.ConfigureOutput(pin); err != nil {
			return err
		}
		if err := d.port.SetPin(pin, false); err != nil {
			return err
		}
	}
	return nil
}

// Transmit shifts pattern out MSB first and latches it.
//
// Exactly FrameBits shift pulses and one storage pulse are issued regardless
// of the value. The data line is left at the last bit sent (bit 0).
func (d *Driver) Transmit(pattern uint8) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for n := FrameBits - 1; n >= 0; n-- {
		if err := d.port.SetPin(d.pins.Data, pattern&(1<<n) != 0); err != nil {
			return err
		}
		// Data setup time before the rising edge
		d.clock.DelayMicros(d.halfPeriodUS)
		if err := core.PulsePin(d.port, d.clock, d.pins.ShiftClock, d.halfPeriodUS); err != nil {
			return err
		}
	}

	if err := core.PulsePin(d.port, d.clock, d.pins.StorageClock, d.halfPeriodUS); err != nil {
		return err
	}
	// Keep the latch low for a full half-period before the next frame
	d.clock.DelayMicros(d.halfPeriodUS)
	return nil
}

// FrameDurationUS returns the busy delay one Transmit spends:
// two half-periods per shift pulse plus two for the latch.
func (d *Driver) FrameDurationUS() uint32 {
	return (FrameBits*2 + 2) * d.halfPeriodUS
}
