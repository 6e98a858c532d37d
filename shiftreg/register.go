package shiftreg

import (
	"errors"
	"sync"

	"lauflicht/core"
)

// Register simulates a 74HC595 wired to three GPIO lines. It implements
// core.GPIODriver, so a Driver can run against it unchanged.
//
// On a rising edge of the shift clock the data line is shifted into bit 0 of
// the chain and every other bit moves up by one (QA towards QH). On a rising
// edge of the storage clock the chain is copied to the outputs.
type Register struct {
	mu sync.Mutex

	pins       Pins
	configured map[core.GPIOPin]bool
	levels     map[core.GPIOPin]bool

	chain   uint8
	outputs uint8

	shiftPulses   uint32
	storagePulses uint32
	frames        uint32
}

// NewRegister creates a simulated register on the given lines
func NewRegister(pins Pins) *Register {
	return &Register{
		pins:       pins,
		configured: make(map[core.GPIOPin]bool),
		levels:     make(map[core.GPIOPin]bool),
	}
}

// ConfigureOutput marks a pin as output
func (r *Register) ConfigureOutput(pin core.GPIOPin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.configured[pin] = true
	return nil
}

// SetPin drives a line and reacts to clock edges
func (r *Register) SetPin(pin core.GPIOPin, value bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.configured[pin] {
		return errors.New("pin " + core.Utoa(uint32(pin)) + " is not configured as output")
	}

	rising := value && !r.levels[pin]
	r.levels[pin] = value
	if !rising {
		return nil
	}

	switch pin {
	case r.pins.ShiftClock:
		r.chain <<= 1
		if r.levels[r.pins.Data] {
			r.chain |= 1
		}
		r.shiftPulses++
	case r.pins.StorageClock:
		r.outputs = r.chain
		r.storagePulses++
		r.frames++
	}
	return nil
}

// GetPin reads back a line level
func (r *Register) GetPin(pin core.GPIOPin) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.levels[pin], nil
}

// Outputs returns the latched output stage, bit i = output Q(i)
func (r *Register) Outputs() uint8 {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.outputs
}

// Chain returns the internal shift chain, not yet latched
func (r *Register) Chain() uint8 {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.chain
}

// PulseCounts returns the number of rising edges seen on both clocks
func (r *Register) PulseCounts() (shift, storage uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.shiftPulses, r.storagePulses
}

// Frames returns the number of latched frames
func (r *Register) Frames() uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.frames
}

// ResetCounts zeroes the pulse counters, keeping register contents
func (r *Register) ResetCounts() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.shiftPulses = 0
	r.storagePulses = 0
	r.frames = 0
}
