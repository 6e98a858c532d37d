//go:build rp2040

package main

// Frame transmitter on a PIO state machine. The CPU only writes one FIFO
// word per frame; the state machine clocks the bits and the latch pulse.

import (
	"errors"
	"machine"

	rp2pio "github.com/tinygo-org/pio/rp2-pio"

	"lauflicht/shiftreg"
)

// maxPIODelay is the largest delay field without side-set bits
const maxPIODelay = 31

// buildShiftOutProgram creates the frame program.
// SET pins: base = shift clock, base+1 = storage clock. OUT pin: data.
// Every phase lasts delay+1 state machine cycles.
func buildShiftOutProgram(delay uint8) []uint16 {
	asm := rp2pio.AssemblerV0{SidesetBits: 0}
	return []uint16{
		// .wrap_target
		asm.Pull(false, true).Encode(),       // 0: pull block
		asm.Set(rp2pio.SetDestX, 7).Encode(), // 1: set x, 7 (8 bits)
		// bit_loop:
		asm.Out(rp2pio.OutDestPins, 1).Delay(delay).Encode(), // 2: out pins, 1 [d] (data setup)
		asm.Set(rp2pio.SetDestPins, 1).Delay(delay).Encode(), // 3: set pins, 1 [d] (shift clock high)
		asm.Set(rp2pio.SetDestPins, 0).Encode(),              // 4: set pins, 0
		asm.Jmp(2, rp2pio.JmpXNZeroDec).Encode(),             // 5: jmp x--, bit_loop
		asm.Set(rp2pio.SetDestPins, 2).Delay(delay).Encode(), // 6: set pins, 2 [d] (storage clock high)
		asm.Set(rp2pio.SetDestPins, 0).Delay(delay).Encode(), // 7: set pins, 0 [d]
		// .wrap
	}
}

const shiftOutPIOOrigin = 0 // Load at offset 0 for correct jump addresses

// PIOTransmitter implements core.Transmitter with a PIO state machine
type PIOTransmitter struct {
	pio *rp2pio.PIO
	sm  rp2pio.StateMachine
}

// NewPIOTransmitter loads the frame program on PIO0 state machine 0.
// The storage clock must be the GPIO right after the shift clock.
func NewPIOTransmitter(pins shiftreg.Pins, halfPeriodUS uint32) (*PIOTransmitter, error) {
	if pins.StorageClock != pins.ShiftClock+1 {
		return nil, errors.New("PIO backend needs storage clock = shift clock + 1")
	}
	if halfPeriodUS == 0 || halfPeriodUS > maxPIODelay+1 {
		return nil, errors.New("PIO backend supports half periods of 1-32us")
	}

	t := &PIOTransmitter{
		pio: rp2pio.PIO0,
		sm:  rp2pio.PIO0.StateMachine(0),
	}
	t.sm.TryClaim()

	program := buildShiftOutProgram(uint8(halfPeriodUS - 1))
	offset, err := t.pio.AddProgram(program, shiftOutPIOOrigin)
	if err != nil {
		return nil, err
	}

	dataPin := machine.Pin(pins.Data)
	clockPin := machine.Pin(pins.ShiftClock)
	latchPin := machine.Pin(pins.StorageClock)
	for _, p := range []machine.Pin{dataPin, clockPin, latchPin} {
		p.Configure(machine.PinConfig{Mode: t.pio.PinMode()})
	}

	cfg := rp2pio.DefaultStateMachineConfig()
	cfg.SetOutPins(dataPin, 1)
	cfg.SetSetPins(clockPin, 2)

	// Shift left so bit 31 goes out first, explicit PULL
	cfg.SetOutShift(false, false, 32)
	cfg.SetWrap(offset+uint8(len(program))-1, offset)

	// One state machine cycle per microsecond
	cfg.SetClkDivIntFrac(uint16(machine.CPUFrequency()/1000000), 0)

	t.sm.Init(offset, cfg)

	// Pin directions must be set after Init
	t.sm.SetPindirsConsecutive(dataPin, 1, true)
	t.sm.SetPindirsConsecutive(clockPin, 2, true)
	t.sm.SetPinsConsecutive(dataPin, 1, false)
	t.sm.SetPinsConsecutive(clockPin, 2, false)

	t.sm.SetEnabled(true)
	return t, nil
}

// Transmit queues one frame, MSB first like the bit-banged driver
func (t *PIOTransmitter) Transmit(pattern uint8) error {
	for t.sm.IsTxFIFOFull() {
		// Busy wait - the FIFO holds four frames
	}
	t.sm.TxPut(uint32(pattern) << 24)
	return nil
}
