//go:build rp2040

package main

import (
	"runtime/volatile"
	"unsafe"
)

// RP2040 Timer peripheral memory map
const (
	timerBase     = 0x40054000
	timerTIMERAWL = timerBase + 0x28 // Raw timer low word
)

var timerRAWL = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTIMERAWL)))

// HardwareClock implements core.Clock on the RP2040 64-bit microsecond timer.
// The timer runs at 1MHz from reset; no setup is needed.
type HardwareClock struct{}

// Micros returns the low 32 bits of the microsecond counter
func (HardwareClock) Micros() uint32 {
	return timerRAWL.Get()
}

// DelayMicros busy-waits on the hardware counter
func (c HardwareClock) DelayMicros(us uint32) {
	start := timerRAWL.Get()
	for timerRAWL.Get()-start < us {
		// Busy wait
	}
}

