//go:build rp2040

package main

import (
	"machine"

	"tinygo.org/x/drivers/shiftregister"

	"lauflicht/shiftreg"
)

// DriverTransmitter implements core.Transmitter with the TinyGo 74HC595
// driver. Pulse timing and bit order follow the driver.
type DriverTransmitter struct {
	dev *shiftregister.Device
}

// NewDriverTransmitter configures the three lines for the stock driver
func NewDriverTransmitter(pins shiftreg.Pins) *DriverTransmitter {
	dev := shiftregister.New(
		shiftregister.EIGHT_BITS,
		machine.Pin(pins.StorageClock),
		machine.Pin(pins.ShiftClock),
		machine.Pin(pins.Data),
	)
	dev.Configure()
	return &DriverTransmitter{dev: dev}
}

// Transmit writes the pattern to all eight outputs at once
func (t *DriverTransmitter) Transmit(pattern uint8) error {
	t.dev.WriteMask(uint32(pattern))
	return nil
}
