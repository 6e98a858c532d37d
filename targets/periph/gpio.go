//go:build linux && !tinygo

package main

import (
	"fmt"
	"sync"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"

	"lauflicht/core"
)

// PeriphGPIODriver implements core.GPIODriver on Linux GPIO through periph.io.
// Pin numbers are BCM GPIO numbers.
type PeriphGPIODriver struct {
	mu             sync.Mutex
	configuredPins map[core.GPIOPin]gpio.PinIO
}

// NewPeriphGPIODriver creates a driver. periph host drivers must be loaded
// with host.Init first.
func NewPeriphGPIODriver() *PeriphGPIODriver {
	return &PeriphGPIODriver{
		configuredPins: make(map[core.GPIOPin]gpio.PinIO),
	}
}

// ConfigureOutput configures a pin as a digital output, initially low
func (d *PeriphGPIODriver) ConfigureOutput(pin core.GPIOPin) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.configuredPins[pin]; exists {
		return nil
	}

	p := gpioreg.ByName(fmt.Sprintf("GPIO%d", pin))
	if p == nil {
		return fmt.Errorf("gpio %d not found", pin)
	}
	if err := p.Out(gpio.Low); err != nil {
		return fmt.Errorf("gpio %d: %w", pin, err)
	}
	d.configuredPins[pin] = p
	return nil
}

// SetPin sets the pin to high (true) or low (false)
func (d *PeriphGPIODriver) SetPin(pin core.GPIOPin, value bool) error {
	d.mu.Lock()
	p, exists := d.configuredPins[pin]
	d.mu.Unlock()
	if !exists {
		return fmt.Errorf("gpio %d not configured", pin)
	}

	return p.Out(gpio.Level(value))
}

// GetPin reads the current pin state
func (d *PeriphGPIODriver) GetPin(pin core.GPIOPin) (bool, error) {
	d.mu.Lock()
	p, exists := d.configuredPins[pin]
	d.mu.Unlock()
	if !exists {
		return false, fmt.Errorf("gpio %d not configured", pin)
	}

	return bool(p.Read()), nil
}

// Halt releases all configured pins
func (d *PeriphGPIODriver) Halt() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for pin, p := range d.configuredPins {
		_ = p.Halt()
		delete(d.configuredPins, pin)
	}
}
