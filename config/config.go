// Package config holds the compile-time configuration of the chaser and the
// timing values derived from it.
package config

import (
	"errors"

	"lauflicht/core"
	"lauflicht/shiftreg"
)

// Compile-time defaults
const (
	LightUnits       = 6
	TickFrequencyHz  = 1000
	OutputFlanksHz   = 100000
	MicroDecimal     = 1000000
	DiagnosticBaud   = 9600
	SerialPos        = 0
	ShiftClockPos    = 1
	StorageClockPos  = 2
	maxFrequencyHz   = MicroDecimal // periods below 1us cannot be expressed
	frequencyTenthsN = 10 * MicroDecimal
)

// Config describes one chaser installation
type Config struct {
	LightUnits      int
	TickFrequencyHz uint32
	OutputFlanksHz  uint32
	DiagnosticBaud  uint32
	Pins            shiftreg.Pins
}

// Timing holds the periods derived from the configured frequencies.
// Computed once at startup and never recomputed.
type Timing struct {
	TickPeriodUS   uint32
	HalfPeriodUS   uint32
	TickHzTenths   uint32 // Actual tick frequency after integer truncation, in 0.1 Hz
	OutputHzTenths uint32 // Actual output flank frequency, in 0.1 Hz
}

// Default returns the reference configuration
func Default() *Config {
	return &Config{
		LightUnits:      LightUnits,
		TickFrequencyHz: TickFrequencyHz,
		OutputFlanksHz:  OutputFlanksHz,
		DiagnosticBaud:  DiagnosticBaud,
		Pins: shiftreg.Pins{
			Data:         SerialPos,
			ShiftClock:   ShiftClockPos,
			StorageClock: StorageClockPos,
		},
	}
}

// applyDefaults fills in zero values with the reference configuration
func applyDefaults(cfg *Config) {
	if cfg.LightUnits == 0 {
		cfg.LightUnits = LightUnits
	}
	if cfg.TickFrequencyHz == 0 {
		cfg.TickFrequencyHz = TickFrequencyHz
	}
	if cfg.OutputFlanksHz == 0 {
		cfg.OutputFlanksHz = OutputFlanksHz
	}
	if cfg.DiagnosticBaud == 0 {
		cfg.DiagnosticBaud = DiagnosticBaud
	}
	if cfg.Pins == (shiftreg.Pins{}) {
		cfg.Pins = Default().Pins
	}
}

// Validate checks the configuration and fills missing values
func (c *Config) Validate() error {
	applyDefaults(c)

	if c.LightUnits < 2 {
		return errors.New("light units must be at least 2")
	}
	if c.LightUnits > 8 {
		return errors.New("light units must fit one 8-bit frame")
	}
	if c.TickFrequencyHz > maxFrequencyHz {
		return errors.New("tick frequency above 1 MHz")
	}
	if c.OutputFlanksHz > maxFrequencyHz {
		return errors.New("output flank frequency above 1 MHz")
	}
	return c.Pins.Validate()
}

// periodUS truncates like the hardware timer does, but never below one tick
// of it. Validate rejects such frequencies; this keeps Timing total.
func periodUS(hz uint32) uint32 {
	if p := MicroDecimal / hz; p > 0 {
		return p
	}
	return 1
}

// Timing derives the microsecond periods
func (c *Config) Timing() Timing {
	applyDefaults(c)
	t := Timing{
		TickPeriodUS: periodUS(c.TickFrequencyHz),
		HalfPeriodUS: periodUS(c.OutputFlanksHz),
	}
	t.TickHzTenths = frequencyTenthsN / t.TickPeriodUS
	t.OutputHzTenths = frequencyTenthsN / t.HalfPeriodUS
	return t
}

// Diagnostics returns the startup banner lines reporting the real
// frequencies, rounded down to one decimal
func (t Timing) Diagnostics() []string {
	return []string{
		"Starting tick clock with " + core.FormatTenths(t.TickHzTenths) + " Hz.",
		"Starting output clock with " + core.FormatTenths(t.OutputHzTenths) + " Hz.",
	}
}
