// Package controller wires the sequencer, the shift register driver and the
// tick loop together for a target.
package controller

import (
	"errors"

	"lauflicht/chaser"
	"lauflicht/config"
	"lauflicht/core"
	"lauflicht/shiftreg"
)

// Controller coordinates all chaser components
type Controller struct {
	config *config.Config
	timing config.Timing

	sequencer *chaser.Sequencer
	tx        core.Transmitter
	clock     core.Clock
	loop      *core.TickLoop

	initialized bool
}

// New creates a controller for a validated copy of cfg
func New(cfg *config.Config) (*Controller, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	c := *cfg
	if err := c.Validate(); err != nil {
		return nil, err
	}

	seq, err := chaser.New(c.LightUnits)
	if err != nil {
		return nil, err
	}

	ctrl := &Controller{
		config:    &c,
		timing:    c.Timing(),
		sequencer: seq,
	}
	seq.OnReverse = ctrl.recordReversal
	return ctrl, nil
}

// recordReversal logs a turnaround in the timing ring. Only while debugging:
// reversals happen twice per sweep and would push overruns out of the ring.
func (c *Controller) recordReversal(position int, dir chaser.Direction) {
	if !core.IsDebugEnabled() || c.loop == nil {
		return
	}
	// Advance runs before the tick is counted
	tick := c.loop.Stats().Ticks + 1
	core.RecordTiming(core.EvtReversal, tick, c.clock.Micros(), uint32(position), uint32(dir))
}

// ReportTiming prints the real tick and output clock frequencies
func (c *Controller) ReportTiming() {
	for _, line := range c.timing.Diagnostics() {
		core.DebugPrintln(line)
	}
}

// Initialize sets up the bit-banged shift register on gpioDriver and resets
// the bus lines low.
func (c *Controller) Initialize(gpioDriver core.GPIODriver, clock core.Clock) error {
	if c.initialized {
		return errors.New("already initialized")
	}

	driver := shiftreg.NewDriver(gpioDriver, clock, c.config.Pins, c.timing.HalfPeriodUS)
	if err := driver.Init(); err != nil {
		return err
	}
	return c.InitializeWithTransmitter(driver, clock)
}

// InitializeWithTransmitter uses an alternative frame transmitter, such as a
// hardware-timed one, instead of the bit-banged driver.
func (c *Controller) InitializeWithTransmitter(tx core.Transmitter, clock core.Clock) error {
	if c.initialized {
		return errors.New("already initialized")
	}

	c.tx = tx
	c.clock = clock
	c.loop = core.NewTickLoop(c.sequencer, tx, clock, c.timing.TickPeriodUS)
	c.initialized = true
	return nil
}

// Run starts the tick loop. It returns only after Stop.
func (c *Controller) Run() {
	c.mustInitialized()
	c.loop.Run()
}

// Tick runs a single tick
func (c *Controller) Tick() {
	c.mustInitialized()
	c.loop.Tick()
}

// Stop ends Run and waits for the tick in progress to finish
func (c *Controller) Stop() {
	c.mustInitialized()
	c.loop.Stop()
}

// Blank turns all lights off. The next tick lights them again, so stop the
// loop first; Shutdown does both.
func (c *Controller) Blank() error {
	c.mustInitialized()
	return c.tx.Transmit(0)
}

// Shutdown stops the loop and leaves the outputs dark
func (c *Controller) Shutdown() error {
	c.Stop()
	return c.Blank()
}

// Config returns the validated configuration
func (c *Controller) Config() *config.Config {
	return c.config
}

// Timing returns the derived periods
func (c *Controller) Timing() config.Timing {
	return c.timing
}

// Sequencer returns the chaser state owner
func (c *Controller) Sequencer() *chaser.Sequencer {
	return c.sequencer
}

// Stats returns the tick loop counters
func (c *Controller) Stats() core.TickStats {
	c.mustInitialized()
	return c.loop.Stats()
}

func (c *Controller) mustInitialized() {
	if !c.initialized {
		panic("controller not initialized")
	}
}
