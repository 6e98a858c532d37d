//go:build rp2040

package main

import (
	"machine"
	"time"

	"lauflicht/config"
	"lauflicht/controller"
	"lauflicht/core"
)

func main() {
	cfg := config.Default()

	// Diagnostics first: UART0 shares GPIO0/GPIO1 with the bus
	InitDiagnostics(cfg.DiagnosticBaud)

	ctrl, err := controller.New(cfg)
	if err != nil {
		halt(haltConfig, "config: " + err.Error())
	}

	ctrl.ReportTiming()
	EndDiagnostics()

	clock := HardwareClock{}
	core.SetGPIODriver(NewRPGPIODriver())

	switch GetMode().Backend {
	case BackendPIO:
		tx, pioErr := NewPIOTransmitter(ctrl.Config().Pins, ctrl.Timing().HalfPeriodUS)
		if pioErr != nil {
			halt(haltPIO, "pio: " + pioErr.Error())
		}
		err = ctrl.InitializeWithTransmitter(tx, clock)
	case BackendDriver:
		err = ctrl.InitializeWithTransmitter(NewDriverTransmitter(ctrl.Config().Pins), clock)
	default:
		err = ctrl.Initialize(core.MustGPIO(), clock)
	}
	if err != nil {
		halt(haltInit, "init: " + err.Error())
	}

	ctrl.Run()
}

// Blink counts on the board LED for each fatal startup stage
const (
	haltConfig = 1
	haltPIO    = 2
	haltInit   = 3
)

// halt reports a fatal startup error and never returns. The UART line only
// reaches the console for config errors; later the bus owns the UART pins,
// so the LED blinks the stage code instead and the chaser stays dark.
func halt(code int, msg string) {
	core.DebugPrintln("FATAL " + msg)

	led := machine.LED
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})
	for {
		for i := 0; i < code; i++ {
			led.High()
			time.Sleep(150 * time.Millisecond)
			led.Low()
			time.Sleep(150 * time.Millisecond)
		}
		time.Sleep(time.Second) // Gap between codes
	}
}
