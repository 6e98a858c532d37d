//go:build linux && !tinygo

// Command periph runs the chaser on a Raspberry Pi (or any board periph.io
// supports), bit-banging a 74HC595 from three BCM GPIOs.
package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"periph.io/x/host/v3"

	"lauflicht/config"
	"lauflicht/controller"
	"lauflicht/core"
	"lauflicht/shiftreg"
)

// Bus lines on the Pi header (BCM numbering). GPIO0/1 are reserved for the
// HAT EEPROM, so the firmware defaults do not apply here.
const (
	dataGPIO    = 17 // header pin 11
	clockGPIO   = 27 // header pin 13
	storageGPIO = 22 // header pin 15
)

var verbose = flag.Bool("verbose", false, "Print tick overruns as they happen")

func main() {
	flag.Parse()

	logger := log.New(os.Stderr, "lauflicht: ", log.LstdFlags)
	core.SetDebugWriter(func(s string) { logger.Println(s) })
	core.SetDebugEnabled(true)

	if _, err := host.Init(); err != nil {
		logger.Fatalf("Failed to host.Init() for periph: %v", err)
	}

	cfg := config.Default()
	cfg.Pins = shiftreg.Pins{Data: dataGPIO, ShiftClock: clockGPIO, StorageClock: storageGPIO}

	ctrl, err := controller.New(cfg)
	if err != nil {
		logger.Fatalf("Invalid configuration: %v", err)
	}
	ctrl.ReportTiming()

	gpioDriver := NewPeriphGPIODriver()
	core.SetGPIODriver(gpioDriver)
	if err := ctrl.Initialize(core.MustGPIO(), core.NewSystemClock()); err != nil {
		logger.Fatalf("Failed to initialize shift register: %v", err)
	}

	core.SetDebugEnabled(*verbose)
	core.InitAsyncDebug()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		ctrl.Stop()
	}()

	ctrl.Run()

	// Loop has finished; nothing else drives the bus now
	if err := ctrl.Blank(); err != nil {
		logger.Printf("Could not blank outputs: %v", err)
	}
	gpioDriver.Halt()
	core.DumpTimingRing()
}
