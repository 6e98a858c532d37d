// Command lauflicht-console prints the diagnostics the firmware writes on its
// UART at startup (configured tick and output clock frequencies, fatal
// startup errors).
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"lauflicht/host/serial"
)

var (
	device     = flag.String("device", "/dev/ttyUSB0", "Serial device path")
	baud       = flag.Int("baud", 9600, "Baud rate of the diagnostics UART")
	timestamps = flag.Bool("timestamps", true, "Prefix lines with the host time")
)

func main() {
	flag.Parse()

	cfg := serial.DefaultConfig(*device)
	cfg.Baud = *baud

	port, err := serial.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer port.Close()

	fmt.Printf("Listening on %s at %d baud (Ctrl-C to quit)\n", cfg.Device, cfg.Baud)

	stamp := func() string { return time.Now().Format("15:04:05.000") }
	if !*timestamps {
		stamp = nil
	}
	if err := listen(port, os.Stdout, stamp); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// listen drops whatever the port buffered before we attached, then copies
// diagnostic lines to out. stamp, if set, prefixes each line.
func listen(port serial.Port, out io.Writer, stamp func() string) error {
	if err := port.Flush(); err != nil {
		return fmt.Errorf("flush failed: %w", err)
	}

	var writeErr error
	err := serial.ReadLines(port, func(line string) bool {
		if stamp != nil {
			_, writeErr = fmt.Fprintf(out, "%s %s\n", stamp(), line)
		} else {
			_, writeErr = fmt.Fprintln(out, line)
		}
		return writeErr == nil
	})
	if err != nil {
		return fmt.Errorf("read failed: %w", err)
	}
	return writeErr
}
