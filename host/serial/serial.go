package serial

import (
	"io"
)

// Port represents a serial port interface
// This abstraction allows for different implementations:
// - Native serial (using github.com/tarm/serial)
// - In-memory pipes (for testing)
type Port interface {
	io.ReadWriteCloser

	// Flush discards bytes received but not yet read, such as line noise
	// from before the board reset
	Flush() error
}

// Config holds serial port configuration
type Config struct {
	// Device path (e.g., "/dev/ttyACM0", "COM3")
	Device string

	// Baud rate of the firmware diagnostics UART
	Baud int

	// Read timeout in milliseconds (0 = blocking)
	ReadTimeout int
}

// DefaultConfig returns the configuration matching the firmware diagnostics
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        9600, // Diagnostic UART rate
		ReadTimeout: 0,    // Block until the board speaks
	}
}
