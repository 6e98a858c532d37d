//go:build rp2040

package main

import (
	"machine"

	"lauflicht/core"
)

var debugUART *machine.UART

// InitDiagnostics brings up UART0 on its default pins and routes core debug
// output to it
func InitDiagnostics(baud uint32) {
	debugUART = machine.UART0
	err := debugUART.Configure(machine.UARTConfig{
		BaudRate: baud,
		TX:       machine.UART0_TX_PIN,
		RX:       machine.UART0_RX_PIN,
	})
	if err != nil {
		debugUART = nil
		return
	}

	core.SetDebugWriter(uartPrintln)
	core.SetDebugEnabled(true)
}

// EndDiagnostics stops debug output. UART0 shares GPIO0/GPIO1 with the
// shift register bus, which takes the pins over afterwards.
func EndDiagnostics() {
	core.SetDebugEnabled(false)
	core.SetDebugWriter(func(s string) {})
	debugUART = nil
}

func uartPrintln(s string) {
	if debugUART == nil {
		return
	}
	debugUART.Write([]byte(s))
	debugUART.Write([]byte("\r\n"))
}
