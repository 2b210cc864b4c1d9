//go:build stm32f4

package main

import (
	"machine"

	"blinky/core"
)

// debug enables text output on the console UART.
// Set with: tinygo build -ldflags="-X main.debug=true"
var debug = "false"

// initConsole routes core debug output to the default UART
func initConsole() {
	core.SetDebugWriter(func(s string) {
		machine.Serial.Write([]byte(s))
		machine.Serial.Write([]byte("\r\n"))
	})
	core.SetDebugEnabled(debug == "true")
	core.DebugPrintln("blink: core clock assumed " + itoa(core.CoreClockHz) + " Hz")
}

// itoa formats a small non-negative constant without fmt
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [10]byte
	pos := len(buf)
	for n > 0 {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[pos:])
}
