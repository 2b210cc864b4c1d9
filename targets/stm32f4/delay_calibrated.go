//go:build stm32f4 && calibrated

package main

import (
	"time"

	"tinygo.org/x/drivers/delay"

	"blinky/core"
)

// iterationTime is what one spin iteration is meant to last:
// DelayDivisor cycles of a CoreClockHz clock
const iterationTime = time.Second * core.DelayDivisor / core.CoreClockHz

// initDelay replaces the spin loop with delays derived from the real CPU
// frequency, so the blink period no longer depends on the clock setup.
func initDelay(b *core.Blinker) {
	const chunk = 1000 // iterations per millisecond-sized sleep

	b.SetDelay(func(cycles uint32) {
		for ; cycles >= chunk; cycles -= chunk {
			delay.Sleep(chunk * iterationTime)
		}
		for ; cycles > 0; cycles-- {
			delay.Sleep(iterationTime)
		}
	})
	core.DebugPrintln("blink: calibrated delay, " + itoa(int(iterationTime/time.Nanosecond)) + " ns per iteration")
}
