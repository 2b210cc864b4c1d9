//go:build stm32f4 && telemetry

package main

import (
	"machine"

	"blinky/core"
	"blinky/protocol"
)

// Reused for every frame; the blink loop is the only writer
var frame protocol.ScratchOutput

// initTelemetry streams one phase frame per phase on the console UART.
// Frames go out before the phase delay, so they add a few hundred
// microseconds to each phase at 115200 baud.
func initTelemetry(b *core.Blinker) {
	b.OnPhase = func(seq uint32, level bool, cycles uint32) {
		frame.Reset()
		err := protocol.EncodePhaseFrame(&frame, protocol.PhaseReport{
			Seq:    seq,
			Level:  level,
			Cycles: cycles,
		})
		if err != nil {
			return
		}
		machine.Serial.Write(frame.Result())
	}
}
