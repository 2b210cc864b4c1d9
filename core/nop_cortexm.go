//go:build tinygo && cortexm

package core

import "device/arm"

// nop issues a single NOP instruction
func nop() {
	arm.Asm("nop")
}
