//go:build stm32f4 && !calibrated

package main

import "blinky/core"

// initDelay keeps the core spin loop (one NOP per iteration)
func initDelay(b *core.Blinker) {}
