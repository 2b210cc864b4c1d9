//go:build stm32f4 && !telemetry

package main

import "blinky/core"

func initTelemetry(b *core.Blinker) {}
