//go:build stm32f4

package main

import (
	"device/stm32"

	"blinky/core"
)

func main() {
	// RCC and GPIOA belong to the blinker from here on
	bank := core.RegisterBank{
		ClockEnable: &stm32.RCC.AHB1ENR,
		Mode:        &stm32.GPIOA.MODER,
		Output:      &stm32.GPIOA.ODR,
	}

	cfg := core.DefaultConfig()
	cfg.ClockEnableMask = stm32.RCC_AHB1ENR_GPIOAEN

	blinker := core.NewBlinker(bank, cfg)

	initConsole()
	initTelemetry(blinker)
	initDelay(blinker)

	blinker.Initialize()
	blinker.Run()
}
