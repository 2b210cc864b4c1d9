//go:build tinygo && !cortexm

package core

import "runtime/volatile"

var spinDummy volatile.Register32

// nop performs a volatile read the optimizer must keep
func nop() {
	spinDummy.Get()
}
