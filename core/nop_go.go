//go:build !tinygo

package core

// nop is the spin primitive on regular Go (host tests).
// The call is never inlined so the delay loop body is not empty.
//
//go:noinline
func nop() {}
