// Blink controller
// Brings up one GPIO output and drives a square wave on it forever,
// timed by a counted spin loop
package core

// Timing assumptions for the spin delay
const (
	CoreClockHz  = 16000000 // HSI, the STM32F4 post-reset core clock
	DelayDivisor = 16       // Rough core cycles per spin iteration

	// DefaultHalfPeriod is the spin count for each high and low phase
	DefaultHalfPeriod = CoreClockHz / DelayDivisor
)

// Config selects the pin and timing of a Blinker
type Config struct {
	Pin             GPIOPin // Pin within the bank
	ClockEnableMask uint32  // Bits to set in the clock enable register
	HalfPeriod      uint32  // Spin iterations per phase
}

// DefaultConfig returns the PA5 / 16MHz configuration
func DefaultConfig() Config {
	return Config{
		Pin:             LEDPin,
		ClockEnableMask: RCC_AHB1ENR_GPIOAEN,
		HalfPeriod:      DefaultHalfPeriod,
	}
}

// PhaseHandler is called after each pin write, before the phase delay
type PhaseHandler func(seq uint32, level bool, cycles uint32)

// Blinker owns a register bank and toggles one pin on it
type Blinker struct {
	bank RegisterBank
	cfg  Config

	spin  func()              // One no-op per delay iteration
	delay func(cycles uint32) // Replaces the spin loop when set

	level  bool   // Last level written (post-reset: low)
	phases uint32 // Phases completed or in progress

	// OnPhase is optional and runs on the blinking thread
	OnPhase PhaseHandler
}

// NewBlinker creates a controller for cfg on bank.
// The bank must not be touched by anything else afterwards.
func NewBlinker(bank RegisterBank, cfg Config) *Blinker {
	return &Blinker{
		bank: bank,
		cfg:  cfg,
		spin: nop,
	}
}

// SetSpin replaces the per-iteration primitive used by Delay
func (b *Blinker) SetSpin(spin func()) {
	if spin == nil {
		spin = nop
	}
	b.spin = spin
}

// SetDelay replaces the whole phase delay. nil restores the spin loop.
func (b *Blinker) SetDelay(delay func(cycles uint32)) {
	b.delay = delay
}

// Initialize enables the GPIO bank clock and makes the pin an output.
// Only the pin's own MODER field is rewritten.
func (b *Blinker) Initialize() {
	SetBits(b.bank.ClockEnable, b.cfg.ClockEnableMask)

	ClearBits(b.bank.Mode, ModeMask(b.cfg.Pin))
	SetBits(b.bank.Mode, uint32(ModeOutput)<<ModeShift(b.cfg.Pin))

	DebugPrintln("blink: pin " + utoa(uint32(b.cfg.Pin)) + " configured as output")
}

// Delay busy-waits for cycles iterations of the spin primitive
func (b *Blinker) Delay(cycles uint32) {
	for i := uint32(0); i < cycles; i++ {
		b.spin()
	}
}

// Step runs one phase: drive the opposite level, then wait HalfPeriod
func (b *Blinker) Step() {
	next := !b.level
	if next {
		SetBits(b.bank.Output, OutputMask(b.cfg.Pin))
	} else {
		ClearBits(b.bank.Output, OutputMask(b.cfg.Pin))
	}
	b.level = next

	seq := b.phases
	b.phases++
	RecordPhase(seq, next, b.cfg.HalfPeriod)
	if b.OnPhase != nil {
		b.OnPhase(seq, next, b.cfg.HalfPeriod)
	}

	if b.delay != nil {
		b.delay(b.cfg.HalfPeriod)
		return
	}
	b.Delay(b.cfg.HalfPeriod)
}

// Run blinks forever: high, delay, low, delay, ...
func (b *Blinker) Run() {
	for {
		b.Step()
	}
}

// Level returns the level last driven on the pin
func (b *Blinker) Level() bool {
	return b.level
}

// Phases returns how many phases have been started
func (b *Blinker) Phases() uint32 {
	return b.phases
}

// Config returns the controller configuration
func (b *Blinker) Config() Config {
	return b.cfg
}
