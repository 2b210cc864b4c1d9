package core

// SimRegister is a plain-memory stand-in for a hardware register.
// Every Set is appended to Writes so tests can check ordering.
type SimRegister struct {
	Value  uint32
	Writes []uint32
}

func (r *SimRegister) Get() uint32 {
	return r.Value
}

func (r *SimRegister) Set(value uint32) {
	r.Value = value
	r.Writes = append(r.Writes, value)
}

// SimBank holds the simulated registers behind a RegisterBank
type SimBank struct {
	ClockEnable SimRegister
	Mode        SimRegister
	Output      SimRegister
}

// NewSimBank creates a simulated GPIOA bank at its post-reset state
func NewSimBank() *SimBank {
	return &SimBank{
		Mode: SimRegister{Value: GPIOA_MODER_Reset},
	}
}

// Bank returns a RegisterBank backed by the simulated registers
func (s *SimBank) Bank() RegisterBank {
	return RegisterBank{
		ClockEnable: &s.ClockEnable,
		Mode:        &s.Mode,
		Output:      &s.Output,
	}
}
