package core

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

// PhaseEvent captures one blink phase for post-mortem analysis
type PhaseEvent struct {
	Seq    uint32 // Phase number since boot
	Level  bool   // Level driven for this phase
	Cycles uint32 // Delay requested after the write
	valid  bool
}

const (
	PhaseRingSize = 16 // Keep the last 16 phases
)

var (
	// debugPrintln is the global debug print function (set by target code)
	debugPrintln DebugWriter = func(s string) {} // No-op by default

	// debugEnabled controls whether debug output is active.
	// Output costs time inside the blink loop, so it is off by default.
	debugEnabled bool = false

	phaseRing     [PhaseRingSize]PhaseEvent
	phaseRingHead uint8 // Next write position
)

// SetDebugWriter sets the platform-specific debug output function
// This allows targets to redirect debug output to UART, semihosting, etc.
func SetDebugWriter(writer DebugWriter) {
	if writer == nil {
		writer = func(string) {}
	}
	debugPrintln = writer
}

// SetDebugEnabled enables or disables debug output
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// IsDebugEnabled returns whether debug output is enabled
func IsDebugEnabled() bool {
	return debugEnabled
}

// DebugPrintln writes a debug message using the platform-specific writer
func DebugPrintln(msg string) {
	if debugEnabled && debugPrintln != nil {
		debugPrintln(msg)
	}
}

// RecordPhase captures a phase in the ring buffer.
// Never blocks and never allocates.
func RecordPhase(seq uint32, level bool, cycles uint32) {
	idx := phaseRingHead
	phaseRing[idx] = PhaseEvent{
		Seq:    seq,
		Level:  level,
		Cycles: cycles,
		valid:  true,
	}
	phaseRingHead = (idx + 1) % PhaseRingSize
}

// PhaseHistory returns the recorded phases, oldest first
func PhaseHistory() []PhaseEvent {
	events := make([]PhaseEvent, 0, PhaseRingSize)
	start := phaseRingHead
	for i := uint8(0); i < PhaseRingSize; i++ {
		evt := phaseRing[(start+i)%PhaseRingSize]
		if !evt.valid {
			continue // Empty slot
		}
		events = append(events, evt)
	}
	return events
}

// DumpPhaseRing outputs the phase ring through the debug writer.
// Unlike DebugPrintln it ignores the enable flag.
func DumpPhaseRing() {
	if debugPrintln == nil {
		return
	}

	debugPrintln("[PHASE] === Phase Ring Dump ===")
	for _, evt := range PhaseHistory() {
		level := "LOW"
		if evt.Level {
			level = "HIGH"
		}
		debugPrintln("[PHASE] seq=" + utoa(evt.Seq) +
			" level=" + level +
			" cycles=" + utoa(evt.Cycles))
	}
	debugPrintln("[PHASE] === End Dump ===")
}

// ClearPhaseRing clears the phase buffer
func ClearPhaseRing() {
	for i := range phaseRing {
		phaseRing[i] = PhaseEvent{}
	}
	phaseRingHead = 0
}
