package core

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestDebugPrintlnDisabled(t *testing.T) {
	var lines []string
	SetDebugWriter(func(s string) { lines = append(lines, s) })
	defer SetDebugWriter(nil)

	SetDebugEnabled(false)
	DebugPrintln("dropped")
	if len(lines) != 0 {
		t.Errorf("Expected no output while disabled, got %v", lines)
	}

	SetDebugEnabled(true)
	defer SetDebugEnabled(false)
	DebugPrintln("kept")
	if len(lines) != 1 || lines[0] != "kept" {
		t.Errorf("Expected [kept], got %v", lines)
	}
}

func TestInitializeLogs(t *testing.T) {
	var lines []string
	SetDebugWriter(func(s string) { lines = append(lines, s) })
	SetDebugEnabled(true)
	defer func() {
		SetDebugWriter(nil)
		SetDebugEnabled(false)
	}()

	NewBlinker(NewSimBank().Bank(), DefaultConfig()).Initialize()

	if len(lines) != 1 || !strings.Contains(lines[0], "pin 5") {
		t.Errorf("Expected one line mentioning pin 5, got %v", lines)
	}
}

func TestPhaseRingRecordsSteps(t *testing.T) {
	ClearPhaseRing()

	cfg := DefaultConfig()
	cfg.HalfPeriod = 3
	b := NewBlinker(NewSimBank().Bank(), cfg)
	b.SetSpin(func() {})
	b.Step()
	b.Step()
	b.Step()

	want := []PhaseEvent{
		{Seq: 0, Level: true, Cycles: 3},
		{Seq: 1, Level: false, Cycles: 3},
		{Seq: 2, Level: true, Cycles: 3},
	}
	got := PhaseHistory()
	if diff := cmp.Diff(want, got, cmpopts.IgnoreUnexported(PhaseEvent{})); diff != "" {
		t.Errorf("Phase history mismatch (-want +got):\n%s", diff)
	}
}

func TestPhaseRingWraps(t *testing.T) {
	ClearPhaseRing()

	total := uint32(PhaseRingSize + 5)
	for i := uint32(0); i < total; i++ {
		RecordPhase(i, i%2 == 0, 1)
	}

	got := PhaseHistory()
	if len(got) != PhaseRingSize {
		t.Fatalf("Expected %d events, got %d", PhaseRingSize, len(got))
	}
	if got[0].Seq != 5 {
		t.Errorf("Expected oldest seq 5, got %d", got[0].Seq)
	}
	if got[len(got)-1].Seq != total-1 {
		t.Errorf("Expected newest seq %d, got %d", total-1, got[len(got)-1].Seq)
	}
}

func TestDumpPhaseRing(t *testing.T) {
	ClearPhaseRing()
	RecordPhase(0, true, 1000000)
	RecordPhase(1, false, 1000000)

	var lines []string
	SetDebugWriter(func(s string) { lines = append(lines, s) })
	defer SetDebugWriter(nil)

	// Dump ignores the enable flag
	SetDebugEnabled(false)
	DumpPhaseRing()

	want := []string{
		"[PHASE] === Phase Ring Dump ===",
		"[PHASE] seq=0 level=HIGH cycles=1000000",
		"[PHASE] seq=1 level=LOW cycles=1000000",
		"[PHASE] === End Dump ===",
	}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Errorf("Dump mismatch (-want +got):\n%s", diff)
	}
}

func TestUtoa(t *testing.T) {
	testCases := map[uint32]string{
		0:          "0",
		7:          "7",
		10:         "10",
		1000000:    "1000000",
		4294967295: "4294967295",
	}
	for n, want := range testCases {
		if got := utoa(n); got != want {
			t.Errorf("utoa(%d): expected %q, got %q", n, want, got)
		}
	}
}
