package capture

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"blinky/core"
)

func TestAnalyzeSquareWave(t *testing.T) {
	// Starts low, 1s high / 1s low: the nominal 16MHz behaviour
	edges := []float64{0.5, 1.5, 2.5, 3.5, 4.5}
	res, err := Analyze(false, edges, core.DefaultHalfPeriod)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	want := Result{
		Edges:          5,
		HalfPeriods:    []float64{1, 1, 1, 1},
		MeanHigh:       1,
		MeanLow:        1,
		Period:         2,
		LoopRate:       1000000,
		ImpliedClockHz: 16000000,
	}
	if diff := cmp.Diff(want, res, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("Result mismatch (-want +got):\n%s", diff)
	}
	if d := res.DutyCycle(); math.Abs(d-0.5) > 1e-9 {
		t.Errorf("Expected 50%% duty cycle, got %g", d)
	}
}

func TestAnalyzeFasterClock(t *testing.T) {
	// 0.1s phases: the part runs ten times faster than assumed
	edges := []float64{0, 0.1, 0.2, 0.3}
	res, err := Analyze(true, edges, core.DefaultHalfPeriod)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if math.Abs(res.ImpliedClockHz-160e6) > 1 {
		t.Errorf("Expected implied clock 160MHz, got %g", res.ImpliedClockHz)
	}
}

func TestAnalyzeLevelAssignment(t *testing.T) {
	// Starts high: first measured phase (between edges 0 and 1) is low
	edges := []float64{0, 0.3, 1.0}
	res, err := Analyze(true, edges, 1)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if math.Abs(res.MeanLow-0.3) > 1e-9 || math.Abs(res.MeanHigh-0.7) > 1e-9 {
		t.Errorf("Expected low=0.3 high=0.7, got low=%g high=%g", res.MeanLow, res.MeanHigh)
	}
}

func TestAnalyzeErrors(t *testing.T) {
	if _, err := Analyze(false, []float64{0, 1}, 1); !errors.Is(err, ErrTooFewEdges) {
		t.Errorf("Expected ErrTooFewEdges, got %v", err)
	}
	if _, err := Analyze(false, []float64{0, 1, 1}, 1); !errors.Is(err, ErrNotIncreasing) {
		t.Errorf("Expected ErrNotIncreasing, got %v", err)
	}
}

func TestAnalyzeFileMissing(t *testing.T) {
	_, err := AnalyzeFile(filepath.Join(t.TempDir(), "digital_0.bin"), 1)
	if err == nil {
		t.Errorf("Expected error for missing capture file")
	}
}
