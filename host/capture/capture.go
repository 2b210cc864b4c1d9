// Package capture measures the blink waveform from a logic analyzer capture
// of the LED pin.
//
// The firmware times its phases with a spin loop whose length assumes a
// 16MHz core clock. Measuring the real half-period shows how many spin
// iterations the part actually executes per second.
package capture

import (
	"errors"
	"fmt"
	"os"

	"github.com/soypat/saleae"

	"blinky/core"
)

var (
	ErrTooFewEdges   = errors.New("capture needs at least three edges")
	ErrNotIncreasing = errors.New("transition times are not increasing")
)

// Result describes a captured square wave. Times are in seconds.
type Result struct {
	Edges       int       // Transitions in the capture
	HalfPeriods []float64 // Time between consecutive edges
	MeanHigh    float64   // Mean duration of high phases
	MeanLow     float64   // Mean duration of low phases
	Period      float64   // MeanHigh + MeanLow

	// LoopRate is spin iterations per second, assuming every phase waited
	// HalfPeriod iterations
	LoopRate float64

	// ImpliedClockHz is the core clock that would make LoopRate match
	// core.DelayDivisor cycles per iteration
	ImpliedClockHz float64
}

// DutyCycle returns the fraction of the period spent high
func (r Result) DutyCycle() float64 {
	if r.Period == 0 {
		return 0
	}
	return r.MeanHigh / r.Period
}

// Analyze computes phase statistics for a digital channel that starts at
// initial and changes level at each time in transitions.
// Only complete phases (between two edges) are measured.
func Analyze(initial bool, transitions []float64, halfPeriod uint32) (Result, error) {
	var res Result
	if len(transitions) < 3 {
		return res, ErrTooFewEdges
	}
	res.Edges = len(transitions)

	var highSum, lowSum float64
	var highN, lowN int
	for i := 1; i < len(transitions); i++ {
		dt := transitions[i] - transitions[i-1]
		if dt <= 0 {
			return Result{}, fmt.Errorf("edge %d at %g: %w", i, transitions[i], ErrNotIncreasing)
		}
		// Level between edge i-1 and edge i
		level := initial != (i%2 == 1)
		res.HalfPeriods = append(res.HalfPeriods, dt)
		if level {
			highSum += dt
			highN++
		} else {
			lowSum += dt
			lowN++
		}
	}

	res.MeanHigh = highSum / float64(highN)
	res.MeanLow = lowSum / float64(lowN)
	res.Period = res.MeanHigh + res.MeanLow

	meanHalf := (highSum + lowSum) / float64(highN+lowN)
	res.LoopRate = float64(halfPeriod) / meanHalf
	res.ImpliedClockHz = res.LoopRate * core.DelayDivisor
	return res, nil
}

// AnalyzeFile reads a Saleae binary digital export (digital_N.bin)
func AnalyzeFile(filename string, halfPeriod uint32) (Result, error) {
	fp, err := os.Open(filename)
	if err != nil {
		return Result{}, err
	}
	defer fp.Close()

	df, err := saleae.ReadDigitalFile(fp)
	if err != nil {
		return Result{}, fmt.Errorf("reading %s: %w", filename, err)
	}
	return Analyze(df.Header.InitialState != 0, df.Data, halfPeriod)
}
