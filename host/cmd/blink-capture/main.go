// blink-capture measures the LED waveform from a Saleae binary digital
// export and reports the core clock the spin delay actually ran at.
//
// Usage:
// go run ./host/cmd/blink-capture --logtostderr --f=digital_0.bin
package main

import (
	"flag"

	"github.com/golang/glog"

	"blinky/core"
	"blinky/host/capture"
)

var (
	file       = flag.String("f", "digital_0.bin", "Saleae binary digital file of the LED channel")
	halfPeriod = flag.Uint("half_period", core.DefaultHalfPeriod, "Spin iterations per phase the firmware was built with")
)

func main() {
	flag.Parse()
	defer glog.Flush()

	res, err := capture.AnalyzeFile(*file, uint32(*halfPeriod))
	if err != nil {
		glog.Exitf("Failed to analyze %s: %v", *file, err)
	}

	glog.Infof("Edges: %d", res.Edges)
	glog.Infof("Mean high: %.6fs, mean low: %.6fs, period: %.6fs (duty %.1f%%)",
		res.MeanHigh, res.MeanLow, res.Period, 100*res.DutyCycle())
	glog.Infof("Spin rate: %.0f iterations/s, implied core clock: %.2f MHz (assumed %.2f MHz)",
		res.LoopRate, res.ImpliedClockHz/1e6, float64(core.CoreClockHz)/1e6)
	for i, hp := range res.HalfPeriods {
		glog.V(1).Infof("Phase %d: %.6fs", i, hp)
	}
}
