// blink-monitor follows the phase telemetry of a blink firmware built with
// the telemetry tag and reports missed or repeated phases.
//
// Start the monitor using:
// go run ./host/cmd/blink-monitor --logtostderr -v=1 --device=/dev/ttyACM0
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/golang/glog"

	"blinky/host/monitor"
	"blinky/host/serial"
	"blinky/protocol"
)

var (
	device      = flag.String("device", "/dev/ttyACM0", "Serial device path")
	baud        = flag.Int("baud", serial.DefaultBaud, "Baud rate of the telemetry UART")
	phases      = flag.Uint64("phases", 0, "Stop after this many phases (0 = run until interrupted)")
	openTimeout = flag.Duration("open_timeout", 30*time.Second, "How long to keep retrying the serial device")
)

func main() {
	flag.Parse()
	defer glog.Flush()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg := serial.DefaultConfig(*device)
	cfg.Baud = *baud

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = *openTimeout
	port, err := monitor.OpenWithRetry(ctx, serial.Open, cfg, bo)
	if err != nil {
		glog.Exitf("Failed to open telemetry port: %v", err)
	}
	defer port.Close()
	if err := port.Flush(); err != nil {
		glog.Warningf("Failed to flush %s: %v", *device, err)
	}

	glog.Infof("Monitoring %s at %d baud (protocol v%s)...", *device, *baud, protocol.Version)
	m := monitor.New()
	m.Limit = *phases
	m.Follow = true

	runErr := m.Run(ctx, port)

	s := m.Stats()
	glog.Infof("Phases: %d (high %d, low %d), last seq %d", s.Phases, s.High, s.Low, s.LastSeq)
	glog.Infof("Mean half-period: %v", s.MeanHalfPeriod)
	if s.LevelErrors != 0 || s.SeqGaps != 0 || s.Dropped != 0 {
		glog.Warningf("Level errors: %d, sequence gaps: %d, dropped frames: %d", s.LevelErrors, s.SeqGaps, s.Dropped)
	}
	if runErr != nil && ctx.Err() == nil {
		glog.Exitf("Monitor stopped: %v", runErr)
	}
}
