// Package monitor follows the phase telemetry a blink firmware streams over
// its UART and checks it for missed or repeated phases.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/golang/glog"

	"blinky/host/serial"
	"blinky/protocol"
)

// Stats summarizes what the monitor has seen so far
type Stats struct {
	Phases      uint64 // Reports decoded
	High        uint64 // Reports with the pin high
	Low         uint64 // Reports with the pin low
	LevelErrors uint64 // Consecutive reports with the same level
	SeqGaps     uint64 // Reports whose seq did not follow the previous one
	Dropped     uint32 // Frames the decoder discarded

	LastSeq        uint32
	MeanHalfPeriod time.Duration // Mean time between consecutive reports
}

// Monitor decodes telemetry and keeps running statistics
type Monitor struct {
	decoder *protocol.Decoder
	now     func() time.Time

	mu        sync.Mutex
	stats     Stats
	last      protocol.PhaseReport
	lastAt    time.Time
	seen      bool
	elapsed   time.Duration
	intervals uint64

	// Limit stops Run after this many phases (0 = no limit)
	Limit uint64

	// Follow keeps reading after io.EOF. Serial ports report a read
	// timeout as EOF, so this is set when reading from hardware.
	Follow bool

	// OnPhase is called for every decoded report
	OnPhase func(r protocol.PhaseReport, at time.Time)
}

// New creates a monitor using the wall clock
func New() *Monitor {
	return NewWithClock(time.Now)
}

// NewWithClock creates a monitor that timestamps reports with now
func NewWithClock(now func() time.Time) *Monitor {
	return &Monitor{
		decoder: protocol.NewDecoder(),
		now:     now,
	}
}

// Process feeds raw bytes and returns the reports they completed
func (m *Monitor) Process(data []byte) []protocol.PhaseReport {
	reports := m.decoder.Feed(data)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.stats.Dropped = m.decoder.Dropped
	for _, r := range reports {
		at := m.now()
		m.record(r, at)
		if m.OnPhase != nil {
			m.OnPhase(r, at)
		}
	}
	return reports
}

func (m *Monitor) record(r protocol.PhaseReport, at time.Time) {
	m.stats.Phases++
	if r.Level {
		m.stats.High++
	} else {
		m.stats.Low++
	}

	if m.seen {
		if r.Level == m.last.Level {
			m.stats.LevelErrors++
			glog.Warningf("Phase %d repeats level %v of phase %d", r.Seq, r.Level, m.last.Seq)
		}
		if r.Seq != m.last.Seq+1 {
			m.stats.SeqGaps++
			glog.Warningf("Phase sequence jumped from %d to %d", m.last.Seq, r.Seq)
		}
		m.elapsed += at.Sub(m.lastAt)
		m.intervals++
		m.stats.MeanHalfPeriod = m.elapsed / time.Duration(m.intervals)
	}
	glog.V(1).Infof("Phase %d level=%v cycles=%d", r.Seq, r.Level, r.Cycles)

	m.last = r
	m.lastAt = at
	m.seen = true
	m.stats.LastSeq = r.Seq
}

// Stats returns a snapshot of the statistics
func (m *Monitor) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats
}

// Run reads from r until ctx is done, the limit is reached, or r fails.
// Reaching the limit or the end of a non-followed stream is not an error.
func (m *Monitor) Run(ctx context.Context, r io.Reader) error {
	buf := make([]byte, 256)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if m.Limit != 0 && m.Stats().Phases >= m.Limit {
			return nil
		}

		n, err := r.Read(buf)
		if n > 0 {
			m.Process(buf[:n])
		}
		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			if !m.Follow {
				return nil
			}
		default:
			return fmt.Errorf("reading telemetry: %w", err)
		}
	}
}

// Opener opens a serial port; serial.Open in production
type Opener func(cfg *serial.Config) (serial.Port, error)

// OpenWithRetry opens cfg.Device, retrying according to bo.
// Boards re-enumerate their USB virtual COM port after reset, so the device
// node can be missing for a moment.
func OpenWithRetry(ctx context.Context, open Opener, cfg *serial.Config, bo backoff.BackOff) (serial.Port, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	var port serial.Port
	op := func() error {
		p, err := open(cfg)
		if err != nil {
			glog.Warningf("Opening %s: %v", cfg.Device, err)
			return err
		}
		port = p
		return nil
	}
	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		return nil, fmt.Errorf("giving up on %s: %w", cfg.Device, err)
	}
	return port, nil
}
