package alert

import (
	"time"

	"github.com/rileyhilliard/pmon/internal/sampler"
)

const (
	// DefaultThreshold is the CPU percentage a process must strictly exceed
	// to raise an alert.
	DefaultThreshold = 50.0

	// DefaultWindow is how long an alerted pid stays muted.
	DefaultWindow = 5 * time.Minute
)

// Event is a single high-CPU alert.
type Event struct {
	Time       time.Time
	CPUPercent float64
	Name       string
	PID        int
}

// Ledger remembers which pids alerted in the current window.
type Ledger struct {
	threshold float64
	window    time.Duration
	start     time.Time
	alerted   map[int]struct{}
}

// NewLedger creates a ledger whose first window starts at now.
// Non-positive threshold or window fall back to the defaults.
func NewLedger(threshold float64, window time.Duration, now time.Time) *Ledger {
	l := &Ledger{
		start:   now,
		alerted: make(map[int]struct{}),
	}
	l.SetThreshold(threshold)
	l.SetWindow(window)
	return l
}

// SetThreshold changes the alert threshold for subsequent cycles.
func (l *Ledger) SetThreshold(threshold float64) {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	l.threshold = threshold
}

// SetWindow changes the de-duplication window. The current window keeps its
// start time.
func (l *Ledger) SetWindow(window time.Duration) {
	if window <= 0 {
		window = DefaultWindow
	}
	l.window = window
}

// Threshold returns the current alert threshold.
func (l *Ledger) Threshold() float64 { return l.threshold }

// Window returns the current de-duplication window.
func (l *Ledger) Window() time.Duration { return l.window }

// Len returns the number of pids muted in the current window.
func (l *Ledger) Len() int { return len(l.alerted) }

// Tick clears the ledger and restarts the window once it has aged past the
// window length. It reports whether a reset happened.
func (l *Ledger) Tick(now time.Time) bool {
	if now.Sub(l.start) < l.window {
		return false
	}
	clear(l.alerted)
	l.start = now
	return true
}

// RecordIfNew returns an alert for s if it is above the threshold and its pid
// has not alerted in the current window.
func (l *Ledger) RecordIfNew(now time.Time, s sampler.ProcessSample) (Event, bool) {
	if s.CPUPercent <= l.threshold {
		return Event{}, false
	}
	if _, seen := l.alerted[s.PID]; seen {
		return Event{}, false
	}
	l.alerted[s.PID] = struct{}{}
	return Event{
		Time:       now,
		CPUPercent: s.CPUPercent,
		Name:       s.Name,
		PID:        s.PID,
	}, true
}

// Observe runs one cycle: Tick, then RecordIfNew for every sample in order.
func (l *Ledger) Observe(now time.Time, samples []sampler.ProcessSample) []Event {
	l.Tick(now)

	var events []Event
	for _, s := range samples {
		if ev, ok := l.RecordIfNew(now, s); ok {
			events = append(events, ev)
		}
	}
	return events
}
