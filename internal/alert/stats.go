package alert

import (
	"time"

	"github.com/rileyhilliard/pmon/internal/sampler"
)

// DefaultStatsInterval is the cadence of system summary records.
const DefaultStatsInterval = 5 * time.Minute

// StatRecord is a periodic system-wide summary.
type StatRecord struct {
	Time          time.Time
	CPUPercent    float64
	Processes     int
	MemoryPercent float64
}

// Stats decides when a summary is due. The first observation always emits.
//
// Elapsed time is measured with time.Time.Sub, which uses the monotonic clock
// reading when both times come from time.Now.
type Stats struct {
	interval time.Duration
	last     time.Time
	emitted  bool
}

// NewStats creates a cadence tracker. A non-positive interval means
// DefaultStatsInterval.
func NewStats(interval time.Duration) *Stats {
	s := &Stats{}
	s.SetInterval(interval)
	return s
}

// SetInterval changes the cadence. The next summary is due relative to the
// last one emitted.
func (s *Stats) SetInterval(interval time.Duration) {
	if interval <= 0 {
		interval = DefaultStatsInterval
	}
	s.interval = interval
}

// Interval returns the current cadence.
func (s *Stats) Interval() time.Duration { return s.interval }

// Due reports whether a summary should be emitted at now. Unlike a plain
// interval timer, the first call is always due, so a fresh log starts with a
// baseline record instead of waiting one interval.
func (s *Stats) Due(now time.Time) bool {
	return !s.emitted || now.Sub(s.last) >= s.interval
}

// Observe returns a summary of sys when one is due and marks it emitted.
func (s *Stats) Observe(now time.Time, sys sampler.SystemSample) (StatRecord, bool) {
	if !s.Due(now) {
		return StatRecord{}, false
	}
	s.last = now
	s.emitted = true
	return StatRecord{
		Time:          now,
		CPUPercent:    sys.CPUPercent,
		Processes:     sys.Processes,
		MemoryPercent: sys.MemoryPercent,
	}, true
}
