package sampler

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"github.com/rileyhilliard/pmon/internal/logger"
)

// Accounting selects how per-process CPU usage is computed.
type Accounting int

const (
	// AccountingLifetime averages CPU usage over the whole process lifetime.
	AccountingLifetime Accounting = iota
	// AccountingInterval measures CPU usage between consecutive cycles.
	AccountingInterval
)

// String returns the config spelling of the mode.
func (a Accounting) String() string {
	if a == AccountingInterval {
		return "interval"
	}
	return "lifetime"
}

// ParseAccounting maps a config value to an Accounting mode.
func ParseAccounting(s string) (Accounting, bool) {
	switch s {
	case "", "lifetime":
		return AccountingLifetime, true
	case "interval":
		return AccountingInterval, true
	default:
		return AccountingLifetime, false
	}
}

// Collector runs poll cycles against a Source.
//
// Between cycles it keeps only the closing global tick vector, the last good
// system values (used when a global read fails), and, in interval mode, the
// previous tick vector of each pid. Collect calls are serialized.
type Collector struct {
	mu         sync.Mutex
	source     Source
	log        logger.Logger
	accounting Accounting
	now        func() time.Time

	lastGlobal []uint64
	lastSystem SystemSample
	prevTicks  map[int]ProcTicks
	prevTaken  time.Time
	failing    map[string]bool
}

// NewCollector creates a collector over the given source.
func NewCollector(source Source, accounting Accounting, log logger.Logger) *Collector {
	if log == nil {
		log = logger.Noop()
	}
	return &Collector{
		source:     source,
		log:        log,
		accounting: accounting,
		now:        time.Now,
		prevTicks:  make(map[int]ProcTicks),
		failing:    make(map[string]bool),
	}
}

// SetAccounting switches the CPU accounting mode for subsequent cycles.
func (c *Collector) SetAccounting(a Accounting) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accounting = a
}

// Collect runs one poll cycle. Per-process and global read failures degrade
// the snapshot instead of failing it; the only error returned is the
// context's.
func (c *Collector) Collect(ctx context.Context) (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	taken := c.now()
	hz := c.source.TickRate()

	// The window opens at the previous cycle's closing read so the system
	// figure covers the whole poll interval.
	opening := c.lastGlobal
	if opening == nil {
		opening = c.readGlobal(ctx)
	}

	uptime, err := c.source.ReadUptimeSeconds(ctx)
	c.track("uptime", err)

	pids, err := c.source.ListProcessIDs(ctx)
	c.track("process list", err)

	var window time.Duration
	if !c.prevTaken.IsZero() {
		window = taken.Sub(c.prevTaken)
	}

	snap := &Snapshot{
		Taken:     taken,
		Processes: make([]ProcessSample, 0, len(pids)),
	}
	nextTicks := make(map[int]ProcTicks, len(pids))

	for _, pid := range pids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		detail, err := c.source.ReadProcessDetail(ctx, pid)
		if err != nil {
			snap.Skipped++
			if !errors.Is(err, ErrNotFound) {
				c.log.Debug("skipping pid %d: %v", pid, err)
			}
			continue
		}

		var cpu float64
		switch c.accounting {
		case AccountingInterval:
			if prev, ok := c.prevTicks[pid]; ok {
				cpu = IntervalCPUPercent(prev, detail.Ticks, window, hz)
			}
		default:
			cpu = ProcessCPUPercent(detail.Ticks, uptime, hz)
		}
		nextTicks[pid] = detail.Ticks

		snap.Processes = append(snap.Processes, ProcessSample{
			PID:        detail.PID,
			Name:       detail.Name,
			User:       detail.User,
			MemoryMB:   KBToMB(detail.RSSKB),
			CPUPercent: cpu,
			ReadBytes:  detail.ReadBytes,
			WriteBytes: detail.WriteBytes,
			CPUTime:    FormatCPUTime(detail.Ticks.Own(), hz),
			Bound:      Classify(detail.Ticks),
		})
	}

	closing := c.readGlobal(ctx)
	snap.System = c.system(ctx, len(pids), opening, closing)

	if closing != nil {
		c.lastGlobal = closing
	}
	c.lastSystem = snap.System
	c.prevTicks = nextTicks
	c.prevTaken = taken

	return snap, nil
}

// system assembles the system-wide sample, falling back to the previous
// cycle's values for any figure that can't be computed this time.
func (c *Collector) system(ctx context.Context, processes int, opening, closing []uint64) SystemSample {
	sys := SystemSample{
		Processes:     processes,
		CPUPercent:    c.lastSystem.CPUPercent,
		CPUValid:      c.lastSystem.CPUValid,
		MemoryPercent: c.lastSystem.MemoryPercent,
	}

	if pct := SystemCPUPercent(opening, closing); !math.IsNaN(pct) {
		sys.CPUPercent = pct
		sys.CPUValid = true
	}

	total, free, err := c.source.ReadMemoryTotals(ctx)
	c.track("memory totals", err)
	if err == nil {
		sys.MemoryPercent = MemoryUsedPercent(total, free)
	}

	return sys
}

func (c *Collector) readGlobal(ctx context.Context) []uint64 {
	ticks, err := c.source.ReadGlobalCPUTicks(ctx)
	c.track("global cpu ticks", err)
	if err != nil {
		return nil
	}
	return ticks
}

// track warns on the first failure of a streak and notes the recovery, so a
// persistently missing counter file logs once instead of every cycle.
func (c *Collector) track(what string, err error) {
	switch {
	case err != nil && !c.failing[what]:
		c.failing[what] = true
		c.log.Warn("can't read %s, using degraded values: %v", what, err)
	case err == nil && c.failing[what]:
		delete(c.failing, what)
		c.log.Info("%s readable again", what)
	}
}
