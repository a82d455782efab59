package sampler

import (
	"math"
	"time"
)

// idleIndex is the position of the idle counter in the aggregate cpu line.
const idleIndex = 3

// ProcessCPUPercent returns the lifetime-average CPU usage of a process:
// its total ticks (own and waited-for children) over the seconds since it
// started. Returns 0 when no time has elapsed or hz is not positive.
func ProcessCPUPercent(t ProcTicks, uptimeSeconds, hz int64) float64 {
	if hz <= 0 {
		return 0
	}
	elapsed := float64(uptimeSeconds) - float64(t.StartTime)/float64(hz)
	if elapsed <= 0 {
		return 0
	}
	return 100 * (float64(t.Total()) / float64(hz)) / elapsed
}

// IntervalCPUPercent returns CPU usage over the window between two tick
// vectors of the same process. A start time mismatch means the pid was
// reused, and a counter regression means the same; both report 0.
func IntervalCPUPercent(prev, curr ProcTicks, window time.Duration, hz int64) float64 {
	if hz <= 0 || window <= 0 {
		return 0
	}
	if prev.StartTime != curr.StartTime || curr.Total() < prev.Total() {
		return 0
	}
	delta := float64(curr.Total() - prev.Total())
	return 100 * (delta / float64(hz)) / window.Seconds()
}

// SystemCPUPercent returns the non-idle share of the tick delta between two
// aggregate cpu vectors. It returns NaN when the vectors are unusable or no
// ticks elapsed; callers must check with math.IsNaN.
func SystemCPUPercent(prev, curr []uint64) float64 {
	if len(prev) <= idleIndex || len(prev) != len(curr) {
		return math.NaN()
	}

	var prevTotal, currTotal uint64
	for i := range prev {
		prevTotal += prev[i]
		currTotal += curr[i]
	}
	if currTotal <= prevTotal || curr[idleIndex] < prev[idleIndex] {
		return math.NaN()
	}

	idle := float64(curr[idleIndex] - prev[idleIndex])
	total := float64(currTotal - prevTotal)
	return 100 * (1 - idle/total)
}
