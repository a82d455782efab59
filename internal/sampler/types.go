package sampler

import "time"

// Bound classifies a process by where it spends its time.
type Bound int

const (
	CPUBound Bound = iota
	IOBound
)

// String returns the label shown in the dashboard and the log.
func (b Bound) String() string {
	switch b {
	case IOBound:
		return "I/O Bound"
	default:
		return "CPU Bound"
	}
}

// ProcTicks is the tick breakdown of one process, in clock ticks.
type ProcTicks struct {
	UTime     uint64
	STime     uint64
	CUTime    uint64
	CSTime    uint64
	StartTime uint64 // ticks after boot
	IOWait    uint64 // delayacct_blkio_ticks
}

// Total returns utime+stime+cutime+cstime.
func (t ProcTicks) Total() uint64 {
	return t.UTime + t.STime + t.CUTime + t.CSTime
}

// Own returns utime+stime, excluding waited-for children.
func (t ProcTicks) Own() uint64 {
	return t.UTime + t.STime
}

// ProcessDetail is what a Source reports for a single pid.
type ProcessDetail struct {
	PID        int
	Name       string
	User       string
	RSSKB      uint64
	Ticks      ProcTicks
	ReadBytes  uint64
	WriteBytes uint64
}

// ProcessSample is one process's metrics for a single cycle.
type ProcessSample struct {
	PID        int
	Name       string
	User       string
	MemoryMB   float64
	CPUPercent float64 // not clamped; exceeds 100 on multi-core busy processes
	ReadBytes  uint64
	WriteBytes uint64
	CPUTime    string
	Bound      Bound
}

// SystemSample is the system-wide view of a cycle.
type SystemSample struct {
	Processes     int
	MemoryPercent float64
	CPUPercent    float64
	// CPUValid is false until two global reads with elapsed ticks exist.
	CPUValid bool
}

// Snapshot is the immutable result of one poll cycle.
type Snapshot struct {
	Taken     time.Time
	Processes []ProcessSample
	System    SystemSample
	// Skipped counts pids that vanished or were unreadable mid-cycle.
	Skipped int
}

// Len returns the number of processes in the snapshot. A nil snapshot is empty.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Processes)
}

// At returns the sample at index i, bounds-checked.
func (s *Snapshot) At(i int) (ProcessSample, bool) {
	if s == nil || i < 0 || i >= len(s.Processes) {
		return ProcessSample{}, false
	}
	return s.Processes[i], true
}
