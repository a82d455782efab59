package sampler

import (
	"context"
	"errors"
)

// ErrNotFound reports that a process exited between enumeration and the
// detail read.
var ErrNotFound = errors.New("sampler: process not found")

// Source exposes the raw counters a poll cycle is built from.
// Implementations live in internal/procfs and internal/psutil.
type Source interface {
	// ListProcessIDs enumerates live pids in the source's native order.
	ListProcessIDs(ctx context.Context) ([]int, error)
	// ReadProcessDetail returns ErrNotFound (possibly wrapped) for pids that
	// have gone away.
	ReadProcessDetail(ctx context.Context, pid int) (*ProcessDetail, error)
	// ReadGlobalCPUTicks returns the aggregate cpu tick vector
	// (user, nice, system, idle, iowait, irq, softirq, steal, ...).
	ReadGlobalCPUTicks(ctx context.Context) ([]uint64, error)
	ReadMemoryTotals(ctx context.Context) (totalKB, freeKB uint64, err error)
	ReadUptimeSeconds(ctx context.Context) (int64, error)
	// TickRate returns clock ticks per second.
	TickRate() int64
}
