// Package testing provides test doubles for the sampler package.
package testing

import (
	"context"
	"fmt"
	"sync"

	"github.com/rileyhilliard/pmon/internal/sampler"
)

// FakeSource is an in-memory sampler.Source.
// Tests mutate its exported fields between cycles to simulate processes
// appearing, exiting, and counters advancing.
type FakeSource struct {
	mu sync.Mutex

	PIDs    []int
	Details map[int]sampler.ProcessDetail
	// Vanished pids are still listed but fail the detail read with ErrNotFound.
	Vanished map[int]bool
	ListErr  error

	// GlobalTicks are handed out one per ReadGlobalCPUTicks call; the last
	// vector repeats once the list is exhausted.
	GlobalTicks [][]uint64
	GlobalErr   error

	MemTotalKB uint64
	MemFreeKB  uint64
	MemErr     error

	Uptime    int64
	UptimeErr error

	Hz int64

	globalCalls int
	DetailCalls []int
}

// NewFakeSource returns an empty source ticking at 100 Hz.
func NewFakeSource() *FakeSource {
	return &FakeSource{
		Details:  make(map[int]sampler.ProcessDetail),
		Vanished: make(map[int]bool),
		Hz:       100,
	}
}

// AddProcess registers a process and appends its pid to the listing order.
func (f *FakeSource) AddProcess(d sampler.ProcessDetail) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.PIDs = append(f.PIDs, d.PID)
	f.Details[d.PID] = d
}

// RemoveProcess drops a pid from the listing entirely.
func (f *FakeSource) RemoveProcess(pid int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, p := range f.PIDs {
		if p == pid {
			f.PIDs = append(f.PIDs[:i], f.PIDs[i+1:]...)
			break
		}
	}
	delete(f.Details, pid)
}

// GlobalCalls returns how many global tick reads were made.
func (f *FakeSource) GlobalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.globalCalls
}

func (f *FakeSource) ListProcessIDs(ctx context.Context) ([]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	out := make([]int, len(f.PIDs))
	copy(out, f.PIDs)
	return out, nil
}

func (f *FakeSource) ReadProcessDetail(ctx context.Context, pid int) (*sampler.ProcessDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DetailCalls = append(f.DetailCalls, pid)
	if f.Vanished[pid] {
		return nil, fmt.Errorf("pid %d: %w", pid, sampler.ErrNotFound)
	}
	d, ok := f.Details[pid]
	if !ok {
		return nil, fmt.Errorf("pid %d: %w", pid, sampler.ErrNotFound)
	}
	return &d, nil
}

func (f *FakeSource) ReadGlobalCPUTicks(ctx context.Context) ([]uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.globalCalls++
	if f.GlobalErr != nil {
		return nil, f.GlobalErr
	}
	if len(f.GlobalTicks) == 0 {
		return nil, fmt.Errorf("no global ticks configured")
	}
	next := f.GlobalTicks[0]
	if len(f.GlobalTicks) > 1 {
		f.GlobalTicks = f.GlobalTicks[1:]
	}
	out := make([]uint64, len(next))
	copy(out, next)
	return out, nil
}

func (f *FakeSource) ReadMemoryTotals(ctx context.Context) (uint64, uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.MemErr != nil {
		return 0, 0, f.MemErr
	}
	return f.MemTotalKB, f.MemFreeKB, nil
}

func (f *FakeSource) ReadUptimeSeconds(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.UptimeErr != nil {
		return 0, f.UptimeErr
	}
	return f.Uptime, nil
}

func (f *FakeSource) TickRate() int64 {
	return f.Hz
}

var _ sampler.Source = (*FakeSource)(nil)
