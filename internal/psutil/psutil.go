// Package psutil implements sampler.Source with gopsutil, for hosts where
// reading the proc tree directly is not wanted.
//
// gopsutil reports times in seconds; they are converted to synthetic ticks at
// a fixed rate so the sampler's tick arithmetic applies unchanged. Children's
// times are not exposed by gopsutil, so CUTime and CSTime are always zero.
package psutil

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"

	"github.com/rileyhilliard/pmon/internal/sampler"
)

// ticksPerSecond is the synthetic tick rate seconds are scaled to.
const ticksPerSecond = 100

// Source reads counters through gopsutil.
type Source struct{}

var _ sampler.Source = (*Source)(nil)

// New creates a gopsutil-backed source.
func New() *Source {
	return &Source{}
}

// TickRate implements sampler.Source.
func (s *Source) TickRate() int64 { return ticksPerSecond }

// ListProcessIDs implements sampler.Source.
func (s *Source) ListProcessIDs(ctx context.Context) ([]int, error) {
	raw, err := process.PidsWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pids: %w", err)
	}
	pids := make([]int, 0, len(raw))
	for _, p := range raw {
		if p > 0 {
			pids = append(pids, int(p))
		}
	}
	return pids, nil
}

// ReadProcessDetail implements sampler.Source. Name and times are required;
// user, memory and io counters fall back to zero values when unreadable.
func (s *Source) ReadProcessDetail(ctx context.Context, pid int) (*sampler.ProcessDetail, error) {
	p, err := process.NewProcessWithContext(ctx, int32(pid))
	if err != nil {
		return nil, wrap(pid, err)
	}

	name, err := p.NameWithContext(ctx)
	if err != nil {
		return nil, wrap(pid, err)
	}
	times, err := p.TimesWithContext(ctx)
	if err != nil {
		return nil, wrap(pid, err)
	}

	detail := &sampler.ProcessDetail{
		PID:  pid,
		Name: name,
		Ticks: sampler.ProcTicks{
			UTime:  toTicks(times.User),
			STime:  toTicks(times.System),
			IOWait: toTicks(times.Iowait),
		},
	}

	if created, err := p.CreateTimeWithContext(ctx); err == nil {
		if boot, err := host.BootTimeWithContext(ctx); err == nil {
			detail.Ticks.StartTime = StartTicks(created, boot)
		}
	}
	if username, err := p.UsernameWithContext(ctx); err == nil {
		detail.User = username
	}
	if info, err := p.MemoryInfoWithContext(ctx); err == nil && info != nil {
		detail.RSSKB = info.RSS / 1024
	}
	if io, err := p.IOCountersWithContext(ctx); err == nil && io != nil {
		detail.ReadBytes = io.ReadBytes
		detail.WriteBytes = io.WriteBytes
	}

	return detail, nil
}

// ReadGlobalCPUTicks implements sampler.Source. The vector is ordered like
// the aggregate line of /proc/stat so the idle counter sits at index 3.
func (s *Source) ReadGlobalCPUTicks(ctx context.Context) ([]uint64, error) {
	all, err := cpu.TimesWithContext(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("cpu times: %w", err)
	}
	if len(all) == 0 {
		return nil, errors.New("cpu times: empty result")
	}
	return GlobalVector(all[0]), nil
}

// ReadMemoryTotals implements sampler.Source.
func (s *Source) ReadMemoryTotals(ctx context.Context) (uint64, uint64, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("virtual memory: %w", err)
	}
	return vm.Total / 1024, vm.Free / 1024, nil
}

// ReadUptimeSeconds implements sampler.Source.
func (s *Source) ReadUptimeSeconds(ctx context.Context) (int64, error) {
	up, err := host.UptimeWithContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("uptime: %w", err)
	}
	return int64(up), nil
}

// GlobalVector flattens a TimesStat in /proc/stat column order.
func GlobalVector(t cpu.TimesStat) []uint64 {
	return []uint64{
		toTicks(t.User),
		toTicks(t.Nice),
		toTicks(t.System),
		toTicks(t.Idle),
		toTicks(t.Iowait),
		toTicks(t.Irq),
		toTicks(t.Softirq),
		toTicks(t.Steal),
	}
}

// StartTicks converts a creation time in epoch milliseconds to ticks after
// boot. Processes that appear to predate boot report 0.
func StartTicks(createdMs int64, bootSeconds uint64) uint64 {
	sinceBoot := float64(createdMs)/1000 - float64(bootSeconds)
	if sinceBoot <= 0 {
		return 0
	}
	return toTicks(sinceBoot)
}

func toTicks(seconds float64) uint64 {
	if seconds <= 0 || math.IsNaN(seconds) {
		return 0
	}
	return uint64(math.Round(seconds * ticksPerSecond))
}

func wrap(pid int, err error) error {
	if errors.Is(err, process.ErrorProcessNotRunning) {
		return fmt.Errorf("pid %d: %w", pid, sampler.ErrNotFound)
	}
	return fmt.Errorf("pid %d: %w", pid, err)
}
