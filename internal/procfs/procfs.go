package procfs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/rileyhilliard/pmon/internal/sampler"
)

// DefaultRoot is the mount point of the proc filesystem.
const DefaultRoot = "/proc"

// defaultHz is USER_HZ on every mainstream Linux architecture.
const defaultHz = 100

// Source reads process and system counters from a proc tree.
type Source struct {
	root  string
	hz    int64
	users *userCache
}

var _ sampler.Source = (*Source)(nil)

// New creates a Source rooted at root. An empty root means DefaultRoot.
func New(root string) *Source {
	if root == "" {
		root = DefaultRoot
	}
	return &Source{
		root:  root,
		hz:    ClockTicks(),
		users: newUserCache(),
	}
}

// ClockTicks returns the clock tick rate. CLK_TCK in the environment
// overrides the default of 100.
func ClockTicks() int64 {
	if v := os.Getenv("CLK_TCK"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			return n
		}
	}
	return defaultHz
}

// Root returns the directory this source reads from.
func (s *Source) Root() string { return s.root }

// TickRate implements sampler.Source.
func (s *Source) TickRate() int64 { return s.hz }

// ListProcessIDs returns every numeric entry of the root in directory order.
func (s *Source) ListProcessIDs(ctx context.Context) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dir, err := os.Open(s.root)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.root, err)
	}
	defer dir.Close()

	names, err := dir.Readdirnames(-1)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.root, err)
	}

	pids := make([]int, 0, len(names))
	for _, name := range names {
		pid, err := strconv.Atoi(name)
		if err != nil || pid <= 0 {
			continue
		}
		pids = append(pids, pid)
	}
	return pids, nil
}

// ReadProcessDetail reads stat, status and io for pid. A missing io file
// (permission denied for foreign processes) yields zero byte counts.
func (s *Source) ReadProcessDetail(ctx context.Context, pid int) (*sampler.ProcessDetail, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	base := filepath.Join(s.root, strconv.Itoa(pid))

	statRaw, err := os.ReadFile(filepath.Join(base, "stat"))
	if err != nil {
		return nil, s.wrap(pid, err)
	}
	comm, ticks, err := ParseStat(string(statRaw))
	if err != nil {
		return nil, fmt.Errorf("pid %d: %w", pid, err)
	}

	statusRaw, err := os.ReadFile(filepath.Join(base, "status"))
	if err != nil {
		return nil, s.wrap(pid, err)
	}
	status := ParseStatus(string(statusRaw))

	detail := &sampler.ProcessDetail{
		PID:   pid,
		Name:  status.Name,
		RSSKB: status.RSSKB,
		Ticks: ticks,
	}
	if detail.Name == "" {
		detail.Name = comm
	}
	if status.HasUID {
		detail.User = s.users.lookup(status.UID)
	}

	if ioRaw, err := os.ReadFile(filepath.Join(base, "io")); err == nil {
		detail.ReadBytes, detail.WriteBytes = ParseIO(string(ioRaw))
	}

	return detail, nil
}

// ReadGlobalCPUTicks implements sampler.Source.
func (s *Source) ReadGlobalCPUTicks(ctx context.Context) ([]uint64, error) {
	raw, err := s.readSystem(ctx, "stat")
	if err != nil {
		return nil, err
	}
	return ParseGlobalCPU(raw)
}

// ReadMemoryTotals implements sampler.Source.
func (s *Source) ReadMemoryTotals(ctx context.Context) (uint64, uint64, error) {
	raw, err := s.readSystem(ctx, "meminfo")
	if err != nil {
		return 0, 0, err
	}
	return ParseMeminfo(raw)
}

// ReadUptimeSeconds implements sampler.Source.
func (s *Source) ReadUptimeSeconds(ctx context.Context) (int64, error) {
	raw, err := s.readSystem(ctx, "uptime")
	if err != nil {
		return 0, err
	}
	return ParseUptime(raw)
}

func (s *Source) readSystem(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(filepath.Join(s.root, name))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	return string(data), nil
}

// wrap maps "process is gone" errors to sampler.ErrNotFound.
func (s *Source) wrap(pid int, err error) error {
	if errors.Is(err, os.ErrNotExist) || errors.Is(err, syscall.ESRCH) {
		return fmt.Errorf("pid %d: %w", pid, sampler.ErrNotFound)
	}
	return fmt.Errorf("pid %d: %w", pid, err)
}
