package procfs

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/rileyhilliard/pmon/internal/sampler"
)

// Field positions in /proc/<pid>/stat, counted from 1 as in proc(5).
// Fields after comm are indexed from field 3.
const (
	fieldUTime     = 14
	fieldSTime     = 15
	fieldCUTime    = 16
	fieldCSTime    = 17
	fieldStartTime = 22
	fieldBlkioWait = 42
)

// ParseStat extracts comm and the tick counters from /proc/<pid>/stat.
// comm may contain spaces and parentheses, so numeric fields are taken from
// after the last ')'. delayacct_blkio_ticks is optional on old kernels.
func ParseStat(content string) (string, sampler.ProcTicks, error) {
	var ticks sampler.ProcTicks

	line := strings.TrimSpace(content)
	l := strings.IndexByte(line, '(')
	r := strings.LastIndexByte(line, ')')
	if l < 0 || r < 0 || r <= l {
		return "", ticks, ErrNoStat
	}
	comm := line[l+1 : r]
	fields := strings.Fields(line[r+1:])

	get := func(field int) (uint64, error) {
		idx := field - 3
		if idx >= len(fields) {
			return 0, ErrShortStat
		}
		v, err := strconv.ParseUint(fields[idx], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("stat field %d: %w", field, err)
		}
		return v, nil
	}

	var err error
	targets := []struct {
		field int
		dst   *uint64
	}{
		{fieldUTime, &ticks.UTime},
		{fieldSTime, &ticks.STime},
		{fieldCUTime, &ticks.CUTime},
		{fieldCSTime, &ticks.CSTime},
		{fieldStartTime, &ticks.StartTime},
	}
	for _, tg := range targets {
		if *tg.dst, err = get(tg.field); err != nil {
			return comm, sampler.ProcTicks{}, err
		}
	}

	if v, err := get(fieldBlkioWait); err == nil {
		ticks.IOWait = v
	}

	return comm, ticks, nil
}

// Status holds the /proc/<pid>/status fields pmon uses.
type Status struct {
	Name   string
	RSSKB  uint64
	UID    uint32
	HasUID bool
}

// ParseStatus parses /proc/<pid>/status. Kernel threads have no VmRSS line
// and report zero resident memory.
func ParseStatus(content string) Status {
	var st Status
	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)

		switch key {
		case "Name":
			st.Name = value
		case "VmRSS":
			fields := strings.Fields(value)
			if len(fields) > 0 {
				st.RSSKB, _ = strconv.ParseUint(fields[0], 10, 64)
			}
		case "Uid":
			fields := strings.Fields(value)
			if len(fields) > 0 {
				if v, err := strconv.ParseUint(fields[0], 10, 32); err == nil {
					st.UID = uint32(v)
					st.HasUID = true
				}
			}
		}
	}
	return st
}

// ParseIO returns read_bytes and write_bytes from /proc/<pid>/io.
// cancelled_write_bytes is deliberately not matched.
func ParseIO(content string) (readBytes, writeBytes uint64) {
	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "read_bytes:"):
			readBytes, _ = strconv.ParseUint(strings.TrimSpace(strings.TrimPrefix(line, "read_bytes:")), 10, 64)
		case strings.HasPrefix(line, "write_bytes:"):
			writeBytes, _ = strconv.ParseUint(strings.TrimSpace(strings.TrimPrefix(line, "write_bytes:")), 10, 64)
		}
	}
	return readBytes, writeBytes
}

// ParseGlobalCPU returns the counters of the aggregate "cpu" line of /proc/stat.
func ParseGlobalCPU(content string) ([]uint64, error) {
	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || fields[0] != "cpu" {
			continue
		}
		if len(fields) < 5 {
			return nil, fmt.Errorf("invalid /proc/stat cpu line: %w", ErrNoCPU)
		}
		ticks := make([]uint64, 0, len(fields)-1)
		for i, f := range fields[1:] {
			v, err := strconv.ParseUint(f, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("failed to parse cpu field %d: %w", i+1, err)
			}
			ticks = append(ticks, v)
		}
		return ticks, nil
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error scanning /proc/stat: %w", err)
	}
	return nil, ErrNoCPU
}

// ParseMeminfo returns MemTotal and MemFree in kB.
func ParseMeminfo(content string) (totalKB, freeKB uint64, err error) {
	var haveTotal, haveFree bool
	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) < 2 {
			continue
		}
		val, err := strconv.ParseUint(parts[1], 10, 64)
		if err != nil {
			continue
		}
		switch parts[0] {
		case "MemTotal:":
			totalKB, haveTotal = val, true
		case "MemFree:":
			freeKB, haveFree = val, true
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, 0, fmt.Errorf("error scanning /proc/meminfo: %w", err)
	}
	if !haveTotal || !haveFree {
		return 0, 0, ErrNoMemory
	}
	return totalKB, freeKB, nil
}

// ParseUptime returns whole seconds since boot from /proc/uptime.
func ParseUptime(content string) (int64, error) {
	fields := strings.Fields(content)
	if len(fields) == 0 {
		return 0, fmt.Errorf("empty /proc/uptime")
	}
	secs, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse uptime: %w", err)
	}
	return int64(secs), nil
}
