package procfs

import "errors"

var (
	// ErrNoStat indicates that /proc/<pid>/stat was empty or malformed.
	ErrNoStat = errors.New("procfs: malformed or empty stat")

	// ErrShortStat indicates that /proc/<pid>/stat had fewer fields than expected.
	ErrShortStat = errors.New("procfs: short stat")

	// ErrNoCPU indicates that /proc/stat had no aggregate cpu line.
	ErrNoCPU = errors.New("procfs: no cpu line")

	// ErrNoMemory indicates that /proc/meminfo lacked MemTotal or MemFree.
	ErrNoMemory = errors.New("procfs: no memory totals")
)
