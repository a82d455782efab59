// Package sampler turns raw kernel counters into per-cycle process and system
// metrics.
//
// A Source exposes the monotonic counters (process enumeration, per-process
// tick vectors, global CPU ticks, memory totals, uptime). The Collector runs
// one poll cycle against a Source and returns an immutable Snapshot: every
// ProcessSample is rebuilt from scratch each cycle and nothing in a Snapshot
// is mutated after it is returned.
//
// # CPU accounting
//
// Per-process CPU usage defaults to the lifetime average:
//
//	total   = utime + stime + cutime + cstime        (ticks)
//	elapsed = uptime - starttime/hz                   (seconds)
//	percent = 100 * (total/hz) / elapsed              (0 when elapsed <= 0)
//
// A long-lived process that only recently started spinning under-reports.
// AccountingInterval switches to per-cycle deltas instead, which needs the
// previous tick vector of every pid. Neither mode clamps: a process using
// several cores reports more than 100%.
//
// System-wide CPU usage is the non-idle share of the global tick delta between
// two reads of the aggregate cpu line.
//
// # Classification
//
// A process is I/O-bound when its accumulated block-I/O delay ticks exceed its
// user+system ticks, CPU-bound otherwise (ties are CPU-bound).
package sampler
