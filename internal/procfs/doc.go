// Package procfs implements sampler.Source on top of a Linux /proc tree.
//
// The root directory is configurable so tests can point it at a fixture tree.
// Files read per process: stat (tick counters), status (name, VmRSS, Uid) and
// io (read_bytes, write_bytes). System files: stat, meminfo, uptime.
package procfs
