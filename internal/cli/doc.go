// Package cli implements the pmon command-line interface.
//
// The root command starts the interactive dashboard. It loads and validates
// the configuration, checks that stdin and stdout are terminals, builds the
// metrics source the config names, and hands a sampler.Collector to the
// Bubble Tea program in internal/monitor.
//
// # Command Structure
//
//	pmon             - Interactive process dashboard
//	pmon config      - Print the effective configuration as YAML
//	pmon version     - Print build information
//
// # Terminal Ownership
//
// While the dashboard runs it owns the terminal. Standard log output is
// redirected to pmon-debug.log when PMON_DEBUG is set and discarded
// otherwise. Errors from before or after the session go to stderr.
package cli
