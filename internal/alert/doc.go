// Package alert holds the cross-cycle bookkeeping of the dashboard: the
// high-CPU alert ledger with its de-duplication window, and the cadence of
// periodic system summaries.
//
// Both types take the current time as an argument instead of reading a clock,
// so tests drive them with fixed times. Neither is safe for concurrent use;
// the dashboard mutates them from its update loop only.
package alert
