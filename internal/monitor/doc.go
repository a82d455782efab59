// Package monitor implements the interactive process dashboard.
//
// The dashboard shows one row per live process in enumeration order, with a
// reverse-video highlight the operator moves with the arrow keys, a committed
// selection, and an info line describing the selected process.
//
// # Architecture
//
// The package uses the Bubble Tea framework, which follows The Elm Architecture
// (Model-Update-View pattern):
//
//   - Model: Holds the latest snapshot plus cross-cycle state (cursor, alert
//     ledger, stats cadence)
//   - Update: Processes messages (keystrokes, tick events, new snapshots)
//   - View: Renders the current state to a string for display
//
// # Message Flow
//
// The dashboard operates on a tick-based refresh cycle:
//
//  1. collectCmd() runs one poll cycle off the UI goroutine
//  2. snapshotMsg arrives with an immutable *sampler.Snapshot
//  3. Update re-clamps the cursor, runs the alert ledger and stats cadence,
//     writes journal records, and schedules the next tickMsg
//  4. tickMsg fires after the configured interval (default 3s) and starts
//     the next collection
//
// Only one collection is in flight at a time. Ledger, stats and cursor are
// only touched from Update.
//
// # Keyboard Shortcuts
//
//	↑/↓         - Move the highlight
//	Enter       - Select the highlighted process
//	k           - Send SIGTERM to the selected process
//	r           - Refresh now
//	?           - Toggle help overlay
//	q, Ctrl+C   - Quit
package monitor
