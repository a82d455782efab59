package monitor

// Terminator asks a process to exit.
type Terminator interface {
	Terminate(pid int) error
}

// SignalTerminator sends SIGTERM on Unix systems.
type SignalTerminator struct{}

var _ Terminator = SignalTerminator{}
