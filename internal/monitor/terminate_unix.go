//go:build unix

package monitor

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/rileyhilliard/pmon/internal/errors"
)

// Terminate sends SIGTERM to pid.
func (SignalTerminator) Terminate(pid int) error {
	if pid <= 0 {
		return errors.New(errors.ErrSignal,
			fmt.Sprintf("Invalid PID %d", pid),
			"Select a process row before pressing k.")
	}

	if err := unix.Kill(pid, unix.SIGTERM); err != nil {
		return errors.WrapWithCode(err, errors.ErrSignal,
			fmt.Sprintf("Can't terminate PID %d", pid),
			signalSuggestion(err))
	}
	return nil
}

func signalSuggestion(err error) string {
	switch err {
	case unix.EPERM:
		return "The process belongs to another user. Run pmon as that user or as root."
	case unix.ESRCH:
		return "The process already exited."
	default:
		return ""
	}
}
