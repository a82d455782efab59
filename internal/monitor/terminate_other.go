//go:build !unix

package monitor

import (
	"runtime"

	"github.com/rileyhilliard/pmon/internal/errors"
)

// Terminate is not supported off Unix.
func (SignalTerminator) Terminate(pid int) error {
	return errors.New(errors.ErrSignal,
		"Terminating processes isn't supported on "+runtime.GOOS,
		"Use the platform's task manager instead.")
}
