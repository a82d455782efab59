// Package journal appends alert and summary records to a plain-text log file
// meant for operators to read.
//
// Each record is a block:
//
//	Warning!
//	-------------------------------------------------------------------
//	2024-03-01 12:00:00 -> CPU Usage TOO HIGH (75.50%) | process: stress | PID:4242
//	-------------------------------------------------------------------
//
// Writes are best-effort. The first failure is reported to the logger and
// returned; the dashboard keeps running either way.
package journal

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rileyhilliard/pmon/internal/alert"
	"github.com/rileyhilliard/pmon/internal/errors"
	"github.com/rileyhilliard/pmon/internal/logger"
)

// DefaultPath is the log file written when none is configured.
const DefaultPath = "log.txt"

// TimeLayout is the timestamp format of every record.
const TimeLayout = "2006-01-02 15:04:05"

var rule = strings.Repeat("-", 95)

// Sink accepts journal records.
type Sink interface {
	AppendWarning(ev alert.Event) error
	AppendStat(rec alert.StatRecord) error
	Close() error
}

// File is a Sink appending to a file on disk. The file is opened for each
// record so it can be rotated or removed while pmon runs.
type File struct {
	mu       sync.Mutex
	path     string
	log      logger.Logger
	reported bool
	closed   bool
}

var _ Sink = (*File)(nil)

// NewFile creates a file sink. Nothing is opened until the first record.
func NewFile(path string, log logger.Logger) *File {
	if path == "" {
		path = DefaultPath
	}
	if log == nil {
		log = logger.Noop()
	}
	return &File{path: path, log: log}
}

// Path returns the file the sink appends to.
func (f *File) Path() string { return f.path }

// AppendWarning writes a high-CPU alert block.
func (f *File) AppendWarning(ev alert.Event) error {
	line := fmt.Sprintf("%s -> CPU Usage TOO HIGH (%.2f%%) | process: %s | PID:%d",
		ev.Time.Format(TimeLayout), ev.CPUPercent, ev.Name, ev.PID)
	return f.append("Warning!", line)
}

// AppendStat writes a system summary block.
func (f *File) AppendStat(rec alert.StatRecord) error {
	line := fmt.Sprintf("%s -> Total CPU Usage: %.2f%%, Total Processes: %d, Total Memory Usage: %.2f%%",
		rec.Time.Format(TimeLayout), rec.CPUPercent, rec.Processes, rec.MemoryPercent)
	return f.append("Stat", line)
}

// Close stops further writes. It is safe to call more than once.
func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *File) append(kind, line string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return errors.New(errors.ErrJournal,
			"Journal is closed",
			"This is unexpected - records are only written while the dashboard runs.")
	}

	err := f.write(func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "%s\n%s\n%s\n%s\n\n", kind, rule, line, rule)
		return err
	})
	if err == nil {
		return nil
	}

	jerr := errors.WrapWithCode(err, errors.ErrJournal,
		"Can't write to log file "+f.path,
		"Check that "+filepath.Dir(f.path)+" exists and is writable, or set log_file in the config.")
	if !f.reported {
		f.reported = true
		f.log.Error("%s", jerr.Short())
	}
	return jerr
}

func (f *File) write(fn func(io.Writer) error) error {
	file, err := os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if err := fn(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Discard is a Sink that drops every record.
type Discard struct{}

func (Discard) AppendWarning(alert.Event) error { return nil }

func (Discard) AppendStat(alert.StatRecord) error { return nil }

func (Discard) Close() error { return nil }
