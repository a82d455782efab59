package cli

import (
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/rileyhilliard/pmon/internal/config"
	"github.com/rileyhilliard/pmon/internal/errors"
	"github.com/rileyhilliard/pmon/internal/journal"
	"github.com/rileyhilliard/pmon/internal/logger"
	"github.com/rileyhilliard/pmon/internal/monitor"
	"github.com/rileyhilliard/pmon/internal/procfs"
	"github.com/rileyhilliard/pmon/internal/psutil"
	"github.com/rileyhilliard/pmon/internal/sampler"
)

// debugLogFile receives standard log output while the dashboard owns the
// terminal and PMON_DEBUG is set.
const debugLogFile = "pmon-debug.log"

// isTerminal is swapped out in tests.
var isTerminal = term.IsTerminal

// runDashboard runs the interactive session until the user quits.
func runDashboard(cfg *config.Config, path string) error {
	if err := requireTerminal(os.Stdin, os.Stdout); err != nil {
		return err
	}

	source, err := newSource(cfg)
	if err != nil {
		return err
	}

	restoreLog, err := redirectLog()
	if err != nil {
		return err
	}
	defer restoreLog()

	if profile, ok := colorProfile(); ok {
		lipgloss.SetColorProfile(profile)
	}

	appLog := logger.NewEnvLogger("[pmon]")
	accounting, _ := sampler.ParseAccounting(cfg.CPUAccounting)
	collector := sampler.NewCollector(source, accounting, logger.NewEnvLogger("[sampler]"))

	sink := journal.NewFile(cfg.LogFile, logger.NewEnvLogger("[journal]"))
	defer sink.Close()

	model := monitor.NewModel(collector, monitor.Options{
		Interval:       cfg.Interval,
		AlertThreshold: cfg.AlertThreshold,
		AlertWindow:    cfg.AlertWindow,
		StatsInterval:  cfg.StatsInterval,
		Sink:           sink,
		Log:            appLog,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())

	if path != "" {
		err := config.Watch(path, func(c *config.Config, err error) {
			p.Send(monitor.ConfigMsg{Config: c, Err: err})
		})
		if err != nil {
			appLog.Warn("config reload disabled: %s", errors.Short(err))
		}
	}

	if _, err := p.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrTerminal,
			"The dashboard stopped unexpectedly",
			"Set PMON_DEBUG=1 and check "+debugLogFile+" for details.")
	}
	return nil
}

// requireTerminal fails unless both ends of the session are terminals.
func requireTerminal(in, out *os.File) error {
	if isTerminal(int(in.Fd())) && isTerminal(int(out.Fd())) {
		return nil
	}
	return errors.New(errors.ErrTerminal,
		"pmon needs an interactive terminal",
		"Run it directly in a terminal, not through a pipe or redirect.")
}

// newSource builds the metrics source named by the config.
func newSource(cfg *config.Config) (sampler.Source, error) {
	switch cfg.Source {
	case config.SourcePsutil:
		return psutil.New(), nil
	case config.SourceProcfs, "":
		if _, err := os.Stat(cfg.ProcRoot); err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrSource,
				"Can't read "+cfg.ProcRoot,
				"pmon reads Linux procfs. Set source: psutil on other systems.")
		}
		return procfs.New(cfg.ProcRoot), nil
	default:
		return nil, errors.New(errors.ErrSource,
			"Unknown metrics source: "+cfg.Source,
			"Use procfs or psutil.")
	}
}

// colorProfile reports the profile to force, if any. NO_COLOR disables color.
func colorProfile() (termenv.Profile, bool) {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return termenv.Ascii, true
	}
	return termenv.Ascii, false
}

// redirectLog points the standard logger away from the terminal for the
// life of the session. The returned func restores stderr.
func redirectLog() (func(), error) {
	if !logger.DebugEnabled() {
		log.SetOutput(io.Discard)
		return func() { log.SetOutput(os.Stderr) }, nil
	}

	f, err := tea.LogToFile(debugLogFile, "pmon")
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrTerminal,
			"Can't open "+debugLogFile,
			"Unset PMON_DEBUG or run pmon from a writable directory.")
	}
	return func() {
		f.Close()
		log.SetOutput(os.Stderr)
		log.SetPrefix("")
	}, nil
}
