package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rileyhilliard/pmon/internal/alert"
	"github.com/rileyhilliard/pmon/internal/config"
	"github.com/rileyhilliard/pmon/internal/errors"
	"github.com/rileyhilliard/pmon/internal/journal"
	"github.com/rileyhilliard/pmon/internal/logger"
	"github.com/rileyhilliard/pmon/internal/sampler"
	"github.com/rileyhilliard/pmon/internal/session"
)

// Collector runs one poll cycle. *sampler.Collector satisfies it.
type Collector interface {
	Collect(ctx context.Context) (*sampler.Snapshot, error)
}

// accountingSetter is implemented by collectors that can switch CPU
// accounting mode on a config reload.
type accountingSetter interface {
	SetAccounting(sampler.Accounting)
}

// Layout constants
const (
	// chromeRows is every line that isn't a process row: title, blank,
	// table header, rule, help footer, info line.
	chromeRows = 6

	// defaultVisibleRows is used until the first WindowSizeMsg arrives.
	defaultVisibleRows = 20

	// trendSize is the number of system CPU samples kept for the header sparkline.
	trendSize = 60
)

// Options configures a dashboard model. Zero values fall back to defaults.
type Options struct {
	Interval       time.Duration
	AlertThreshold float64
	AlertWindow    time.Duration
	StatsInterval  time.Duration

	Sink       journal.Sink
	Terminator Terminator
	Log        logger.Logger
	Now        func() time.Time
}

// Model is the Bubble Tea model for the process dashboard.
type Model struct {
	collector  Collector
	terminator Terminator
	sink       journal.Sink
	log        logger.Logger

	ctx    context.Context
	cancel context.CancelFunc

	snapshot *sampler.Snapshot
	cursor   *session.State
	ledger   *alert.Ledger
	stats    *alert.Stats
	trend    *trend

	interval   time.Duration
	width      int
	height     int
	lastUpdate time.Time

	// tickGen invalidates ticks scheduled before a forced refresh so only one
	// tick chain is ever alive.
	tickGen    int
	collecting bool

	status      string
	statusError bool
	sinkFailed  bool

	keys     keyMap
	help     help.Model
	showHelp bool
	quitting bool
}

// tickMsg signals that the next poll cycle is due.
type tickMsg struct {
	gen int
}

// snapshotMsg carries the result of one poll cycle.
type snapshotMsg struct {
	snap *sampler.Snapshot
	err  error
}

// ConfigMsg carries a reloaded configuration, or the error that prevented
// the reload. Send it with tea.Program.Send.
type ConfigMsg struct {
	Config *config.Config
	Err    error
}

// NewModel creates a dashboard model over the given collector.
func NewModel(collector Collector, opts Options) Model {
	if opts.Interval <= 0 {
		opts.Interval = config.DefaultInterval
	}
	if opts.Sink == nil {
		opts.Sink = journal.Discard{}
	}
	if opts.Terminator == nil {
		opts.Terminator = SignalTerminator{}
	}
	if opts.Log == nil {
		opts.Log = logger.Noop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	ctx, cancel := context.WithCancel(context.Background())

	cursor := session.New()
	cursor.SetVisibleRows(defaultVisibleRows)

	return Model{
		collector:  collector,
		terminator: opts.Terminator,
		sink:       opts.Sink,
		log:        opts.Log,
		ctx:        ctx,
		cancel:     cancel,
		cursor:     cursor,
		ledger:     alert.NewLedger(opts.AlertThreshold, opts.AlertWindow, opts.Now()),
		stats:      alert.NewStats(opts.StatsInterval),
		trend:      newTrend(trendSize),
		interval:   opts.Interval,
		collecting: true,
		keys:       defaultKeyMap(),
		help:       help.New(),
	}
}

// Init triggers the first collection immediately. NewModel starts with
// collecting set, so this cycle counts as the one in flight.
func (m Model) Init() tea.Cmd {
	return m.collect()
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg)
		if handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.cursor.Reconcile(m.snapshot.Len(), m.visibleRows())

	case tickMsg:
		if msg.gen != m.tickGen || m.quitting {
			return m, nil
		}
		return m, m.collectCmd()

	case snapshotMsg:
		m.collecting = false
		if msg.err != nil {
			if m.quitting {
				return m, nil
			}
			m.log.Warn("poll cycle failed: %v", msg.err)
			return m, m.tickCmd()
		}
		m.applySnapshot(msg.snap)
		return m, m.tickCmd()

	case ConfigMsg:
		m.applyConfig(msg)
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showHelp {
		return m.renderHelpOverlay()
	}
	return m.renderDashboard()
}

// tickCmd schedules the next poll cycle and invalidates older ticks.
func (m *Model) tickCmd() tea.Cmd {
	m.tickGen++
	gen := m.tickGen
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

// collectCmd starts a poll cycle unless one is already running.
func (m *Model) collectCmd() tea.Cmd {
	if m.collecting {
		return nil
	}
	m.collecting = true
	return m.collect()
}

func (m Model) collect() tea.Cmd {
	ctx, collector := m.ctx, m.collector
	return func() tea.Msg {
		snap, err := collector.Collect(ctx)
		return snapshotMsg{snap: snap, err: err}
	}
}

// applySnapshot installs a new snapshot and runs the per-cycle bookkeeping:
// cursor re-clamping, alerts, periodic stats and the header trend.
func (m *Model) applySnapshot(snap *sampler.Snapshot) {
	m.snapshot = snap
	m.lastUpdate = snap.Taken
	m.cursor.Reconcile(snap.Len(), m.visibleRows())

	for _, ev := range m.ledger.Observe(snap.Taken, snap.Processes) {
		m.log.Debug("pid %d (%s) above %.0f%% CPU: %.2f%%", ev.PID, ev.Name, m.ledger.Threshold(), ev.CPUPercent)
		m.record(m.sink.AppendWarning(ev))
	}

	if rec, ok := m.stats.Observe(snap.Taken, snap.System); ok {
		m.record(m.sink.AppendStat(rec))
	}

	if snap.System.CPUValid {
		m.trend.push(snap.System.CPUPercent)
	}
}

// record surfaces the first journal failure on the info line.
func (m *Model) record(err error) {
	if err == nil || m.sinkFailed {
		return
	}
	m.sinkFailed = true
	m.setStatus(errors.Short(err), true)
}

// terminateSelected signals the selected process. Failures are shown on the
// info line; the session continues either way.
func (m *Model) terminateSelected() {
	idx, ok := m.cursor.SelectedIndex(m.snapshot.Len())
	if !ok {
		m.setStatus("No process selected", true)
		return
	}
	p, _ := m.snapshot.At(idx)

	if err := m.terminator.Terminate(p.PID); err != nil {
		m.log.Warn("terminate pid %d: %v", p.PID, err)
		m.setStatus(errors.Short(err), true)
		return
	}

	m.log.Info("sent SIGTERM to pid %d (%s)", p.PID, p.Name)
	m.setStatus(fmt.Sprintf("Sent SIGTERM to PID %d (%s)", p.PID, p.Name), false)
	// The row will vanish or shift next cycle; don't let the index retarget.
	m.cursor.ClearSelection()
}

// applyConfig hot-applies a reloaded configuration.
func (m *Model) applyConfig(msg ConfigMsg) {
	if msg.Err != nil {
		m.log.Warn("config reload rejected: %v", msg.Err)
		m.setStatus("Config reload rejected: "+errors.Short(msg.Err), true)
		return
	}
	cfg := msg.Config
	m.interval = cfg.Interval
	m.ledger.SetThreshold(cfg.AlertThreshold)
	m.ledger.SetWindow(cfg.AlertWindow)
	m.stats.SetInterval(cfg.StatsInterval)
	if setter, ok := m.collector.(accountingSetter); ok {
		if a, ok := sampler.ParseAccounting(cfg.CPUAccounting); ok {
			setter.SetAccounting(a)
		}
	}
	m.log.Info("config reloaded")
	m.setStatus("Config reloaded", false)
}

func (m *Model) setStatus(text string, isError bool) {
	m.status = text
	m.statusError = isError
}

// visibleRows returns how many process rows fit on screen.
func (m Model) visibleRows() int {
	if m.height == 0 {
		return defaultVisibleRows
	}
	return max(m.height-chromeRows, 1)
}

// Snapshot returns the most recent snapshot, or nil before the first cycle.
func (m Model) Snapshot() *sampler.Snapshot {
	return m.snapshot
}

// Cursor returns the session cursor.
func (m Model) Cursor() *session.State {
	return m.cursor
}

// Status returns the info line message and whether it reports an error.
func (m Model) Status() (string, bool) {
	return m.status, m.statusError
}
