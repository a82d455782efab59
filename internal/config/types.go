package config

import "time"

// Defaults for every configuration key.
const (
	DefaultInterval       = 3 * time.Second
	MinInterval           = 500 * time.Millisecond
	DefaultAlertThreshold = 50.0
	DefaultAlertWindow    = 5 * time.Minute
	DefaultStatsInterval  = 5 * time.Minute
	DefaultLogFile        = "log.txt"
	DefaultProcRoot       = "/proc"

	SourceProcfs = "procfs"
	SourcePsutil = "psutil"

	AccountingLifetime = "lifetime"
	AccountingInterval = "interval"
)

// Config is the pmon configuration. Every key has a default, so pmon runs
// without a config file.
type Config struct {
	// Interval is the poll cadence.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`

	// AlertThreshold is the CPU percentage a process must exceed to be logged.
	AlertThreshold float64 `yaml:"alert_threshold" mapstructure:"alert_threshold"`

	// AlertWindow is how long an alerted process stays muted.
	AlertWindow time.Duration `yaml:"alert_window" mapstructure:"alert_window"`

	// StatsInterval is the cadence of system summary records.
	StatsInterval time.Duration `yaml:"stats_interval" mapstructure:"stats_interval"`

	// LogFile receives Warning and Stat records.
	LogFile string `yaml:"log_file" mapstructure:"log_file"`

	// Source selects the metrics backend: "procfs" or "psutil".
	Source string `yaml:"source" mapstructure:"source"`

	// ProcRoot is where the procfs source reads from.
	ProcRoot string `yaml:"proc_root" mapstructure:"proc_root"`

	// CPUAccounting is "lifetime" (average since process start) or
	// "interval" (usage between polls).
	CPUAccounting string `yaml:"cpu_accounting" mapstructure:"cpu_accounting"`
}

// DefaultConfig returns a Config with every default applied.
func DefaultConfig() *Config {
	return &Config{
		Interval:       DefaultInterval,
		AlertThreshold: DefaultAlertThreshold,
		AlertWindow:    DefaultAlertWindow,
		StatsInterval:  DefaultStatsInterval,
		LogFile:        DefaultLogFile,
		Source:         SourceProcfs,
		ProcRoot:       DefaultProcRoot,
		CPUAccounting:  AccountingLifetime,
	}
}
