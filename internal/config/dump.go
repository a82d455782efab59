package config

import (
	"gopkg.in/yaml.v3"
)

// fileConfig mirrors Config with durations as strings, which is how they
// are written in the config file.
type fileConfig struct {
	Interval       string  `yaml:"interval"`
	AlertThreshold float64 `yaml:"alert_threshold"`
	AlertWindow    string  `yaml:"alert_window"`
	StatsInterval  string  `yaml:"stats_interval"`
	LogFile        string  `yaml:"log_file"`
	Source         string  `yaml:"source"`
	ProcRoot       string  `yaml:"proc_root"`
	CPUAccounting  string  `yaml:"cpu_accounting"`
}

// YAML renders the config in config file syntax.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(fileConfig{
		Interval:       c.Interval.String(),
		AlertThreshold: c.AlertThreshold,
		AlertWindow:    c.AlertWindow.String(),
		StatsInterval:  c.StatsInterval.String(),
		LogFile:        c.LogFile,
		Source:         c.Source,
		ProcRoot:       c.ProcRoot,
		CPUAccounting:  c.CPUAccounting,
	})
}
