package config

import (
	"fmt"

	"github.com/rileyhilliard/pmon/internal/errors"
)

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New(errors.ErrConfig,
			"Config is nil",
			"This is unexpected - try reloading the configuration.")
	}

	if cfg.Interval < MinInterval {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("interval %s is too short", cfg.Interval),
			fmt.Sprintf("Use at least %s; every poll reads the whole process table.", MinInterval))
	}

	if cfg.AlertThreshold <= 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("alert_threshold must be positive, got %g", cfg.AlertThreshold),
			"Try the default of 50. Values above 100 are fine on multi-core machines.")
	}

	if cfg.AlertWindow <= 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("alert_window must be positive, got %s", cfg.AlertWindow),
			"Try something like '5m'.")
	}

	if cfg.StatsInterval <= 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("stats_interval must be positive, got %s", cfg.StatsInterval),
			"Try something like '5m'.")
	}

	if cfg.LogFile == "" {
		return errors.New(errors.ErrConfig,
			"log_file is empty",
			"Set it to a writable path, e.g. 'log.txt'.")
	}

	switch cfg.Source {
	case SourceProcfs:
		if cfg.ProcRoot == "" {
			return errors.New(errors.ErrConfig,
				"proc_root is empty",
				"Set it to the proc mount point, usually '/proc'.")
		}
	case SourcePsutil:
	default:
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown source '%s'", cfg.Source),
			fmt.Sprintf("Use '%s' or '%s'.", SourceProcfs, SourcePsutil))
	}

	switch cfg.CPUAccounting {
	case AccountingLifetime, AccountingInterval:
	default:
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown cpu_accounting '%s'", cfg.CPUAccounting),
			fmt.Sprintf("Use '%s' or '%s'.", AccountingLifetime, AccountingInterval))
	}

	return nil
}
