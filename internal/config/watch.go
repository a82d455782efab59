package config

import (
	"github.com/fsnotify/fsnotify"

	"github.com/rileyhilliard/pmon/internal/errors"
)

// Watch loads path and calls onChange with the re-parsed, validated config
// every time the file is written. A config that fails to parse or validate
// is passed as an error and the caller keeps its current settings.
//
// The watch lasts for the life of the process.
func Watch(path string, onChange func(*Config, error)) error {
	if path == "" {
		return errors.New(errors.ErrConfig,
			"No config file to watch",
			"Create "+ConfigFileName+" or set "+EnvConfig+" to enable live reload.")
	}

	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file exists and is valid YAML")
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		cfg, err := parseConfig(v, path)
		if err == nil {
			err = Validate(cfg)
		}
		if err != nil {
			onChange(nil, err)
			return
		}
		onChange(cfg, nil)
	})
	v.WatchConfig()
	return nil
}
