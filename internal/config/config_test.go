package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/rileyhilliard/pmon/internal/errors"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 3*time.Second, cfg.Interval)
	assert.Equal(t, 50.0, cfg.AlertThreshold)
	assert.Equal(t, 5*time.Minute, cfg.AlertWindow)
	assert.Equal(t, 5*time.Minute, cfg.StatsInterval)
	assert.Equal(t, "log.txt", cfg.LogFile)
	assert.Equal(t, SourceProcfs, cfg.Source)
	assert.Equal(t, "/proc", cfg.ProcRoot)
	assert.Equal(t, AccountingLifetime, cfg.CPUAccounting)
	assert.NoError(t, Validate(cfg))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ".pmon.yaml")

	content := `
interval: 1s
alert_threshold: 80
alert_window: 10m
stats_interval: 1m
log_file: /var/log/pmon.txt
source: PSUTIL
cpu_accounting: interval
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, time.Second, cfg.Interval)
	assert.Equal(t, 80.0, cfg.AlertThreshold)
	assert.Equal(t, 10*time.Minute, cfg.AlertWindow)
	assert.Equal(t, time.Minute, cfg.StatsInterval)
	assert.Equal(t, "/var/log/pmon.txt", cfg.LogFile)
	assert.Equal(t, SourcePsutil, cfg.Source)
	assert.Equal(t, "/proc", cfg.ProcRoot, "unset keys keep defaults")
	assert.Equal(t, AccountingInterval, cfg.CPUAccounting)
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("PMON_INTERVAL", "750ms")
	t.Setenv("PMON_LOG_FILE", "/tmp/x.txt")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 750*time.Millisecond, cfg.Interval)
	assert.Equal(t, "/tmp/x.txt", cfg.LogFile)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestLoad_InvalidDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".pmon.yaml")
	require.NoError(t, os.WriteFile(path, []byte("interval: soon\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestFind(t *testing.T) {
	t.Run("explicit path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custom.yaml")
		require.NoError(t, os.WriteFile(path, []byte("interval: 2s\n"), 0o644))

		found, err := Find(path)
		require.NoError(t, err)
		assert.Equal(t, path, found)
	})

	t.Run("explicit path missing", func(t *testing.T) {
		_, err := Find(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.True(t, errors.IsCode(err, errors.ErrConfig))
	})

	t.Run("current directory", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)
		t.Setenv("HOME", t.TempDir())
		require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(""), 0o644))

		found, err := Find("")
		require.NoError(t, err)
		assert.Equal(t, ConfigFileName, filepath.Base(found))
	})

	t.Run("global config", func(t *testing.T) {
		t.Chdir(t.TempDir())
		home := t.TempDir()
		t.Setenv("HOME", home)
		global := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		require.NoError(t, os.MkdirAll(filepath.Dir(global), 0o755))
		require.NoError(t, os.WriteFile(global, []byte(""), 0o644))

		found, err := Find("")
		require.NoError(t, err)
		assert.Equal(t, global, found)
	})

	t.Run("nothing found", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("HOME", t.TempDir())

		found, err := Find("")
		require.NoError(t, err)
		assert.Empty(t, found)
	})
}

func TestLoadOrDefault(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "pmon.yaml")
	require.NoError(t, os.WriteFile(path, []byte("alert_threshold: 90\n"), 0o644))
	t.Setenv(EnvConfig, path)

	cfg, loaded, err := LoadOrDefault()
	require.NoError(t, err)
	assert.Equal(t, path, loaded)
	assert.Equal(t, 90.0, cfg.AlertThreshold)
}

func TestLoadOrDefault_NoFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvConfig, "")

	cfg, loaded, err := LoadOrDefault()
	require.NoError(t, err)
	assert.Empty(t, loaded)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestConfig_YAML(t *testing.T) {
	out, err := DefaultConfig().YAML()
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, yaml.Unmarshal(out, &got))
	assert.Equal(t, "3s", got["interval"])
	assert.Equal(t, "5m0s", got["alert_window"])
	assert.Equal(t, "procfs", got["source"])

	// The dump is itself a loadable config.
	path := filepath.Join(t.TempDir(), ".pmon.yaml")
	require.NoError(t, os.WriteFile(path, out, 0o644))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}
