package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/pmon/internal/errors"
)

func TestWatch_NoPath(t *testing.T) {
	err := Watch("", func(*Config, error) {})
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestWatch_Reload(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".pmon.yaml")
	require.NoError(t, os.WriteFile(path, []byte("alert_threshold: 60\n"), 0o644))

	changes := make(chan *Config, 4)
	require.NoError(t, Watch(path, func(cfg *Config, err error) {
		if err != nil {
			return
		}
		select {
		case changes <- cfg:
		default:
		}
	}))

	require.NoError(t, os.WriteFile(path, []byte("alert_threshold: 75\n"), 0o644))

	select {
	case cfg := <-changes:
		assert.Equal(t, 75.0, cfg.AlertThreshold)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after config write")
	}
}
