package journal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/pmon/internal/alert"
	"github.com/rileyhilliard/pmon/internal/errors"
	"github.com/rileyhilliard/pmon/internal/logger"
)

var at = time.Date(2024, 3, 1, 12, 30, 45, 0, time.Local)

func TestFile_AppendWarning(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")
	f := NewFile(path, nil)

	require.NoError(t, f.AppendWarning(alert.Event{Time: at, CPUPercent: 75.5, Name: "stress", PID: 4242}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(string(data), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "Warning!", lines[0])
	assert.Equal(t, rule, lines[1])
	assert.Equal(t, "2024-03-01 12:30:45 -> CPU Usage TOO HIGH (75.50%) | process: stress | PID:4242", lines[2])
	assert.Equal(t, rule, lines[3])
	assert.Empty(t, lines[4])
}

func TestFile_AppendStat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")
	f := NewFile(path, nil)

	require.NoError(t, f.AppendStat(alert.StatRecord{Time: at, CPUPercent: 12.345, Processes: 312, MemoryPercent: 75}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Stat\n"+rule+"\n")
	assert.Contains(t, string(data),
		"2024-03-01 12:30:45 -> Total CPU Usage: 12.35%, Total Processes: 312, Total Memory Usage: 75.00%\n")
}

func TestFile_Appends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")
	require.NoError(t, os.WriteFile(path, []byte("previous run\n"), 0o644))
	f := NewFile(path, nil)

	require.NoError(t, f.AppendStat(alert.StatRecord{Time: at}))
	require.NoError(t, f.AppendWarning(alert.Event{Time: at, PID: 1}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.True(t, strings.HasPrefix(content, "previous run\n"))
	assert.Less(t, strings.Index(content, "Stat\n"), strings.Index(content, "Warning!\n"))
}

func TestFile_ReportsFailureOnce(t *testing.T) {
	log := logger.NewBufferLogger()
	f := NewFile(filepath.Join(t.TempDir(), "missing", "dir", "log.txt"), log)

	err := f.AppendWarning(alert.Event{Time: at, PID: 1})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrJournal))

	for i := 0; i < 3; i++ {
		assert.Error(t, f.AppendStat(alert.StatRecord{Time: at}))
	}
	assert.Equal(t, 1, log.Count("error"))
}

func TestFile_Close(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")
	f := NewFile(path, nil)
	require.NoError(t, f.Close())
	require.NoError(t, f.Close())

	err := f.AppendWarning(alert.Event{Time: at})
	assert.True(t, errors.IsCode(err, errors.ErrJournal))
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestNewFile_DefaultPath(t *testing.T) {
	assert.Equal(t, DefaultPath, NewFile("", nil).Path())
}

func TestDiscard(t *testing.T) {
	var s Sink = Discard{}
	assert.NoError(t, s.AppendWarning(alert.Event{}))
	assert.NoError(t, s.AppendStat(alert.StatRecord{}))
	assert.NoError(t, s.Close())
}
