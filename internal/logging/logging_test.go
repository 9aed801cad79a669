package logging_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"favmoment/internal/logging"
)

type logConfig struct {
	level string
	dir   string
}

func (c logConfig) GetLogLevel() string     { return c.level }
func (c logConfig) GetLogDirectory() string { return c.dir }
func (c logConfig) GetLogMaxSizeMB() int    { return 1 }
func (c logConfig) GetLogMaxBackups() int   { return 1 }
func (c logConfig) GetLogMaxAgeDays() int   { return 1 }

func TestNewLogger(t *testing.T) {
	t.Run("writes to console and rotated file", func(t *testing.T) {
		dir := t.TempDir()
		var console bytes.Buffer

		logger := logging.NewLogger(logConfig{level: "info", dir: dir}, &console)
		logger.Info("profile saved", slog.String("caption", "Sunset"))

		assert.Contains(t, console.String(), "profile saved")
		assert.Contains(t, console.String(), "caption=Sunset")

		data, err := os.ReadFile(filepath.Join(dir, logging.LogFileName))
		require.NoError(t, err)
		assert.Contains(t, string(data), "profile saved")
	})

	t.Run("filters below configured level", func(t *testing.T) {
		var console bytes.Buffer

		logger := logging.NewLogger(logConfig{level: "warn"}, &console)
		logger.Info("hidden")
		logger.Warn("shown")

		assert.NotContains(t, console.String(), "hidden")
		assert.Contains(t, console.String(), "shown")
	})
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, logging.ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, logging.ParseLevel("WARN"))
	assert.Equal(t, slog.LevelError, logging.ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, logging.ParseLevel("bogus"))
}
