// Package logging builds the application's slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Config is the subset of application configuration the logger needs.
type Config interface {
	GetLogLevel() string
	GetLogDirectory() string
	GetLogMaxSizeMB() int
	GetLogMaxBackups() int
	GetLogMaxAgeDays() int
}

// LogFileName is the name of the rotated log file inside the logs directory.
const LogFileName = "favmoment.log"

// NewLogger returns a text logger writing to console and, when a log
// directory is configured, to a rotated file in that directory. A nil
// console disables console output.
func NewLogger(cfg Config, console io.Writer) *slog.Logger {
	var writers []io.Writer
	if console != nil {
		writers = append(writers, console)
	}

	if dir := cfg.GetLogDirectory(); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err == nil {
			writers = append(writers, &lumberjack.Logger{
				Filename:   filepath.Join(dir, LogFileName),
				MaxSize:    cfg.GetLogMaxSizeMB(),
				MaxBackups: cfg.GetLogMaxBackups(),
				MaxAge:     cfg.GetLogMaxAgeDays(),
				Compress:   true,
			})
		}
	}

	var out io.Writer
	switch len(writers) {
	case 0:
		out = io.Discard
	case 1:
		out = writers[0]
	default:
		out = io.MultiWriter(writers...)
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{Level: ParseLevel(cfg.GetLogLevel())})
	return slog.New(handler)
}

// ParseLevel maps a configured level name to a slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
