// Package logger provides structured logging for the psytext command.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/tsawler/psytext/internal/config"
)

// Setup builds the logger described by cfg, writing to stderr so command
// output on stdout stays machine-readable, and installs it as the default.
func Setup(cfg config.LogConfig) *slog.Logger {
	logger := New(cfg, os.Stderr)
	slog.SetDefault(logger)
	return logger
}

// New builds a logger writing to w. Unknown levels fall back to info with a
// warning; format "json" selects the JSON handler, anything else text.
func New(cfg config.LogConfig, w io.Writer) *slog.Logger {
	level, ok := ParseLevel(cfg.Level)
	if !ok {
		tmpLogger := slog.New(slog.NewTextHandler(w, nil))
		tmpLogger.Warn("invalid log level configured, using default level",
			"configured_level", cfg.Level,
			"default_level", "info")
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// ParseLevel maps a case-insensitive level name to a slog.Level. It returns
// slog.LevelInfo and false for unknown names.
func ParseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
