// ABOUTME: Structured logging configuration using log/slog.
// ABOUTME: Provides Init() to configure the default logger writing to stderr.

package logger

import (
	"io"
	"log/slog"
	"strings"
)

// Init configures the default slog logger. Output goes to the given writer
// so TUI rendering on stdout stays clean.
func Init(w io.Writer, level string) {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, opts)))
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
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
