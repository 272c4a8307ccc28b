package logger

import (
	"io"
	"log/slog"
	"strings"
)

// New builds a logger whose minimum level is parsed from a LOGLEVEL-style string.
func New(level string, handler func(level slog.Level) slog.Handler) *slog.Logger {
	return slog.New(handler(ParseLevel(level)))
}

// NewTestHandler formats records like production and throws them away.
func NewTestHandler(level slog.Level) slog.Handler {
	return NewCloudRunHandlerTo(io.Discard, level)
}

// ParseLevel falls back to info for unknown values.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
