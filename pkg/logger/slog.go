package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// SlogLogger adapts a *slog.Logger to Logger. Messages are formatted with
// fmt before being handed to slog.
type SlogLogger struct {
	l *slog.Logger
}

// NewSlogLogger creates a Logger writing to w.
// format is "json" or "text"; anything else falls back to text.
func NewSlogLogger(w io.Writer, level slog.Level, format string) *SlogLogger {
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	switch strings.ToLower(format) {
	case "json":
		h = slog.NewJSONHandler(w, opts)
	default:
		h = slog.NewTextHandler(w, opts)
	}
	return &SlogLogger{l: slog.New(h)}
}

// ParseLevel converts a level name to slog.Level.
// Unknown names map to slog.LevelInfo.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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

func (s *SlogLogger) Info(format string, args ...interface{}) {
	s.log(slog.LevelInfo, format, args...)
}

func (s *SlogLogger) Warning(format string, args ...interface{}) {
	s.log(slog.LevelWarn, format, args...)
}

func (s *SlogLogger) Error(format string, args ...interface{}) {
	s.log(slog.LevelError, format, args...)
}

func (s *SlogLogger) Close() error { return nil }

func (s *SlogLogger) log(level slog.Level, format string, args ...interface{}) {
	ctx := context.Background()
	if !s.l.Enabled(ctx, level) {
		return
	}
	s.l.Log(ctx, level, fmt.Sprintf(format, args...))
}

var _ Logger = (*SlogLogger)(nil)
