package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// parseLogLevel parses a string log level (case-insensitive); unknown
// values fall back to info.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Logger adapts slog to the printf-style logger the simulator and batch
// validator take.
type Logger struct {
	log *slog.Logger
}

// NewLogger creates a text logger writing to w at the given level.
func NewLogger(w io.Writer, level string) *Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: parseLogLevel(level)})
	return &Logger{log: slog.New(h)}
}

func (l *Logger) logf(level slog.Level, format string, v []any) {
	ctx := context.Background()
	if !l.log.Enabled(ctx, level) {
		return
	}
	l.log.Log(ctx, level, fmt.Sprintf(format, v...))
}

func (l *Logger) Debugf(format string, v ...any) { l.logf(slog.LevelDebug, format, v) }
func (l *Logger) Infof(format string, v ...any)  { l.logf(slog.LevelInfo, format, v) }
func (l *Logger) Warnf(format string, v ...any)  { l.logf(slog.LevelWarn, format, v) }
func (l *Logger) Errorf(format string, v ...any) { l.logf(slog.LevelError, format, v) }
