package converter

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// =============================================================================
// LOGGER
// =============================================================================

// Logger is the logging interface used by the converter.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// NewLogger returns a Logger writing slog text records to w.
//
// PARAMETERS:
//   - w: The destination, normally os.Stderr.
//   - level: "debug", "info", "warn" or "error". Unknown values mean "info".
func NewLogger(w io.Writer, level string) Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: parseLevel(level)})
	return &slogLogger{logger: slog.New(handler)}
}

// With returns a Logger that adds key/value attributes to every record.
// Loggers not created by NewLogger are returned unchanged.
func With(l Logger, args ...any) Logger {
	if sl, ok := l.(*slogLogger); ok {
		return &slogLogger{logger: sl.logger.With(args...)}
	}
	return l
}

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

// slogLogger adapts *slog.Logger to the printf-style Logger interface.
type slogLogger struct {
	logger *slog.Logger
}

func (l *slogLogger) log(level slog.Level, msg string, args []interface{}) {
	ctx := context.Background()
	if !l.logger.Enabled(ctx, level) {
		return
	}
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	l.logger.Log(ctx, level, msg)
}

func (l *slogLogger) Debug(msg string, args ...interface{}) { l.log(slog.LevelDebug, msg, args) }
func (l *slogLogger) Info(msg string, args ...interface{})  { l.log(slog.LevelInfo, msg, args) }
func (l *slogLogger) Warn(msg string, args ...interface{})  { l.log(slog.LevelWarn, msg, args) }
func (l *slogLogger) Error(msg string, args ...interface{}) { l.log(slog.LevelError, msg, args) }
