// Package log wraps slog for internal use by the simtemp SDK.
package log

import (
	"context"
	"log/slog"
	"runtime"

	"github.com/embedded-sdks/simtemp/internal/wallclock"
)

type (
	// Logger is a wrapper around an slog.Logger with additional helpers and
	// nil checking.
	Logger struct{ logger *slog.Logger }

	// Attrs represents an object that exposes extra slog attributes to log.
	Attrs interface {
		Attrs() []slog.Attr
	}
)

// Wrap the slog logger.
func Wrap(logger *slog.Logger) Logger {
	return Logger{logger}
}

// Log is designed to build logging wrappers; it should not be called directly.
// See: https://pkg.go.dev/log/slog#hdr-Wrapping_output_methods
func (l *Logger) Log(
	ctx context.Context,
	level slog.Level,
	msg string,
	attrs ...slog.Attr,
) {
	if l.logger == nil || !l.logger.Enabled(ctx, level) {
		return
	}

	now := wallclock.Instance.Now()
	var pcs [1]uintptr
	runtime.Callers(3, pcs[:])

	r := slog.NewRecord(now, level, msg, pcs[0])
	r.AddAttrs(attrs...)
	_ = l.logger.Handler().Handle(ctx, r)
}

// Debug logs at the debug level.
func (l *Logger) Debug(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.Log(ctx, slog.LevelDebug, msg, attrs...)
}

// Info logs at the info level.
func (l *Logger) Info(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.Log(ctx, slog.LevelInfo, msg, attrs...)
}

// Warn logs at the warn level.
func (l *Logger) Warn(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.Log(ctx, slog.LevelWarn, msg, attrs...)
}

// Err logs an error with structured logging.
func (l *Logger) Err(ctx context.Context, err error, attrs ...slog.Attr) {
	if a, ok := err.(Attrs); ok {
		l.Log(ctx, slog.LevelError, err.Error(), append(a.Attrs(), attrs...)...)
	} else {
		l.Log(ctx, slog.LevelError, err.Error(), attrs...)
	}
}
