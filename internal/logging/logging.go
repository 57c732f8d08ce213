package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/lmittmann/tint"
)

var (
	disabled atomic.Bool
	level    = new(slog.LevelVar)
	logger   atomic.Pointer[slog.Logger]
)

func init() {
	SetOutput(os.Stdout)
}

// SetOutput sends log output to w through a colorized console handler.
// Color is only used when w is a terminal.
func SetOutput(w io.Writer) {
	noColor := true
	if f, ok := w.(*os.File); ok {
		if fi, err := f.Stat(); err == nil && fi.Mode()&os.ModeCharDevice != 0 {
			noColor = false
		}
	}
	logger.Store(slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.DateTime,
		NoColor:    noColor,
	})))
}

// SetLevel sets the minimum level by name: debug, info, warn or error.
// Unknown names leave the level unchanged.
func SetLevel(name string) {
	switch strings.ToLower(name) {
	case "debug":
		level.Set(slog.LevelDebug)
	case "info", "":
		level.Set(slog.LevelInfo)
	case "warn", "warning":
		level.Set(slog.LevelWarn)
	case "error":
		level.Set(slog.LevelError)
	}
}

// SetVerbose switches debug output on or off.
func SetVerbose(on bool) {
	if on {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}
}

// Slog returns the underlying structured logger.
func Slog() *slog.Logger {
	return logger.Load()
}

// Disable turns off all logging
func Disable() {
	disabled.Store(true)
}

// Enable turns logging back on
func Enable() {
	disabled.Store(false)
}

func emit(lvl slog.Level, msg string, attrs ...any) {
	if disabled.Load() {
		return
	}
	logger.Load().Log(context.Background(), lvl, msg, attrs...)
}

// Info logs an info message
func Info(v ...any) {
	emit(slog.LevelInfo, fmt.Sprint(v...))
}

// Infof logs a formatted info message
func Infof(format string, v ...any) {
	emit(slog.LevelInfo, fmt.Sprintf(format, v...))
}

// Error logs an error message
func Error(v ...any) {
	emit(slog.LevelError, fmt.Sprint(v...))
}

// Errorf logs a formatted error message
func Errorf(format string, v ...any) {
	emit(slog.LevelError, fmt.Sprintf(format, v...))
}

// Warn logs a warning message
func Warn(v ...any) {
	emit(slog.LevelWarn, fmt.Sprint(v...))
}

// Warnf logs a formatted warning message
func Warnf(format string, v ...any) {
	emit(slog.LevelWarn, fmt.Sprintf(format, v...))
}

// Debug logs a debug message
func Debug(v ...any) {
	emit(slog.LevelDebug, fmt.Sprint(v...))
}

// Debugf logs a formatted debug message
func Debugf(format string, v ...any) {
	emit(slog.LevelDebug, fmt.Sprintf(format, v...))
}

// Logger carries key/value attributes onto every message, e.g. a session key.
type Logger struct {
	attrs []any
}

// With returns a Logger that appends the given key/value pairs.
func With(args ...any) Logger {
	return Logger{attrs: args}
}

// WithContext returns a Logger tagged with the request ID chi assigned
// to ctx, if any.
func WithContext(ctx context.Context) Logger {
	if id := chimw.GetReqID(ctx); id != "" {
		return With("request", id)
	}
	return Logger{}
}

// Info logs an info message
func (l Logger) Info(msg string) {
	emit(slog.LevelInfo, msg, l.attrs...)
}

// Infof logs a formatted info message
func (l Logger) Infof(format string, v ...any) {
	emit(slog.LevelInfo, fmt.Sprintf(format, v...), l.attrs...)
}

// Errorf logs a formatted error message
func (l Logger) Errorf(format string, v ...any) {
	emit(slog.LevelError, fmt.Sprintf(format, v...), l.attrs...)
}

// Warnf logs a formatted warning message
func (l Logger) Warnf(format string, v ...any) {
	emit(slog.LevelWarn, fmt.Sprintf(format, v...), l.attrs...)
}

// Debugf logs a formatted debug message
func (l Logger) Debugf(format string, v ...any) {
	emit(slog.LevelDebug, fmt.Sprintf(format, v...), l.attrs...)
}
