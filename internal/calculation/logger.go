package calculation

import (
	"fmt"
	"io"
	"log/slog"
)

// Logger is the minimal logging surface used by the calculation and storage
// layers. Implementations decide where the output goes.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger discards everything
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Infof(string, ...any)  {}
func (NopLogger) Warnf(string, ...any)  {}
func (NopLogger) Errorf(string, ...any) {}

// SlogLogger implements Logger on top of log/slog
type SlogLogger struct {
	l *slog.Logger
}

// NewSlogLogger writes text records to w at debug level when debug is set,
// otherwise only warnings and errors.
func NewSlogLogger(w io.Writer, debug bool) SlogLogger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return SlogLogger{l: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))}
}

func (s SlogLogger) Debugf(format string, args ...any) { s.l.Debug(fmt.Sprintf(format, args...)) }
func (s SlogLogger) Infof(format string, args ...any)  { s.l.Info(fmt.Sprintf(format, args...)) }
func (s SlogLogger) Warnf(format string, args ...any)  { s.l.Warn(fmt.Sprintf(format, args...)) }
func (s SlogLogger) Errorf(format string, args ...any) { s.l.Error(fmt.Sprintf(format, args...)) }
