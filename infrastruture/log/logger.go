// Package log provides the colored, prefixed loggers used by every
// subsystem. Each component receives its own Logger tagged with a short
// uppercase prefix so interleaved output stays readable.
package log

import (
	"errors"
	"io"
	stdlog "log"
)

const colorReset = "\033[0m"

// Log levels.
const (
	levelInfo    = "INFO"
	levelWarning = "WARNING"
	levelError   = "ERROR"
)

// Logger writes leveled log lines for a single subsystem.
type Logger struct {
	prefix string
	color  string
	out    *stdlog.Logger
}

// New creates a Logger that tags every line with the given prefix in the
// given ANSI color. The color applies to the prefix and level tag only.
func New(prefix, color string, out io.Writer) (*Logger, error) {
	if out == nil {
		return nil, errors.New("logger output must not be nil")
	}

	return &Logger{
		prefix: prefix,
		color:  color,
		out:    stdlog.New(out, "", stdlog.LstdFlags),
	}, nil
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.print(levelInfo, msg)
}

// Warning logs a warning message.
func (l *Logger) Warning(msg string) {
	l.print(levelWarning, msg)
}

// Error logs an error message.
func (l *Logger) Error(msg string) {
	l.print(levelError, msg)
}

func (l *Logger) print(level, msg string) {
	l.out.Printf("%s[%s] [%s]%s %s", l.color, l.prefix, level, colorReset, msg)
}
