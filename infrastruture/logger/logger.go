// Package logger provides the colored console logger the services log
// through. Each component gets its own named, colored instance.
package logger

import (
	"errors"
	"io"
	"log"
)

const colorReset = "\033[0m"

// Logger writes leveled, prefixed log lines to a writer.
type Logger struct {
	name  string
	color string
	out   *log.Logger
}

// New creates a logger named name whose prefix is wrapped in the given
// ANSI color.
func New(name, color string, w io.Writer) (*Logger, error) {
	if name == "" {
		return nil, errors.New("logger name required")
	}
	return &Logger{
		name:  name,
		color: color,
		out:   log.New(w, "", log.LstdFlags),
	}, nil
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.print("INFO", msg)
}

// Error logs an error message.
func (l *Logger) Error(msg string) {
	l.print("ERROR", msg)
}

func (l *Logger) print(level, msg string) {
	l.out.Printf("%s[%s]%s [%s] %s", l.color, l.name, colorReset, level, msg)
}
