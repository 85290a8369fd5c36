// Package logging provides the leveled diagnostic logger injected into every
// pipeline component. There is no package-level logger on purpose: components
// receive a Logger at construction time.
package logging

import (
	"fmt"
	"io"
	"log"
	"strings"
)

// Level controls how much the logger writes.
type Level int

const (
	LevelError Level = iota
	LevelInfo
	LevelDebug
)

var levelStrings = map[string]Level{
	"ERROR": LevelError,
	"INFO":  LevelInfo,
	"DEBUG": LevelDebug,
}

var prefixes = map[Level]string{
	LevelError: "[ERROR] ",
	LevelInfo:  "[INFO ] ",
	LevelDebug: "[DEBUG] ",
}

// Logger records diagnostic messages.
type Logger interface {
	Errorf(format string, args ...any)
	Infof(format string, args ...any)
	Debugf(format string, args ...any)
}

// ParseLevel converts a level name (case-insensitive) into a Level.
func ParseLevel(s string) (Level, error) {
	lvl, ok := levelStrings[strings.ToUpper(strings.TrimSpace(s))]
	if !ok {
		return LevelError, fmt.Errorf("invalid log level %q", s)
	}
	return lvl, nil
}

// Log writes prefixed messages to a single writer, filtered by level.
type Log struct {
	level Level
	out   *log.Logger
}

// New creates a logger writing to w at the given level.
func New(level Level, w io.Writer) *Log {
	return &Log{level: level, out: log.New(w, "", log.LstdFlags)}
}

func (l *Log) write(lvl Level, format string, args ...any) {
	if lvl > l.level {
		return
	}
	l.out.Printf(prefixes[lvl]+format, args...)
}

// Errorf records an error message.
func (l *Log) Errorf(format string, args ...any) { l.write(LevelError, format, args...) }

// Infof records an informational message.
func (l *Log) Infof(format string, args ...any) { l.write(LevelInfo, format, args...) }

// Debugf records a debug message.
func (l *Log) Debugf(format string, args ...any) { l.write(LevelDebug, format, args...) }

// Nop is a Logger that discards everything.
type Nop struct{}

func (Nop) Errorf(string, ...any) {}
func (Nop) Infof(string, ...any)  {}
func (Nop) Debugf(string, ...any) {}
