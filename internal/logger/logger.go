// Package logger provides structured logging for the completion engine.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Logger wraps logrus logger
type Logger struct {
	log *logrus.Logger
}

// Entry wraps a logrus entry for method chaining
type Entry struct {
	entry *logrus.Entry
	level logrus.Level
}

// New creates a new logger writing to output at the given level.
// Unknown levels fall back to info.
func New(level string, output io.Writer) *Logger {
	if output == nil {
		output = os.Stderr
	}

	log := logrus.New()
	log.SetOutput(output)

	logLevel, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	log.SetLevel(logLevel)

	log.SetFormatter(&logrus.TextFormatter{
		ForceColors:      true,
		DisableTimestamp: true,
		PadLevelText:     true,
	})

	return &Logger{log: log}
}

// Debug starts a debug-level entry
func (l *Logger) Debug() *Entry {
	return &Entry{entry: logrus.NewEntry(l.log), level: logrus.DebugLevel}
}

// Info starts an info-level entry
func (l *Logger) Info() *Entry {
	return &Entry{entry: logrus.NewEntry(l.log), level: logrus.InfoLevel}
}

// Warn starts a warning-level entry
func (l *Logger) Warn() *Entry {
	return &Entry{entry: logrus.NewEntry(l.log), level: logrus.WarnLevel}
}

// Error starts an error-level entry
func (l *Logger) Error() *Entry {
	return &Entry{entry: logrus.NewEntry(l.log), level: logrus.ErrorLevel}
}

// Str adds a string field
func (e *Entry) Str(key, value string) *Entry {
	e.entry = e.entry.WithField(key, value)
	return e
}

// Int adds an int field
func (e *Entry) Int(key string, value int) *Entry {
	e.entry = e.entry.WithField(key, value)
	return e
}

// Bool adds a bool field
func (e *Entry) Bool(key string, value bool) *Entry {
	e.entry = e.entry.WithField(key, value)
	return e
}

// Err adds an error field
func (e *Entry) Err(err error) *Entry {
	if err != nil {
		e.entry = e.entry.WithError(err)
	}
	return e
}

// Dur adds a duration field (formatted in milliseconds)
func (e *Entry) Dur(key string, duration time.Duration) *Entry {
	ms := float64(duration.Microseconds()) / 1000.0
	e.entry = e.entry.WithField(key, ms)
	return e
}

// Msg logs the message with accumulated fields
func (e *Entry) Msg(msg string) {
	e.entry.Log(e.level, msg)
}
