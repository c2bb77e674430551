// Package logger provides structured logging for clinput.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// LevelEnvVar sets the default log level
const LevelEnvVar = "CLINPUT_LOG_LEVEL"

// Logger wraps logrus logger
type Logger struct {
	log    *logrus.Logger
	fields logrus.Fields
}

// Entry accumulates fields for one message. A nil Entry is a disabled
// level: every method is a no-op.
type Entry struct {
	entry *logrus.Entry
	level logrus.Level
}

// New creates a new logger writing to output (stderr when nil). Unknown
// levels fall back to warn.
func New(level string, output io.Writer) *Logger {
	if output == nil {
		output = os.Stderr
	}

	log := logrus.New()
	log.SetOutput(output)
	log.SetLevel(ParseLevel(level))
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		PadLevelText:     true,
	})

	return &Logger{log: log}
}

// Nop returns a logger that discards everything
func Nop() *Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	log.SetLevel(logrus.PanicLevel)
	return &Logger{log: log}
}

// ParseLevel converts a level name, warn when empty or unknown
func ParseLevel(level string) logrus.Level {
	l, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return logrus.WarnLevel
	}
	return l
}

// Level returns the active level name
func (l *Logger) Level() string {
	return l.log.GetLevel().String()
}

// With returns a child logger that tags every entry with component
func (l *Logger) With(component string) *Logger {
	fields := make(logrus.Fields, len(l.fields)+1)
	for k, v := range l.fields {
		fields[k] = v
	}
	fields["component"] = component
	return &Logger{log: l.log, fields: fields}
}

func (l *Logger) at(level logrus.Level) *Entry {
	if !l.log.IsLevelEnabled(level) {
		return nil
	}
	return &Entry{entry: logrus.NewEntry(l.log).WithFields(l.fields), level: level}
}

// Debug starts a debug entry
func (l *Logger) Debug() *Entry { return l.at(logrus.DebugLevel) }

// Info starts an info entry
func (l *Logger) Info() *Entry { return l.at(logrus.InfoLevel) }

// Warn starts a warning entry
func (l *Logger) Warn() *Entry { return l.at(logrus.WarnLevel) }

// Error starts an error entry
func (l *Logger) Error() *Entry { return l.at(logrus.ErrorLevel) }

func (e *Entry) with(key string, value any) *Entry {
	if e == nil {
		return nil
	}
	e.entry = e.entry.WithField(key, value)
	return e
}

// Str adds a string field
func (e *Entry) Str(key, value string) *Entry { return e.with(key, value) }

// Strs adds a list field, rendered space separated
func (e *Entry) Strs(key string, values []string) *Entry {
	return e.with(key, strings.Join(values, " "))
}

// Int adds an int field
func (e *Entry) Int(key string, value int) *Entry { return e.with(key, value) }

// Bool adds a bool field
func (e *Entry) Bool(key string, value bool) *Entry { return e.with(key, value) }

// Float adds a float field
func (e *Entry) Float(key string, value float64) *Entry { return e.with(key, value) }

// Dur adds a duration field in milliseconds
func (e *Entry) Dur(key string, duration time.Duration) *Entry {
	return e.with(key, float64(duration.Microseconds())/1000.0)
}

// Err adds an error field
func (e *Entry) Err(err error) *Entry {
	if e == nil || err == nil {
		return e
	}
	e.entry = e.entry.WithError(err)
	return e
}

// Msg logs the message with accumulated fields
func (e *Entry) Msg(msg string) {
	if e == nil {
		return
	}
	e.entry.Log(e.level, msg)
}

// Msgf logs a formatted message with accumulated fields
func (e *Entry) Msgf(format string, args ...any) {
	if e == nil {
		return
	}
	e.entry.Logf(e.level, format, args...)
}
