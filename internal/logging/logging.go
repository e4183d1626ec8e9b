// Package logging provides a leveled logger backed by zerolog.
//
// The API stays printf-style so call sites read like plain log lines, while
// output is either zerolog console text or JSON with structured fields added
// through With.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) zerolog() zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelInfo:
		return zerolog.InfoLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.Disabled
	}
}

// ParseLevel parses a log level string.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Format selects the output encoding.
type Format string

const (
	FormatConsole Format = "console"
	FormatJSON    Format = "json"
)

// ParseFormat parses a format string, defaulting to console.
func ParseFormat(s string) Format {
	if strings.EqualFold(s, string(FormatJSON)) {
		return FormatJSON
	}
	return FormatConsole
}

type field struct {
	key   string
	value interface{}
}

// sink is the destination and minimum level shared by a logger and every
// child derived from it with With.
type sink struct {
	mu    sync.Mutex
	out   io.Writer
	level Level
}

func (s *sink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.out.Write(p)
}

func (s *sink) minLevel() Level {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.level
}

// Logger is a leveled logger. It is safe for concurrent use. Loggers
// derived with With share the parent's output and level, so SetOutput and
// SetLevel on any of them apply to the whole family.
type Logger struct {
	sink   *sink
	format Format
	fields []field
	zl     zerolog.Logger
}

// New creates a console logger writing to stderr.
func New(level Level) *Logger {
	return NewWithFormat(level, FormatConsole, os.Stderr)
}

// NewWithFormat creates a logger with an explicit format and destination.
func NewWithFormat(level Level, format Format, w io.Writer) *Logger {
	return newLogger(&sink{out: w, level: level}, format, nil)
}

func newLogger(s *sink, format Format, fields []field) *Logger {
	var out io.Writer = s
	if format != FormatJSON {
		out = zerolog.ConsoleWriter{
			Out:        s,
			TimeFormat: "15:04:05.000",
			NoColor:    true,
		}
	}

	ctx := zerolog.New(out).With().Timestamp()
	for _, f := range fields {
		ctx = ctx.Interface(f.key, f.value)
	}
	return &Logger{sink: s, format: format, fields: fields, zl: ctx.Logger()}
}

// SetOutput sets the log output destination.
func (l *Logger) SetOutput(w io.Writer) {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.out = w
}

// SetLevel sets the minimum log level.
func (l *Logger) SetLevel(level Level) {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.level = level
}

// Level returns the minimum log level.
func (l *Logger) Level() Level {
	return l.sink.minLevel()
}

// With returns a child logger that adds key=value to every line.
func (l *Logger) With(key string, value interface{}) *Logger {
	fields := append(append([]field(nil), l.fields...), field{key, value})
	return newLogger(l.sink, l.format, fields)
}

// Zerolog returns the backing zerolog logger, filtered at the current level,
// for libraries that take one.
func (l *Logger) Zerolog() zerolog.Logger {
	return l.zl.Level(l.Level().zerolog())
}

func (l *Logger) log(level Level, format string, args ...interface{}) {
	if level < l.Level() {
		return
	}
	l.zl.WithLevel(level.zerolog()).Msgf(format, args...)
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(LevelDebug, format, args...)
}

// Info logs an info message.
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(LevelInfo, format, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(LevelWarn, format, args...)
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(LevelError, format, args...)
}

// Discard returns a logger that discards all output.
func Discard() *Logger {
	return NewWithFormat(LevelError+1, FormatJSON, io.Discard)
}
