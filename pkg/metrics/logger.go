// Package metrics provides the observability surface of the channel core:
// a leveled structured logger and a pluggable tracing facade with an
// OpenTelemetry adapter. The cryptographic packages never log; logging and
// tracing attach at the transport and application layers.
package metrics

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// Level represents a logging level.
type Level int

// Log levels, in increasing severity. LevelSilent disables all output.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelSilent
)

// String returns the level name.
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
	case LevelSilent:
		return "SILENT"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a level string, defaulting to Info.
func ParseLevel(s string) Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return LevelDebug
	case "INFO":
		return LevelInfo
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	case "SILENT", "OFF", "NONE":
		return LevelSilent
	default:
		return LevelInfo
	}
}

// Fields represents structured log fields.
type Fields map[string]interface{}

// Format specifies the log output format.
type Format int

// Output formats.
const (
	FormatText Format = iota // Human-readable text format
	FormatJSON               // JSON format for log aggregation
)

// Logger provides structured logging with levels.
type Logger struct {
	mu       sync.Mutex
	out      io.Writer
	level    Level
	format   Format
	fields   Fields
	name     string
	timeFunc func() time.Time
}

// LoggerOption configures a logger.
type LoggerOption func(*Logger)

// WithOutput sets the output writer.
func WithOutput(w io.Writer) LoggerOption {
	return func(l *Logger) { l.out = w }
}

// WithLevel sets the minimum log level.
func WithLevel(level Level) LoggerOption {
	return func(l *Logger) { l.level = level }
}

// WithFormat sets the output format.
func WithFormat(format Format) LoggerOption {
	return func(l *Logger) { l.format = format }
}

// WithFields sets default fields for all log entries.
func WithFields(fields Fields) LoggerOption {
	return func(l *Logger) { l.fields = fields }
}

// WithName sets the logger name.
func WithName(name string) LoggerOption {
	return func(l *Logger) { l.name = name }
}

// NewLogger creates a logger writing text to stderr at Info level by default.
func NewLogger(opts ...LoggerOption) *Logger {
	l := &Logger{
		out:      os.Stderr,
		level:    LevelInfo,
		format:   FormatText,
		fields:   Fields{},
		timeFunc: time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Named returns a child logger with the given name appended.
func (l *Logger) Named(name string) *Logger {
	child := l.clone()
	if child.name != "" {
		child.name += "."
	}
	child.name += name
	return child
}

// With returns a child logger carrying additional default fields.
func (l *Logger) With(fields Fields) *Logger {
	child := l.clone()
	for k, v := range fields {
		child.fields[k] = v
	}
	return child
}

// Debug logs at debug level.
func (l *Logger) Debug(msg string, fields Fields) { l.log(LevelDebug, msg, fields) }

// Info logs at info level.
func (l *Logger) Info(msg string, fields Fields) { l.log(LevelInfo, msg, fields) }

// Warn logs at warn level.
func (l *Logger) Warn(msg string, fields Fields) { l.log(LevelWarn, msg, fields) }

// Error logs at error level.
func (l *Logger) Error(msg string, fields Fields) { l.log(LevelError, msg, fields) }

func (l *Logger) clone() *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	fields := make(Fields, len(l.fields))
	for k, v := range l.fields {
		fields[k] = v
	}
	return &Logger{
		out:      l.out,
		level:    l.level,
		format:   l.format,
		fields:   fields,
		name:     l.name,
		timeFunc: l.timeFunc,
	}
}

func (l *Logger) log(level Level, msg string, fields Fields) {
	if level < l.level || l.level == LevelSilent {
		return
	}

	merged := make(Fields, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.timeFunc().UTC()
	switch l.format {
	case FormatJSON:
		entry := map[string]interface{}{
			"ts":    now.Format(time.RFC3339Nano),
			"level": level.String(),
			"msg":   msg,
		}
		if l.name != "" {
			entry["logger"] = l.name
		}
		for k, v := range merged {
			entry[k] = v
		}
		data, err := json.Marshal(entry)
		if err != nil {
			fmt.Fprintf(l.out, `{"level":"ERROR","msg":"log marshal failed: %v"}`+"\n", err)
			return
		}
		l.out.Write(append(data, '\n'))
	default:
		var b strings.Builder
		b.WriteString(now.Format("2006-01-02T15:04:05.000Z"))
		b.WriteString(" ")
		b.WriteString(level.String())
		if l.name != "" {
			b.WriteString(" [")
			b.WriteString(l.name)
			b.WriteString("]")
		}
		b.WriteString(" ")
		b.WriteString(msg)

		keys := make([]string, 0, len(merged))
		for k := range merged {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, " %s=%v", k, merged[k])
		}
		b.WriteString("\n")
		io.WriteString(l.out, b.String())
	}
}
