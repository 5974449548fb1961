package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// LogLevel is the severity of a log message.
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
)

// String returns the level name.
func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// LogFormat selects the output encoding.
type LogFormat int

const (
	JSONFormat LogFormat = iota
	TextFormat
)

// Entry is one structured log record.
type Entry struct {
	Timestamp string                 `json:"timestamp"`
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Component string                 `json:"component,omitempty"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
	Error     string                 `json:"error,omitempty"`
}

// Logger is a leveled, component-scoped structured logger.
type Logger struct {
	mu        sync.Mutex
	level     LogLevel
	format    LogFormat
	output    io.Writer
	component string
}

// Config holds logger construction options.
type Config struct {
	Level     LogLevel
	Format    LogFormat
	Output    io.Writer
	Component string
}

// New creates a logger; a nil Output defaults to stdout.
func New(cfg Config) *Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	return &Logger{
		level:     cfg.Level,
		format:    cfg.Format,
		output:    cfg.Output,
		component: cfg.Component,
	}
}

// NewDefault creates an INFO-level JSON logger on stdout.
func NewDefault() *Logger {
	return New(Config{Level: INFO, Format: JSONFormat})
}

// WithComponent returns a logger that tags entries with the component name.
func (l *Logger) WithComponent(component string) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	return &Logger{
		level:     l.level,
		format:    l.format,
		output:    l.output,
		component: component,
	}
}

// SetLevel sets the minimum level that will be written.
func (l *Logger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// SetFormat sets the output encoding.
func (l *Logger) SetFormat(format LogFormat) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.format = format
}

func (l *Logger) log(level LogLevel, message string, fields map[string]interface{}, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}

	entry := Entry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     level.String(),
		Message:   message,
		Component: l.component,
		Fields:    fields,
	}
	if err != nil {
		entry.Error = err.Error()
	}

	var line string
	if l.format == JSONFormat {
		raw, _ := json.Marshal(entry)
		line = string(raw) + "\n"
	} else {
		line = formatText(entry)
	}
	l.output.Write([]byte(line))
}

func formatText(entry Entry) string {
	parts := []string{fmt.Sprintf("[%s] %s", entry.Timestamp, entry.Level)}
	if entry.Component != "" {
		parts = append(parts, fmt.Sprintf("[%s]", entry.Component))
	}
	parts = append(parts, entry.Message)
	if len(entry.Fields) > 0 {
		kv := make([]string, 0, len(entry.Fields))
		for k, v := range entry.Fields {
			kv = append(kv, fmt.Sprintf("%s=%v", k, v))
		}
		parts = append(parts, fmt.Sprintf("fields={%s}", strings.Join(kv, ", ")))
	}
	if entry.Error != "" {
		parts = append(parts, fmt.Sprintf("error=%s", entry.Error))
	}
	return strings.Join(parts, " ") + "\n"
}

// Debug logs a debug message with optional fields.
func (l *Logger) Debug(message string, fields ...map[string]interface{}) {
	l.log(DEBUG, message, first(fields), nil)
}

// Info logs an info message with optional fields.
func (l *Logger) Info(message string, fields ...map[string]interface{}) {
	l.log(INFO, message, first(fields), nil)
}

// Warn logs a warning with optional fields.
func (l *Logger) Warn(message string, fields ...map[string]interface{}) {
	l.log(WARN, message, first(fields), nil)
}

// Error logs an error message, attaching err when non-nil.
func (l *Logger) Error(message string, err error, fields ...map[string]interface{}) {
	l.log(ERROR, message, first(fields), err)
}

// Debugf logs a formatted debug message.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.Debug(fmt.Sprintf(format, args...))
}

// Infof logs a formatted info message.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// Warnf logs a formatted warning.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.Warn(fmt.Sprintf(format, args...))
}

// Errorf logs a formatted error message.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...), nil)
}

func first(fields []map[string]interface{}) map[string]interface{} {
	if len(fields) > 0 {
		return fields[0]
	}
	return nil
}
