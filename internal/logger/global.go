package logger

import (
	"os"
	"strings"
)

var globalLogger *Logger

func init() {
	globalLogger = NewDefault()
	configureFromEnv()
}

func configureFromEnv() {
	if levelStr := os.Getenv("LOG_LEVEL"); levelStr != "" {
		if level, ok := ParseLevel(levelStr); ok {
			globalLogger.SetLevel(level)
		}
	}
	if formatStr := os.Getenv("LOG_FORMAT"); formatStr != "" {
		if format, ok := parseFormat(formatStr); ok {
			globalLogger.SetFormat(format)
		}
	}
}

// ParseLevel parses a level name, case-insensitively.
func ParseLevel(level string) (LogLevel, bool) {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return DEBUG, true
	case "INFO":
		return INFO, true
	case "WARN", "WARNING":
		return WARN, true
	case "ERROR":
		return ERROR, true
	default:
		return INFO, false
	}
}

func parseFormat(format string) (LogFormat, bool) {
	switch strings.ToLower(format) {
	case "json":
		return JSONFormat, true
	case "text":
		return TextFormat, true
	default:
		return JSONFormat, false
	}
}

// Global returns the process-wide logger.
func Global() *Logger {
	return globalLogger
}

// SetGlobal replaces the process-wide logger.
func SetGlobal(l *Logger) {
	globalLogger = l
}

// Debug logs a debug message on the global logger.
func Debug(message string, fields ...map[string]interface{}) {
	globalLogger.Debug(message, fields...)
}

// Info logs an info message on the global logger.
func Info(message string, fields ...map[string]interface{}) {
	globalLogger.Info(message, fields...)
}

// Warn logs a warning on the global logger.
func Warn(message string, fields ...map[string]interface{}) {
	globalLogger.Warn(message, fields...)
}

// Error logs an error on the global logger.
func Error(message string, err error, fields ...map[string]interface{}) {
	globalLogger.Error(message, err, fields...)
}

// Debugf logs a formatted debug message on the global logger.
func Debugf(format string, args ...interface{}) {
	globalLogger.Debugf(format, args...)
}

// Infof logs a formatted info message on the global logger.
func Infof(format string, args ...interface{}) {
	globalLogger.Infof(format, args...)
}

// Warnf logs a formatted warning on the global logger.
func Warnf(format string, args ...interface{}) {
	globalLogger.Warnf(format, args...)
}

// Errorf logs a formatted error on the global logger.
func Errorf(format string, args ...interface{}) {
	globalLogger.Errorf(format, args...)
}
