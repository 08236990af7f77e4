// SPDX-FileCopyrightText: © 2025 Nfrastack <code@nfrastack.com>
//
// SPDX-License-Identifier: BSD-3-Clause

package logger

// ScopedLogger provides component-specific logging with optional level override
type ScopedLogger struct {
	prefix     string
	level      LogLevel
	isOverride bool // Track if this logger has a level override
}

// NewScopedLogger creates a new scoped logger with an optional log level override.
// Without an override the scoped logger follows the default logger's level,
// including changes made after it was created.
func NewScopedLogger(prefix, logLevel string) *ScopedLogger {
	sl := &ScopedLogger{prefix: prefix, level: LogLevelNone}
	if level := ParseLogLevel(logLevel); level != LogLevelNone {
		sl.level = level
		sl.isOverride = true
	}
	return sl
}

// Prefix returns the scope name
func (sl *ScopedLogger) Prefix() string {
	return sl.prefix
}

func (sl *ScopedLogger) threshold(l *Logger) LogLevel {
	if sl.isOverride {
		return sl.level
	}
	return l.Level()
}

func (sl *ScopedLogger) log(level LogLevel, format string, args ...interface{}) {
	l := GetLogger()
	l.emit(level, sl.threshold(l), sl.isOverride, sl.prefix, format, args...)
}

// Error logs an error message through the scoped logger
func (sl *ScopedLogger) Error(format string, args ...interface{}) {
	sl.log(LogLevelError, format, args...)
}

// Warn logs a warning message through the scoped logger
func (sl *ScopedLogger) Warn(format string, args ...interface{}) {
	sl.log(LogLevelWarn, format, args...)
}

// Info logs an info message through the scoped logger
func (sl *ScopedLogger) Info(format string, args ...interface{}) {
	sl.log(LogLevelInfo, format, args...)
}

// Verbose logs a verbose message through the scoped logger
func (sl *ScopedLogger) Verbose(format string, args ...interface{}) {
	sl.log(LogLevelVerbose, format, args...)
}

// Debug logs a debug message through the scoped logger
func (sl *ScopedLogger) Debug(format string, args ...interface{}) {
	sl.log(LogLevelDebug, format, args...)
}

// Trace logs a trace message through the scoped logger
func (sl *ScopedLogger) Trace(format string, args ...interface{}) {
	sl.log(LogLevelTrace, format, args...)
}
