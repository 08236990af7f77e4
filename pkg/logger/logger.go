// SPDX-FileCopyrightText: © 2025 Nfrastack <code@nfrastack.com>
//
// SPDX-License-Identifier: BSD-3-Clause

// Package logger provides unified logging functionality for snap-confine
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Log levels
const (
	LevelTrace   = "trace"
	LevelDebug   = "debug"
	LevelVerbose = "verbose"
	LevelInfo    = "info"
	LevelWarn    = "warn"
	LevelError   = "error"
)

// DebugEnv forces debug logging when set to anything but "", "0" or "no".
const DebugEnv = "SNAP_CONFINE_DEBUG"

// LogLevel represents the log level as an enum-like type
type LogLevel int

const (
	LogLevelError   LogLevel = iota // 0 - Least verbose (only errors)
	LogLevelWarn                    // 1
	LogLevelInfo                    // 2
	LogLevelVerbose                 // 3
	LogLevelDebug                   // 4
	LogLevelTrace                   // 5 - Most verbose (everything)
	LogLevelNone                    // 6 - For invalid levels
)

var levelLabels = map[LogLevel]string{
	LogLevelError:   "ERROR",
	LogLevelWarn:    "WARN",
	LogLevelInfo:    "INFO",
	LogLevelVerbose: "VERBOSE",
	LogLevelDebug:   "DEBUG",
	LogLevelTrace:   "TRACE",
}

// ParseLogLevel converts a string to LogLevel
func ParseLogLevel(levelStr string) LogLevel {
	switch strings.ToLower(levelStr) {
	case LevelError:
		return LogLevelError
	case LevelWarn:
		return LogLevelWarn
	case LevelInfo:
		return LogLevelInfo
	case LevelVerbose:
		return LogLevelVerbose
	case LevelDebug:
		return LogLevelDebug
	case LevelTrace:
		return LogLevelTrace
	default:
		return LogLevelNone
	}
}

// Rotation holds the lumberjack settings used when logging to a file
type Rotation struct {
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
}

// Options configures the default logger
type Options struct {
	Level          string
	ShowTimestamps bool
	File           string
	Rotation       Rotation
}

// Logger provides logging functionality for the application
type Logger struct {
	mu             sync.Mutex
	out            io.Writer
	file           *lumberjack.Logger
	level          LogLevel
	showTimestamps bool
}

var (
	defaultMu     sync.Mutex
	defaultLogger *Logger
)

// DebugRequested reports whether the environment asks for debug output
func DebugRequested() bool {
	switch strings.ToLower(os.Getenv(DebugEnv)) {
	case "", "0", "no", "false":
		return false
	}
	return true
}

// OptionsFromEnv returns logger options derived from LOG_LEVEL and SNAP_CONFINE_DEBUG
func OptionsFromEnv() Options {
	return Options{Level: os.Getenv("LOG_LEVEL")}
}

// NewLogger creates a logger writing to out, and to opts.File when set
func NewLogger(out io.Writer, opts Options) *Logger {
	level := ParseLogLevel(opts.Level)
	if level == LogLevelNone {
		level = LogLevelInfo
	}
	if DebugRequested() && level < LogLevelDebug {
		level = LogLevelDebug
	}

	l := &Logger{
		out:            out,
		level:          level,
		showTimestamps: opts.ShowTimestamps,
	}

	if opts.File != "" {
		l.file = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.Rotation.MaxSize,
			MaxBackups: opts.Rotation.MaxBackups,
			MaxAge:     opts.Rotation.MaxAge,
			Compress:   opts.Rotation.Compress,
		}
		l.out = io.MultiWriter(out, l.file)
	}

	return l
}

// Initialize replaces the default logger. Any previously opened log file is closed.
func Initialize(opts Options) {
	next := NewLogger(os.Stderr, opts)

	defaultMu.Lock()
	prev := defaultLogger
	defaultLogger = next
	defaultMu.Unlock()

	if prev != nil {
		prev.Close()
	}
}

// SetDefault installs l as the default logger and returns the previous one
func SetDefault(l *Logger) *Logger {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	prev := defaultLogger
	defaultLogger = l
	return prev
}

// GetLogger returns the default logger instance
func GetLogger() *Logger {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLogger == nil {
		defaultLogger = NewLogger(os.Stderr, OptionsFromEnv())
	}
	return defaultLogger
}

// Close releases the log file, if any
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// Level returns the current logger level
func (l *Logger) Level() LogLevel {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// SetLevel sets the logger level; unknown names are ignored
func (l *Logger) SetLevel(level string) {
	parsed := ParseLogLevel(level)
	if parsed == LogLevelNone {
		return
	}
	l.mu.Lock()
	l.level = parsed
	l.mu.Unlock()
}

// emit writes one line if level passes threshold. override adds the "*" marker.
func (l *Logger) emit(level LogLevel, threshold LogLevel, override bool, prefix, format string, args ...interface{}) {
	if level > threshold {
		return
	}

	message := fmt.Sprintf(format, args...)
	if prefix != "" {
		message = fmt.Sprintf("[%s] %s", prefix, message)
	}

	label := levelLabels[level]
	if override {
		label = "*" + label
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.showTimestamps {
		timestamp := time.Now().Format("2006-01-02 15:04:05")
		fmt.Fprintf(l.out, "%s %8s %s\n", timestamp, label, message)
	} else {
		fmt.Fprintf(l.out, "%8s %s\n", label, message)
	}
}

func (l *Logger) log(level LogLevel, format string, args ...interface{}) {
	l.emit(level, l.Level(), false, "", format, args...)
}

// Error logs an error message with optional formatting
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(LogLevelError, format, args...)
}

// Warn logs a warning message with optional formatting
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(LogLevelWarn, format, args...)
}

// Info logs an info message with optional formatting
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(LogLevelInfo, format, args...)
}

// Verbose logs a verbose message with optional formatting
func (l *Logger) Verbose(format string, args ...interface{}) {
	l.log(LogLevelVerbose, format, args...)
}

// Debug logs a debug message with optional formatting
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(LogLevelDebug, format, args...)
}

// Trace logs a trace message with optional formatting
func (l *Logger) Trace(format string, args ...interface{}) {
	l.log(LogLevelTrace, format, args...)
}

// Helper functions that use the default logger

// Error logs an error message with the default logger
func Error(format string, args ...interface{}) {
	GetLogger().Error(format, args...)
}

// Warn logs a warning message with the default logger
func Warn(format string, args ...interface{}) {
	GetLogger().Warn(format, args...)
}

// Info logs an info message with the default logger
func Info(format string, args ...interface{}) {
	GetLogger().Info(format, args...)
}

// Verbose logs a verbose message with the default logger
func Verbose(format string, args ...interface{}) {
	GetLogger().Verbose(format, args...)
}

// Debug logs a debug message with the default logger
func Debug(format string, args ...interface{}) {
	GetLogger().Debug(format, args...)
}

// Trace logs a trace message with the default logger
func Trace(format string, args ...interface{}) {
	GetLogger().Trace(format, args...)
}

// TraceFunction logs function entry and exit with timing
func TraceFunction(funcName string) func() {
	l := GetLogger()
	if l.Level() < LogLevelTrace {
		return func() {}
	}

	start := time.Now()
	l.Trace("ENTER: %s", funcName)

	return func() {
		l.Trace("EXIT: %s (took %v)", funcName, time.Since(start))
	}
}
