// Package logger provides leveled console logging for the adapter and its
// CLI. Output format follows the service log layout used elsewhere in the
// project: timestamp, component, level, message.
package logger

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// ANSI color codes for console output
const (
	ColorReset        = "\033[0m"
	ColorCyan         = "\033[36m"
	ColorGreen        = "\033[32m"
	ColorBrightRed    = "\033[91m"
	ColorBrightYellow = "\033[93m"
	ColorBrightGray   = "\033[90m"
)

// Column widths for aligned output
const (
	ComponentWidth = 16
	LogLevelWidth  = 7
)

// Level is a log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

// ParseLevel maps a severity name to a Level. Unknown names (including the
// server-side severities below WARNING) fall back to LevelDebug so nothing
// is filtered unexpectedly.
func ParseLevel(name string) Level {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "INFO", "NOTICE", "LOG":
		return LevelInfo
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	case "FATAL", "PANIC":
		return LevelFatal
	default:
		return LevelDebug
	}
}

// Logger provides leveled, colored console logging.
type Logger struct {
	component string

	mu           sync.RWMutex
	minLevel     Level
	colorEnabled bool
}

// New creates a new logger for the named component.
func New(component string) *Logger {
	return &Logger{
		component:    component,
		minLevel:     LevelInfo,
		colorEnabled: isTerminal(),
	}
}

// SetMinLevel sets the minimum severity that will be written.
func (l *Logger) SetMinLevel(level Level) {
	l.mu.Lock()
	l.minLevel = level
	l.mu.Unlock()
}

// isTerminal checks if we're outputting to a terminal (for color support)
func isTerminal() bool {
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	fileInfo, _ := os.Stdout.Stat()
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

func (l *Logger) colorFor(level Level) string {
	if !l.colorEnabled {
		return ""
	}
	switch level {
	case LevelDebug:
		return ColorBrightGray
	case LevelInfo:
		return ColorGreen
	case LevelWarn:
		return ColorBrightYellow
	default:
		return ColorBrightRed
	}
}

func levelName(level Level) string {
	switch level {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "FATAL"
	}
}

func (l *Logger) log(level Level, message string) {
	l.mu.RLock()
	minLevel := l.minLevel
	l.mu.RUnlock()

	if level < minLevel {
		return
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05.000")
	color := l.colorFor(level)
	timeColor, resetColor := "", ""
	if l.colorEnabled {
		timeColor = ColorCyan
		resetColor = ColorReset
	}

	component := fmt.Sprintf("%-*s", ComponentWidth, l.component)
	formattedLevel := fmt.Sprintf("%-*s", LogLevelWidth, levelName(level))

	fmt.Printf("%s[%s] [%s] [%s%s%s] %s%s\n",
		timeColor, timestamp, component, color, formattedLevel, resetColor, message, resetColor)
}

// Debug logs a debug message.
func (l *Logger) Debug(message string) {
	l.log(LevelDebug, message)
}

// Debugf logs a formatted debug message.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.log(LevelDebug, fmt.Sprintf(format, args...))
}

// Info logs an info message.
func (l *Logger) Info(message string) {
	l.log(LevelInfo, message)
}

// Infof logs a formatted info message.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.log(LevelInfo, fmt.Sprintf(format, args...))
}

// Warn logs a warning message.
func (l *Logger) Warn(message string) {
	l.log(LevelWarn, message)
}

// Warnf logs a formatted warning message.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.log(LevelWarn, fmt.Sprintf(format, args...))
}

// Error logs an error message.
func (l *Logger) Error(message string) {
	l.log(LevelError, message)
}

// Errorf logs a formatted error message.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.log(LevelError, fmt.Sprintf(format, args...))
}

// Fatal logs a fatal message and exits.
func (l *Logger) Fatal(message string) {
	l.log(LevelFatal, message)
	os.Exit(1)
}

// Fatalf logs a formatted fatal message and exits.
func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.log(LevelFatal, fmt.Sprintf(format, args...))
	os.Exit(1)
}
