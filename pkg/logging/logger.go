package logging

import (
	"fmt"
	"log"

	"github.com/fatih/color"
)

// Logger is the main logger type. It has the property that it still functions
// if nil (every method is a no-op on a nil receiver), so callers can pass a
// nil *Logger around wherever logging is optional. Loggers are arranged in a
// hierarchy: Sublogger derives a new logger that prefixes every line with its
// own name, joined to its parent's prefix with a dot. It is safe for
// concurrent use because it holds no mutable state beyond its own
// construction.
type Logger struct {
	// prefix is any prefix specified for the logger.
	prefix string
	// level is the minimum level at which this logger is enabled. Lines
	// logged at a more verbose level than this are dropped without formatting
	// their arguments.
	level Level
}

// RootLogger is the root logger from which all other loggers derive. Its
// level defaults to LevelInfo; NewRootLogger can be used to construct an
// independent root at a different level (primarily for tests).
var RootLogger = &Logger{level: LevelInfo}

// NewRootLogger creates a new root logger at the specified level.
func NewRootLogger(level Level) *Logger {
	return &Logger{level: level}
}

// Sublogger creates a new sublogger with the specified name, inheriting its
// parent's level.
func (l *Logger) Sublogger(name string) *Logger {
	if l == nil {
		return nil
	}
	prefix := name
	if l.prefix != "" {
		prefix = l.prefix + "." + name
	}
	return &Logger{prefix: prefix, level: l.level}
}

// Level returns the logger's configured level.
func (l *Logger) Level() Level {
	if l == nil {
		return LevelDisabled
	}
	return l.level
}

// enabled reports whether a line at the given level would actually be
// printed, allowing callers to skip expensive argument formatting.
func (l *Logger) enabled(level Level) bool {
	return l != nil && l.level >= level
}

// output is the internal logging method.
func (l *Logger) output(line string) {
	if l.prefix != "" {
		line = fmt.Sprintf("[%s] %s", l.prefix, line)
	}
	log.Output(3, line)
}

// Trace logs low-level execution information.
func (l *Logger) Trace(v ...any) {
	if l.enabled(LevelTrace) {
		l.output(fmt.Sprint(v...))
	}
}

// Tracef logs low-level execution information with Printf-style formatting.
func (l *Logger) Tracef(format string, v ...any) {
	if l.enabled(LevelTrace) {
		l.output(fmt.Sprintf(format, v...))
	}
}

// Debug logs advanced execution information.
func (l *Logger) Debug(v ...any) {
	if l.enabled(LevelDebug) {
		l.output(fmt.Sprint(v...))
	}
}

// Debugf logs advanced execution information with Printf-style formatting.
func (l *Logger) Debugf(format string, v ...any) {
	if l.enabled(LevelDebug) {
		l.output(fmt.Sprintf(format, v...))
	}
}

// Info logs basic execution information.
func (l *Logger) Info(v ...any) {
	if l.enabled(LevelInfo) {
		l.output(fmt.Sprint(v...))
	}
}

// Infof logs basic execution information with Printf-style formatting.
func (l *Logger) Infof(format string, v ...any) {
	if l.enabled(LevelInfo) {
		l.output(fmt.Sprintf(format, v...))
	}
}

// Warn logs a non-fatal problem.
func (l *Logger) Warn(v ...any) {
	if l.enabled(LevelWarn) {
		l.output(color.YellowString("warning: %s", fmt.Sprint(v...)))
	}
}

// Warnf logs a non-fatal problem with Printf-style formatting.
func (l *Logger) Warnf(format string, v ...any) {
	if l.enabled(LevelWarn) {
		l.output(color.YellowString("warning: %s", fmt.Sprintf(format, v...)))
	}
}

// Error logs a fatal problem.
func (l *Logger) Error(v ...any) {
	if l.enabled(LevelError) {
		l.output(color.RedString("error: %s", fmt.Sprint(v...)))
	}
}

// Errorf logs a fatal problem with Printf-style formatting.
func (l *Logger) Errorf(format string, v ...any) {
	if l.enabled(LevelError) {
		l.output(color.RedString("error: %s", fmt.Sprintf(format, v...)))
	}
}
