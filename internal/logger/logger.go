// Package logger provides a simple leveled logger for the application.
// It supports three levels: off (no output), normal (info/warn/error),
// and verbose (includes debug). Output is produced by a zap console core;
// the logger is safe for concurrent use.
package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level controls the verbosity of the logger.
type Level int

const (
	// LevelOff disables all log output.
	LevelOff Level = iota
	// LevelNormal enables info, warn, and error output.
	LevelNormal
	// LevelVerbose enables all output including debug.
	LevelVerbose
)

// ParseLevel maps "off", "normal" and "verbose" (or "quiet"/"debug") to a Level.
// Anything else is LevelNormal.
func ParseLevel(s string) Level {
	switch s {
	case "off", "quiet", "none":
		return LevelOff
	case "verbose", "debug":
		return LevelVerbose
	default:
		return LevelNormal
	}
}

// Logger is a leveled logger. All methods are safe for concurrent use.
type Logger struct {
	atom  zap.AtomicLevel
	sugar *zap.SugaredLogger
}

// New creates a logger with the given level, writing to the given output.
// If out is nil, os.Stderr is used.
func New(level Level, out io.Writer) *Logger {
	if out == nil {
		out = os.Stderr
	}

	enc := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:          "T",
		LevelKey:         "L",
		MessageKey:       "M",
		EncodeTime:       zapcore.TimeEncoderOfLayout("15:04:05"),
		EncodeLevel:      tagLevel,
		ConsoleSeparator: " ",
	})

	l := &Logger{atom: zap.NewAtomicLevel()}
	l.SetLevel(level)
	core := zapcore.NewCore(enc, zapcore.AddSync(out), l.atom)
	l.sugar = zap.New(core).Sugar()
	return l
}

// tagLevel renders levels as short bracketed tags.
func tagLevel(lvl zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	switch lvl {
	case zapcore.DebugLevel:
		enc.AppendString("[DBG]")
	case zapcore.InfoLevel:
		enc.AppendString("[INF]")
	case zapcore.WarnLevel:
		enc.AppendString("[WRN]")
	default:
		enc.AppendString("[ERR]")
	}
}

// SetLevel changes the log level at runtime.
func (l *Logger) SetLevel(level Level) {
	switch level {
	case LevelOff:
		l.atom.SetLevel(zapcore.FatalLevel + 1)
	case LevelVerbose:
		l.atom.SetLevel(zapcore.DebugLevel)
	default:
		l.atom.SetLevel(zapcore.InfoLevel)
	}
}

// GetLevel returns the current log level.
func (l *Logger) GetLevel() Level {
	switch lvl := l.atom.Level(); {
	case lvl > zapcore.FatalLevel:
		return LevelOff
	case lvl <= zapcore.DebugLevel:
		return LevelVerbose
	default:
		return LevelNormal
	}
}

// Debug logs a message at debug level (only visible in verbose mode).
func (l *Logger) Debug(format string, args ...any) {
	l.sugar.Debugf(format, args...)
}

// Info logs a message at info level.
func (l *Logger) Info(format string, args ...any) {
	l.sugar.Infof(format, args...)
}

// Warn logs a message at warn level.
func (l *Logger) Warn(format string, args ...any) {
	l.sugar.Warnf(format, args...)
}

// Error logs a message at error level.
func (l *Logger) Error(format string, args ...any) {
	l.sugar.Errorf(format, args...)
}

// Sync flushes buffered output.
func (l *Logger) Sync() error {
	return l.sugar.Sync()
}
