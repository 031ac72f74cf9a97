package logging

import (
	"bytes"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel defines the severity of the message
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
)

// Logger interface defines logging operations
//
//go:generate mockery --name=Logger --output=./mocks
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
	SetOutput(w io.Writer)
	SetLevel(level LogLevel)
}

// DefaultLogger is a Logger backed by a zap SugaredLogger writing console lines.
type DefaultLogger struct {
	writer io.Writer
	level  zap.AtomicLevel
	sugar  *zap.SugaredLogger
}

// NewDefaultLogger creates a logger writing to stderr at INFO level.
func NewDefaultLogger() *DefaultLogger {
	return newLogger(os.Stderr, INFO)
}

// NewMockLogger returns a logger that discards into an in-memory buffer, for tests.
func NewMockLogger() *DefaultLogger {
	return newLogger(bytes.NewBufferString(""), INFO)
}

func newLogger(w io.Writer, level LogLevel) *DefaultLogger {
	l := &DefaultLogger{level: zap.NewAtomicLevelAt(level.zapLevel())}
	l.SetOutput(w)
	return l
}

// Debug logs debug messages
func (l *DefaultLogger) Debug(format string, args ...any) {
	l.sugar.Debugf(format, args...)
}

// Info logs informational messages
func (l *DefaultLogger) Info(format string, args ...any) {
	l.sugar.Infof(format, args...)
}

// Warn logs warning messages
func (l *DefaultLogger) Warn(format string, args ...any) {
	l.sugar.Warnf(format, args...)
}

// Error logs error messages
func (l *DefaultLogger) Error(format string, args ...any) {
	l.sugar.Errorf(format, args...)
}

// SetOutput rebuilds the zap core on top of w. The level is shared, so a
// previous SetLevel call stays in effect.
func (l *DefaultLogger) SetOutput(w io.Writer) {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("[2006/01/02 15:04:05]")
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encCfg.CallerKey = zapcore.OmitKey
	encCfg.StacktraceKey = zapcore.OmitKey

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), l.level)
	l.writer = w
	l.sugar = zap.New(core).Sugar()
}

// SetLevel sets the logging level
func (l *DefaultLogger) SetLevel(level LogLevel) {
	l.level.SetLevel(level.zapLevel())
}

// Sync flushes any buffered log entries.
func (l *DefaultLogger) Sync() error {
	return l.sugar.Sync()
}

func (level LogLevel) zapLevel() zapcore.Level {
	switch level {
	case DEBUG:
		return zapcore.DebugLevel
	case WARN:
		return zapcore.WarnLevel
	case ERROR:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// StringToLogLevel converts a string representation to a LogLevel
func StringToLogLevel(level string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return DEBUG
	case "info":
		return INFO
	case "warn", "warning":
		return WARN
	case "error":
		return ERROR
	default:
		return INFO
	}
}
