// Package logging provides structured logging with automatic credential
// redaction.
//
// The reading loop owns the terminal, so log entries go to a rotating JSON
// file rather than stdout. Development mode additionally mirrors entries
// to stderr in a human-readable format.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap.Logger and redacts credentials from every entry.
//
// Example:
//
//	logger, err := NewLogger(false, "paperdesk.log")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer logger.Sync()
//
//	logger.Info("paper opened", zap.String("paper", "study.pdf"))
type Logger struct {
	zap         *zap.Logger
	isDev       bool
	logFilePath string
}

// NewLogger creates a Logger writing to the given file with default
// rotation. In development mode the level drops to debug and entries are
// mirrored to stderr.
func NewLogger(isDev bool, logFilePath string) (*Logger, error) {
	return NewLoggerWithRotation(isDev, logFilePath, DefaultRotationConfig())
}

// NewLoggerWithRotation creates a Logger with custom rotation settings.
func NewLoggerWithRotation(isDev bool, logFilePath string, rotation RotationConfig) (*Logger, error) {
	level := zapcore.InfoLevel
	if isDev {
		level = zapcore.DebugLevel
	}

	fileCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(newEncoderConfig()),
		NewFileWriter(logFilePath, rotation),
		level,
	)

	core := fileCore
	if isDev {
		consoleCore := zapcore.NewCore(
			zapcore.NewConsoleEncoder(newConsoleEncoderConfig()),
			zapcore.AddSync(os.Stderr),
			level,
		)
		core = zapcore.NewTee(fileCore, consoleCore)
	}

	zapLogger := zap.New(core,
		zap.AddCaller(),
		zap.AddCallerSkip(1),
	)

	return &Logger{
		zap:         zapLogger,
		isDev:       isDev,
		logFilePath: logFilePath,
	}, nil
}

// NewLoggerWithCore builds a Logger over a caller-supplied core. Useful in
// tests that capture entries in memory.
func NewLoggerWithCore(core zapcore.Core, isDev bool) *Logger {
	zapLogger := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	return &Logger{zap: zapLogger, isDev: isDev}
}

// Sync flushes buffered entries. Call before exit.
func (l *Logger) Sync() error {
	if l == nil || l.zap == nil {
		return nil
	}
	return l.zap.Sync()
}

// Debug logs at DebugLevel after redacting the fields.
func (l *Logger) Debug(msg string, fields ...zap.Field) {
	l.zap.Debug(msg, redactFields(fields)...)
}

// Info logs at InfoLevel after redacting the fields.
func (l *Logger) Info(msg string, fields ...zap.Field) {
	l.zap.Info(msg, redactFields(fields)...)
}

// Warn logs at WarnLevel after redacting the fields.
func (l *Logger) Warn(msg string, fields ...zap.Field) {
	l.zap.Warn(msg, redactFields(fields)...)
}

// Error logs at ErrorLevel after redacting the fields.
func (l *Logger) Error(msg string, fields ...zap.Field) {
	l.zap.Error(msg, redactFields(fields)...)
}

// Fatal logs at FatalLevel then exits.
func (l *Logger) Fatal(msg string, fields ...zap.Field) {
	l.zap.Fatal(msg, redactFields(fields)...)
}

// With creates a child logger whose entries carry the given fields.
//
// Example:
//
//	sessionLogger := logger.With(zap.String("session_id", id))
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{
		zap:         l.zap.With(redactFields(fields)...),
		isDev:       l.isDev,
		logFilePath: l.logFilePath,
	}
}

// Named adds a sub-logger name that appears in the output.
func (l *Logger) Named(name string) *Logger {
	return &Logger{
		zap:         l.zap.Named(name),
		isDev:       l.isDev,
		logFilePath: l.logFilePath,
	}
}

// IsDevelopment reports whether the logger runs in development mode.
func (l *Logger) IsDevelopment() bool {
	return l.isDev
}

// LogFilePath returns the path of the log file, empty for in-memory cores.
func (l *Logger) LogFilePath() string {
	return l.logFilePath
}

func redactFields(fields []zap.Field) []zap.Field {
	if len(fields) == 0 {
		return fields
	}
	result := make([]zap.Field, len(fields))
	for i, field := range fields {
		result[i] = redactField(field)
	}
	return result
}

func redactField(field zap.Field) zap.Field {
	if IsSecretField(field.Key) {
		return zap.String(field.Key, RedactedPlaceholder)
	}
	if field.Type == zapcore.StringType {
		if redacted := RedactSecrets(field.String); redacted != field.String {
			return zap.String(field.Key, redacted)
		}
	}
	return field
}
