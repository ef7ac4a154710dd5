package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger

// LogLevelEnvVar is the environment variable that controls logging verbosity.
// When unset or empty, logging is silent (no zap output).
// Valid values: "debug", "info", "warn", "error"
const LogLevelEnvVar = "IMPROMPTU_LOG_LEVEL"

// LogFileEnvVar names the file log lines are appended to. The terminal
// belongs to the form while it runs, so logs never go to stdout.
const LogFileEnvVar = "IMPROMPTU_LOG_FILE"

// DefaultLogFile returns the log path used when IMPROMPTU_LOG_FILE is unset
func DefaultLogFile() string {
	return filepath.Join(os.TempDir(), "impromptu.log")
}

// Initialize creates a new logger with the specified level.
// If level is empty, it checks IMPROMPTU_LOG_LEVEL environment variable.
// If neither is set, logging is disabled (silent mode).
func Initialize(level string) error {
	return InitializeFile(level, "")
}

// InitializeFile is Initialize with an explicit output file. An empty path
// falls back to IMPROMPTU_LOG_FILE, then to DefaultLogFile.
func InitializeFile(level, path string) error {
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}

	if level == "" {
		logger = zap.NewNop()
		return nil
	}

	if path == "" {
		path = os.Getenv(LogFileEnvVar)
	}
	if path == "" {
		path = DefaultLogFile()
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		// Unknown level - use info as default when explicitly set to something
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{path},
		ErrorOutputPaths: []string{path},
	}

	// Plain levels: the file is read with less, not a color terminal
	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	var err error
	logger, err = config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	return nil
}

// InitializeFromEnv initializes the logger from the IMPROMPTU_LOG_LEVEL
// environment variable. This is the recommended way to initialize logging
// for CLI commands that want silent mode by default.
func InitializeFromEnv() error {
	return Initialize("")
}

// GetLogger returns the global logger instance
func GetLogger() *zap.Logger {
	if logger == nil {
		// Fallback to silent logger if not initialized
		logger = zap.NewNop()
	}
	return logger
}

// SetLogger replaces the global logger and returns the previous one
func SetLogger(l *zap.Logger) *zap.Logger {
	prev := GetLogger()
	logger = l
	return prev
}

// Sync flushes buffered log entries
func Sync() {
	_ = GetLogger().Sync()
}

// Info logs an info message
func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

// Debug logs a debug message
func Debug(msg string, fields ...zap.Field) {
	GetLogger().Debug(msg, fields...)
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

// Error logs an error message
func Error(msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}

// LogRegistrarOp logs a rewiring of the field sequence
func LogRegistrarOp(op string, running uint64, fields ...zap.Field) {
	Debug("Registrar operation",
		append([]zap.Field{
			zap.String("op", op),
			zap.Uint64("running", running),
		}, fields...)...,
	)
}

// LogFieldTransition logs a field moving through its lifecycle
// (mount, interact, close, unmount, reset)
func LogFieldTransition(name string, phase string, fields ...zap.Field) {
	Info("Field transition",
		append([]zap.Field{
			zap.String("field", name),
			zap.String("phase", phase),
		}, fields...)...,
	)
}

// LogEvent logs an input event and where it was routed
func LogEvent(name string, event string, gated bool) {
	Debug("Input event",
		zap.String("field", name),
		zap.String("event", event),
		zap.Bool("gated", gated),
	)
}
