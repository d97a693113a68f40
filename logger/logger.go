package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global logger instance
	Logger *zap.SugaredLogger
	// Flag to track if JSON output is enabled
	JSONOutput bool
)

func init() {
	// Safe no-op logger at package load time so engine callers never see a nil logger
	Logger = zap.NewNop().Sugar()
}

// Initialize sets up the global logger for the given output mode and verbosity.
// Console output goes to stderr so stdout stays reserved for simulation state.
func Initialize(jsonOutput bool, verbosity int) error {
	return InitializeWithWriter(jsonOutput, verbosity, os.Stderr)
}

// InitializeWithWriter is Initialize with an explicit sink (used by tests).
func InitializeWithWriter(jsonOutput bool, verbosity int, w io.Writer) error {
	JSONOutput = jsonOutput
	level := zap.NewAtomicLevelAt(VerbosityToLevel(verbosity))

	var encoder zapcore.Encoder
	if jsonOutput {
		// JSON structured output for machine consumption
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		encoder = zapcore.NewConsoleEncoder(consoleEncoderConfig())
	}

	zapLogger := zap.New(zapcore.NewCore(encoder, zapcore.AddSync(w), level))
	Logger = zapLogger.Sugar()
	return nil
}

// consoleEncoderConfig is a calm human-readable layout: short time, colored level, name.
func consoleEncoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.CallerKey = ""
	cfg.StacktraceKey = ""
	return cfg
}

// Cleanup flushes any buffered log entries
func Cleanup() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}

// Infow logs an info message with structured fields
func Infow(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		Logger.Infow(msg, keysAndValues...)
	}
}

// Warnw logs a warning message with structured fields
func Warnw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		Logger.Warnw(msg, keysAndValues...)
	}
}

// Errorw logs an error message with structured fields
func Errorw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		Logger.Errorw(msg, keysAndValues...)
	}
}

// Debugw logs a debug message with structured fields
func Debugw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		Logger.Debugw(msg, keysAndValues...)
	}
}
