package logger

import "go.uber.org/zap/zapcore"

// Verbosity level constants for CLI flag counts.
//
// These levels control WHAT categories of output are shown, not just log severity.
// See output.go for the category system.
//
// Example usage:
//
//	if logger.ShouldOutput(verbosity, logger.OutputStepTrace) {
//	    log.Debugw("Pulled tickets", logger.FieldBox, i, logger.FieldCount, n)
//	}
const (
	VerbosityUser  = 0 // No flags: simulation state and errors only
	VerbosityInfo  = 1 // -v: + startup, config reloads, ticker status
	VerbosityDebug = 2 // -vv: + per-step summaries, config details
	VerbosityTrace = 3 // -vvv: + per-box transfer counts
	VerbosityAll   = 4 // -vvvv: + full snapshot dumps
)

// VerbosityToLevel maps verbosity flags (-v, -vv, etc.) to zap log levels
//
// Mapping:
//
//	0 (none)  -> WarnLevel  (errors and warnings only)
//	1 (-v)    -> InfoLevel  (+ informational messages)
//	2+ (-vv)  -> DebugLevel (+ debug messages)
func VerbosityToLevel(verbosity int) zapcore.Level {
	switch {
	case verbosity <= VerbosityUser:
		return zapcore.WarnLevel
	case verbosity == VerbosityInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

// LevelName returns a human-readable name for verbosity level
func LevelName(verbosity int) string {
	switch verbosity {
	case VerbosityUser:
		return "User"
	case VerbosityInfo:
		return "Info (-v)"
	case VerbosityDebug:
		return "Debug (-vv)"
	case VerbosityTrace:
		return "Trace (-vvv)"
	case VerbosityAll:
		return "All (-vvvv)"
	default:
		if verbosity > VerbosityAll {
			return "All (-vvvv+)"
		}
		return "Unknown"
	}
}
