package logger

import (
	"go.uber.org/zap"

	"github.com/teranos/fsim/sym"
)

// Standard field names for consistent structured logging across FSIM.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Identity and context
	FieldRunID     = "run_id"
	FieldComponent = "component"
	FieldSymbol    = "symbol"

	// Simulation
	FieldDay           = "day"
	FieldBox           = "box"
	FieldBoxes         = "boxes"
	FieldSpeed         = "speed"
	FieldWIPLimit      = "wip_limit"
	FieldThroughput    = "throughput"
	FieldCumulative    = "cumulative"
	FieldCycleTime     = "cycle_time"
	FieldBottleneck    = "bottleneck"
	FieldWIP           = "wip"
	FieldCommand       = "command"
	FieldCount         = "count"
	FieldIntervalMS    = "interval_ms"
	FieldDaysPerSecond = "days_per_second"

	// Files and errors
	FieldFile  = "file"
	FieldError = "error"
)

// ComponentLogger returns a named logger for a specific component.
// This is the preferred way to get a logger for dependency injection.
//
// Example:
//
//	type Ticker struct {
//	    logger *zap.SugaredLogger
//	}
//
//	func NewTicker() *Ticker {
//	    return &Ticker{logger: logger.ComponentLogger("pulse.ticker")}
//	}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// WithSymbol returns a logger with the given symbol as a field.
func WithSymbol(symbol string) *zap.SugaredLogger {
	return Logger.With(FieldSymbol, symbol)
}

// AddPulseSymbol wraps a logger with the Pulse symbol (꩜)
func AddPulseSymbol(l *zap.SugaredLogger) *zap.SugaredLogger {
	return l.With(FieldSymbol, sym.Pulse)
}

// AddAMSymbol wraps a logger with the configuration symbol (≡)
func AddAMSymbol(l *zap.SugaredLogger) *zap.SugaredLogger {
	return l.With(FieldSymbol, sym.AM)
}
