package logger

// Output controls what categories of information are shown at each verbosity level.
//
// Unlike log levels (which filter by severity), output categories control
// WHAT types of information are displayed regardless of severity.
//
// Verbosity Levels:
//
//	0 (default) - Simulation state, errors with hints
//	1 (-v)      - + Startup, ticker status, config reloads
//	2 (-vv)     - + Step summaries, config values, timing
//	3 (-vvv)    - + Per-box transfers inside a step
//	4 (-vvvv)   - + Full snapshot dumps

// OutputCategory defines a category of output that can be enabled/disabled
type OutputCategory int

const (
	// Level 0 (default) - Always shown
	OutputResults OutputCategory = iota // Board state, metrics
	OutputErrors                        // Errors with hints

	// Level 1 (-v) - Informational
	OutputStartup  // Banner, pipeline layout
	OutputProgress // Ticker/pacer progress
	OutputReloads  // Config file reloads applied to a live pipeline

	// Level 2 (-vv) - Detailed
	OutputStepSummary // One line per simulated day
	OutputConfig      // Config values loaded/applied
	OutputTiming      // Wall-clock per step

	// Level 3 (-vvv) - Debug
	OutputStepTrace // Per-box pull/process counts

	// Level 4 (-vvvv) - Full dump
	OutputDataDump // Full snapshot contents
)

// categoryLevels maps each output category to its minimum verbosity level
var categoryLevels = map[OutputCategory]int{
	OutputResults: VerbosityUser,
	OutputErrors:  VerbosityUser,

	OutputStartup:  VerbosityInfo,
	OutputProgress: VerbosityInfo,
	OutputReloads:  VerbosityInfo,

	OutputStepSummary: VerbosityDebug,
	OutputConfig:      VerbosityDebug,
	OutputTiming:      VerbosityDebug,

	OutputStepTrace: VerbosityTrace,

	OutputDataDump: VerbosityAll,
}

// ShouldOutput returns true if the given category should be shown at the given verbosity
func ShouldOutput(verbosity int, category OutputCategory) bool {
	minLevel, ok := categoryLevels[category]
	if !ok {
		// Unknown category, default to highest verbosity required
		return verbosity >= VerbosityAll
	}
	return verbosity >= minLevel
}

// categoryNames provides human-readable names for output categories
var categoryNames = map[OutputCategory]string{
	OutputResults:     "results",
	OutputErrors:      "errors",
	OutputStartup:     "startup",
	OutputProgress:    "progress",
	OutputReloads:     "reloads",
	OutputStepSummary: "step-summary",
	OutputConfig:      "config",
	OutputTiming:      "timing",
	OutputStepTrace:   "step-trace",
	OutputDataDump:    "data-dump",
}

// CategoryName returns the human-readable name for an output category
func CategoryName(category OutputCategory) string {
	if name, ok := categoryNames[category]; ok {
		return name
	}
	return "unknown"
}
