// Package sym defines canonical symbols for FSIM console commands and system markers.
// These symbols are stable across the console loop, CLI help and log fields.
package sym

// Console command glyphs, one per loop command.
const (
	Step    = "▶" // step: advance the pipeline one day
	Speed   = "⚡" // speed: change a box's daily capacity
	WIP     = "▦" // wip: change a box's work-in-progress ceiling
	Ledger  = "≣" // ledger: summary of completed tickets
	Details = "?" // details: list available commands
	Quit    = "⏹" // quit: leave the loop
)

// System infrastructure symbols.
const (
	Pulse      = "꩜" // auto-advance ticker and pacing
	PulseOpen  = "✿" // ticker startup
	PulseClose = "❀" // ticker shutdown
	AM         = "≡" // configuration
	Infinity   = "∞" // unbounded WIP limit or cycle time
)

// entry binds a glyph to its console command token and description.
type entry struct {
	glyph       string
	command     string
	label       string
	description string
}

// registry is the canonical ordering of console commands.
var registry = []entry{
	{Step, "n", "Step", "Advance the pipeline one day (also: empty line)"},
	{Speed, "s", "Speed", "Set the speed of a box: s [box] [speed]"},
	{WIP, "w", "WIP", "Set the WIP limit of a box: w [box] [limit|none]"},
	{Ledger, "l", "Ledger", "Show completed tickets and lead time"},
	{Details, "d", "Details", "List available commands"},
	{Quit, "q", "Quit", "Leave the simulation"},
}

// PaletteOrder defines the canonical ordering of commands in help output.
var PaletteOrder = []string{Step, Speed, WIP, Ledger, Details, Quit}

// SymbolToCommand maps glyph strings to their text command equivalents.
var SymbolToCommand = map[string]string{}

// CommandToSymbol maps text commands to their canonical glyph strings.
var CommandToSymbol = map[string]string{}

// CommandDescriptions provides human-readable explanations for each command.
var CommandDescriptions = map[string]string{}

// CommandLabels provides the short label of each command.
var CommandLabels = map[string]string{}

func init() {
	for _, e := range registry {
		SymbolToCommand[e.glyph] = e.command
		CommandToSymbol[e.command] = e.glyph
		CommandDescriptions[e.command] = e.description
		CommandLabels[e.command] = e.label
	}
}

// Glyph returns the glyph for a command token, or "" if the command is unknown.
func Glyph(command string) string {
	return CommandToSymbol[command]
}
