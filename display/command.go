package display

import (
	"github.com/spf13/cobra"
)

// ShouldOutputJSON determines if a command should output JSON based on flags
func ShouldOutputJSON(cmd *cobra.Command) bool {
	if cmd == nil {
		return false
	}

	// Check if --json flag was explicitly set on the command itself
	if f := cmd.Flags().Lookup("json"); f != nil && f.Changed {
		jsonFlag, _ := cmd.Flags().GetBool("json")
		return jsonFlag
	}

	// Check global --json flag
	globalFlag, _ := cmd.Root().PersistentFlags().GetBool("json")
	return globalFlag
}

// ResolveFormat picks the output format for cmd: --json wins, then an
// explicitly set --format flag, then the configured fallback.
func ResolveFormat(cmd *cobra.Command, configured string) string {
	if ShouldOutputJSON(cmd) {
		return FormatJSON
	}
	if cmd != nil {
		if f := cmd.Flags().Lookup("format"); f != nil && f.Changed {
			return f.Value.String()
		}
	}
	if configured == "" {
		return FormatTable
	}
	return configured
}
