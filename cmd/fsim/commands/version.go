package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/fsim/display"
	"github.com/teranos/fsim/version"
)

// VersionCmd represents the version command
var VersionCmd = NewVersionCmd()

// NewVersionCmd builds the version command
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show fsim version information",
		Long:  `Display version, build time, commit hash, and platform information for the fsim binary.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Get()
			out := cmd.OutOrStdout()

			if display.ShouldOutputJSON(cmd) {
				return display.Encode(out, display.FormatJSON, info)
			}
			fmt.Fprintln(out, info.String())
			fmt.Fprintf(out, "Platform: %s\n", info.Platform)
			fmt.Fprintf(out, "Go: %s\n", info.GoVersion)
			return nil
		},
	}
}
