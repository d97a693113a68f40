package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/fsim/am"
	"github.com/teranos/fsim/cmd/fsim/commands"
	"github.com/teranos/fsim/errors"
	"github.com/teranos/fsim/logger"
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "fsim",
		Short: "fsim - Kanban flow simulator",
		Long: `fsim - Simulate tickets flowing through a pipeline of Kanban boxes.

Each box has a daily speed and an optional WIP limit. Every day work is
pulled right to left, a fresh batch enters the first box and each box
processes what it holds.

Available commands:
  run     - Step a pipeline interactively (or on a timer with --auto)
  sim     - Simulate N days and print a report
  am      - Manage fsim configuration ("I am")
  version - Show version information

Examples:
  fsim run --speeds 3,1           # interactive console
  fsim sim --speeds 3,1 --days 20 # batch report
  fsim am show                    # Show current configuration`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if path, _ := cmd.Flags().GetString("config"); path != "" {
				am.SetConfigFile(path)
			}

			verbosity, _ := cmd.Flags().GetCount("verbose")
			jsonLogs, _ := cmd.Flags().GetBool("json")
			if !jsonLogs {
				// Config errors surface in the command itself
				if cfg, err := am.Load(); err == nil {
					jsonLogs = cfg.Log.JSON
				}
			}
			if err := logger.Initialize(jsonLogs, verbosity); err != nil {
				return errors.Wrap(err, "failed to initialize logger")
			}
			return nil
		},
	}

	root.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	root.PersistentFlags().Bool("json", false, "JSON output for logs and results")
	root.PersistentFlags().String("config", "", "Read configuration from this file only")

	root.AddCommand(commands.RunCmd)
	root.AddCommand(commands.SimCmd)
	root.AddCommand(commands.AmCmd)
	root.AddCommand(commands.VersionCmd)
	return root
}

func main() {
	err := rootCmd.Execute()
	logger.Cleanup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		for _, hint := range errors.GetAllHints(err) {
			fmt.Fprintf(os.Stderr, "  hint: %s\n", hint)
		}
		os.Exit(1)
	}
}
