package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/teranos/fsim/am"
	"github.com/teranos/fsim/display"
	"github.com/teranos/fsim/errors"
	"github.com/teranos/fsim/sym"
)

// AmCmd represents the am (configuration) command
var AmCmd = NewAmCmd()

// NewAmCmd builds the am command and its subcommands
func NewAmCmd() *cobra.Command {
	amCmd := &cobra.Command{
		Use:   "am",
		Short: sym.AM + " Manage fsim configuration",
		Long: sym.AM + ` am — Manage fsim configuration

Configuration sources (in order of precedence):
1. Command line flags
2. Environment variables (FSIM_* prefix, e.g. FSIM_RUN_DAYS)
3. Project config (am.toml, searched upwards from the working directory)
4. User config (~/.fsim/am.toml)
5. System config (/etc/fsim/am.toml)
6. Default values

--config <path> replaces sources 3 to 5 with a single file.

Examples:
  fsim am show                    # Show current configuration
  fsim am show --format json      # Show configuration in JSON format
  fsim am get run.days            # Get specific config value
  fsim am validate                # Validate current configuration
  fsim am init --speeds 3,1       # Write a starter am.toml`,
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the current fsim configuration merged from all sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAmShow(cmd, display.ResolveFormat(cmd, display.FormatTOML))
		},
	}
	showCmd.Flags().String("format", display.FormatTOML, "Output format: toml, json, yaml")

	getCmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Get a specific configuration value",
		Long:  "Get a specific configuration value using dot notation (e.g., run.days, display.format)",
		Args:  cobra.ExactArgs(1),
		RunE:  runAmGet,
	}

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate current configuration",
		Long:  "Validate that the current fsim configuration can drive a simulation",
		RunE:  runAmValidate,
	}

	whereCmd := &cobra.Command{
		Use:   "where",
		Short: "Show where configuration is loaded from",
		Long: `Show the configuration cascade and which source supplied each setting.

Settings are grouped by the file, environment variable or default they
came from, lowest precedence first.`,
		RunE: runAmWhere,
	}

	var initFlags pipelineFlags
	var force bool
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a starter am.toml",
		Long:  "Write the effective configuration, with any --speeds and --wip applied, to ./am.toml or the given path",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := am.ConfigFileName
			if len(args) == 1 {
				path = args[0]
			}
			return runAmInit(cmd, &initFlags, path, force)
		},
	}
	initFlags.register(initCmd, "Default number of days for sim")
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	amCmd.AddCommand(showCmd, getCmd, validateCmd, whereCmd, initCmd)
	return amCmd
}

func runAmShow(cmd *cobra.Command, format string) error {
	cfg, err := am.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	if format == display.FormatTable {
		return errors.NewInvalidInputError("am show does not support the table format")
	}

	out := cmd.OutOrStdout()
	if format != display.FormatJSON {
		fmt.Fprintln(out, "# fsim configuration")
	}
	return display.Encode(out, format, cfg)
}

func runAmGet(cmd *cobra.Command, args []string) error {
	value, err := am.Get(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), value)
	return nil
}

func runAmValidate(cmd *cobra.Command, args []string) error {
	cfg, err := am.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "configuration validation failed")
	}

	printSuccess(cmd.OutOrStdout(), "Configuration is valid (%d boxes)", len(cfg.Pipeline.Boxes))
	return nil
}

func runAmWhere(cmd *cobra.Command, args []string) error {
	intro, err := am.GetConfigIntrospection()
	if err != nil {
		return errors.Wrap(err, "failed to get config introspection")
	}
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Configuration cascade (later overrides earlier):")
	fmt.Fprintln(out, "  1. [DEFAULT]  Built-in defaults")
	fmt.Fprintf(out, "  2. [SYSTEM]   %s\n", am.SystemConfigPath)
	fmt.Fprintln(out, "  3. [USER]     ~/.fsim/am.toml")
	fmt.Fprintln(out, "  4. [PROJECT]  ./am.toml (searches up directories)")
	fmt.Fprintln(out, "  5. [ENV]      FSIM_* environment variables")
	fmt.Fprintln(out)

	type group struct {
		source   am.ConfigSource
		path     string
		settings []am.SettingInfo
	}
	groups := map[string]*group{}
	for _, s := range intro.Settings {
		key := string(s.Source) + "|" + s.SourcePath
		g, ok := groups[key]
		if !ok {
			g = &group{source: s.Source, path: s.SourcePath}
			groups[key] = g
		}
		g.settings = append(g.settings, s)
	}

	order := map[am.ConfigSource]int{
		am.SourceDefault:     0,
		am.SourceSystem:      1,
		am.SourceUser:        2,
		am.SourceProject:     3,
		am.SourceExplicit:    3,
		am.SourceEnvironment: 4,
	}
	sorted := make([]*group, 0, len(groups))
	for _, g := range groups {
		sorted = append(sorted, g)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if order[sorted[i].source] != order[sorted[j].source] {
			return order[sorted[i].source] < order[sorted[j].source]
		}
		return sorted[i].path < sorted[j].path
	})

	fmt.Fprintln(out, "Active configuration:")
	for _, g := range sorted {
		switch g.source {
		case am.SourceDefault:
			fmt.Fprintf(out, "\n%s: %d settings\n", g.source, len(g.settings))
		case am.SourceEnvironment:
			fmt.Fprintf(out, "\n%s: %s\n", g.source, g.path)
		default:
			fmt.Fprintf(out, "\n%s: %d settings from %s\n", g.source, len(g.settings), g.path)
		}
		for _, s := range g.settings {
			value := fmt.Sprintf("%v", s.Value)
			if len(value) > 50 {
				value = value[:47] + "..."
			}
			fmt.Fprintf(out, "  %s = %s\n", s.Key, value)
		}
	}
	return nil
}

func runAmInit(cmd *cobra.Command, flags *pipelineFlags, path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.WithHint(errors.Newf("%s already exists", path), "pass --force to overwrite it")
	}

	cfg, err := flags.resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := am.Save(cfg, path); err != nil {
		return err
	}

	abs, _ := filepath.Abs(path)
	printSuccess(cmd.OutOrStdout(), "%s wrote %s (%d boxes)", sym.AM, abs, len(cfg.Pipeline.Boxes))
	return nil
}
