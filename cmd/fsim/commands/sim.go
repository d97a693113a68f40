package commands

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/teranos/fsim/display"
	"github.com/teranos/fsim/errors"
	"github.com/teranos/fsim/kanban"
	"github.com/teranos/fsim/logger"
	"github.com/teranos/fsim/pulse"
	"github.com/teranos/fsim/sym"
	"github.com/teranos/fsim/trace"
)

type simOptions struct {
	pipelineFlags
	rate   float64
	format string
	states bool
}

// SimReport is the structured output of a batch simulation
type SimReport struct {
	Summary trace.Summary     `json:"summary" yaml:"summary" toml:"summary"`
	Days    []kanban.Snapshot `json:"days" yaml:"days" toml:"days"`
}

// SimCmd runs a batch simulation
var SimCmd = NewSimCmd()

// NewSimCmd builds the sim command
func NewSimCmd() *cobra.Command {
	opts := &simOptions{}
	cmd := &cobra.Command{
		Use:   "sim",
		Short: sym.Pulse + " Simulate a number of days and report",
		Long: sym.Pulse + ` sim — Simulate N days without interaction

Prints one table row per day followed by a run summary, or the whole run
as JSON, YAML or TOML.

Examples:
  fsim sim --speeds 3,1 --days 10
  fsim sim --speeds 3,1 --wip ,2 --format yaml
  fsim sim --days 100 --rate 20      # at most 20 days per second
  fsim sim --states                  # full state dump after every day`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSim(cmd, opts)
		},
	}
	opts.register(cmd, "Days to simulate (default: run.days)")
	cmd.Flags().Float64Var(&opts.rate, "rate", 0, "Maximum days per second (default: run.rate, 0 = unpaced)")
	cmd.Flags().StringVar(&opts.format, "format", "", "Output format: table, json, yaml, toml (default: display.format)")
	cmd.Flags().BoolVar(&opts.states, "states", false, "Print the full pipeline state after every day (table format)")
	return cmd
}

func runSim(cmd *cobra.Command, opts *simOptions) error {
	cfg, err := opts.resolveConfig(cmd)
	if err != nil {
		return err
	}
	if len(cfg.Pipeline.Boxes) == 0 {
		return errors.WithHint(errors.NewInvalidInputError("no pipeline configured"),
			"pass --speeds or set pipeline.boxes in am.toml")
	}
	if cmd.Flags().Changed("rate") {
		if opts.rate < 0 {
			return errors.NewInvalidInputError("--rate must be >= 0, got %g", opts.rate)
		}
		cfg.Run.Rate = opts.rate
	}
	format := display.ResolveFormat(cmd, cfg.Display.Format)

	session := newSession(cfg)
	log := logger.ComponentLogger("sim").With(logger.FieldRunID, session.RunID())
	pacer := pulse.NewPacer(cfg.Run.Rate)
	log.Infow("Simulation started",
		logger.FieldBoxes, session.Len(),
		"days", cfg.Run.Days,
		logger.FieldDaysPerSecond, cfg.Run.Rate)

	out := cmd.OutOrStdout()
	verbosity := verbosityOf(cmd)
	if format == display.FormatTable && logger.ShouldOutput(verbosity, logger.OutputStartup) {
		printInfo(out, "%s run %s with %d boxes: %s", sym.Pulse, session.RunID(), session.Len(), describeBoxes(cfg))
	}
	if format == display.FormatTable && logger.ShouldOutput(verbosity, logger.OutputConfig) {
		printInfo(out, "%s days=%d rate=%g", sym.AM, cfg.Run.Days, cfg.Run.Rate)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	var onDay pulse.TickFunc
	if opts.states && format == display.FormatTable {
		onDay = func(s kanban.Snapshot) { display.RenderDay(out, s) }
	}
	if err := pacer.Run(ctx, session, cfg.Run.Days, onDay); err != nil {
		return err
	}

	summary := session.Summary()
	log.Infow("Simulation finished",
		logger.FieldCumulative, summary.Completed,
		"average_lead_time", summary.AverageLeadTime)

	if format != display.FormatTable {
		return display.Encode(out, format, SimReport{Summary: summary, Days: session.Days()})
	}
	if !opts.states {
		if err := display.RenderTable(out, session.Days()); err != nil {
			return err
		}
	}
	display.RenderSummary(out, summary)
	return nil
}
