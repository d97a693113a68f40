package commands

import (
	"context"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/teranos/fsim/am"
	"github.com/teranos/fsim/display"
	"github.com/teranos/fsim/errors"
	"github.com/teranos/fsim/kanban"
	"github.com/teranos/fsim/logger"
	"github.com/teranos/fsim/pulse"
	"github.com/teranos/fsim/repl"
	"github.com/teranos/fsim/sym"
)

type runOptions struct {
	pipelineFlags
	auto     bool
	interval time.Duration
	watch    bool
}

// RunCmd starts an interactive simulation
var RunCmd = NewRunCmd()

// NewRunCmd builds the run command
func NewRunCmd() *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: sym.Step + " Run an interactive simulation",
		Long: sym.Step + ` run — Step a Kanban pipeline one day at a time

Boxes come from pipeline.boxes in am.toml or from --speeds. With no boxes
configured you are asked for the number of boxes and their speeds.

Console commands:
  <enter>, n       step forward one day
  s [box] [speed]  set the speed of a box
  w [box] [limit]  set the WIP limit of a box ('none' = unbounded)
  l                completed tickets and lead time
  d                list commands
  q                quit

Examples:
  fsim run --speeds 3,1             # two boxes, unbounded
  fsim run --speeds 3,1 --wip ,2    # box 1 limited to 2 tickets
  fsim run --auto --interval 500ms --days 20
  fsim run --watch                  # apply am.toml edits between steps`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, opts)
		},
	}
	opts.register(cmd, "With --auto: stop after this many days (0 = until interrupted)")
	cmd.Flags().BoolVar(&opts.auto, "auto", false, "Advance on a timer instead of reading commands")
	cmd.Flags().DurationVar(&opts.interval, "interval", 0, "Time between days with --auto (default: run.interval_ms or 1s)")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "Reload speeds and WIP limits when the config file changes")
	return cmd
}

func runRun(cmd *cobra.Command, opts *runOptions) error {
	cfg, err := opts.resolveConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	out := &syncWriter{w: cmd.OutOrStdout()}
	in := cmd.InOrStdin()
	prompter := repl.NewPrompter(in, out)

	if len(cfg.Pipeline.Boxes) == 0 {
		specs, err := repl.Setup(ctx, prompter)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		if errors.Is(err, io.EOF) {
			return errors.WithHint(errors.NewInvalidInputError("no pipeline configured"),
				"pass --speeds or set pipeline.boxes in am.toml")
		}
		if err != nil {
			return err
		}
		for _, s := range specs {
			cfg.Pipeline.Boxes = append(cfg.Pipeline.Boxes, am.BoxConfig{Speed: s.Speed, WIPLimit: s.WIPLimit})
		}
	}

	session := newSession(cfg)
	log := logger.ComponentLogger("run").With(logger.FieldRunID, session.RunID())
	printInfo(out, "%s run %s with %d boxes: %s", sym.Pulse, session.RunID(), session.Len(), describeBoxes(cfg))
	log.Infow("Run started", logger.FieldBoxes, session.Len())

	if opts.watch {
		watcher, err := startWatcher(session, out)
		if err != nil {
			printWarning(out, "%s not watching config: %v", sym.AM, err)
		} else {
			defer watcher.Stop()
		}
	}

	if opts.auto {
		interval := opts.interval
		if !cmd.Flags().Changed("interval") {
			interval = intervalOf(cfg)
		}
		err = runAuto(ctx, session, pulse.TickerConfig{Interval: interval, MaxDays: cfg.Run.Days}, out)
	} else {
		err = repl.New(session, in, out, repl.WithPrompter(prompter), repl.WithLogger(log)).Run(ctx)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	display.RenderSummary(out, session.Summary())
	log.Infow("Run finished", "days", session.Snapshot().Elapsed)
	return nil
}

// runAuto steps the session on a ticker until the day limit or ctx ends.
func runAuto(ctx context.Context, session *pulse.Session, cfg pulse.TickerConfig, out io.Writer) error {
	ticker := pulse.NewTicker(ctx, session, cfg, func(s kanban.Snapshot) {
		display.RenderDay(out, s)
	}, logger.ComponentLogger("run"))
	ticker.Start()
	defer ticker.Stop()

	select {
	case <-ticker.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// startWatcher reloads the active config file into the session on change.
func startWatcher(session *pulse.Session, out io.Writer) (*am.ConfigWatcher, error) {
	path := am.ActiveFile()
	if path == "" {
		return nil, errors.WithHint(errors.Wrap(errors.ErrNotFound, "no config file loaded"),
			"create am.toml with 'fsim am init' or pass --config")
	}

	watcher, err := am.NewConfigWatcher(path)
	if err != nil {
		return nil, err
	}
	watcher.OnReload(func(cfg *am.Config) error {
		if err := session.Apply(cfg.BoxSpecs()); err != nil {
			printWarning(out, "%s config change ignored: %v", sym.AM, err)
			return err
		}
		printInfo(out, "%s applied %s from %s", sym.AM, describeBoxes(cfg), path)
		return nil
	})
	am.SetGlobalWatcher(watcher)
	watcher.Start()
	printInfo(out, "%s watching %s", sym.AM, path)
	return watcher, nil
}
