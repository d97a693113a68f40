package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/fsim/am"
	"github.com/teranos/fsim/errors"
	"github.com/teranos/fsim/internal/util"
	"github.com/teranos/fsim/kanban"
	"github.com/teranos/fsim/logger"
	"github.com/teranos/fsim/pulse"
	"github.com/teranos/fsim/repl"
)

// pipelineFlags are shared by run and sim
type pipelineFlags struct {
	speeds string
	wip    string
	days   int
}

func (f *pipelineFlags) register(cmd *cobra.Command, daysUsage string) {
	cmd.Flags().StringVar(&f.speeds, "speeds", "", "Comma-separated box speeds, e.g. 3,1 (replaces configured boxes)")
	cmd.Flags().StringVar(&f.wip, "wip", "", "Comma-separated WIP limits by box; empty or 'none' = unbounded, e.g. ,2")
	cmd.Flags().IntVar(&f.days, "days", 0, daysUsage)
}

// resolveConfig loads the layered configuration and applies the pipeline
// flags on top of it, the highest precedence source.
func (f *pipelineFlags) resolveConfig(cmd *cobra.Command) (*am.Config, error) {
	loaded, err := am.Load()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}
	cfg := *loaded
	cfg.Pipeline.Boxes = append([]am.BoxConfig(nil), loaded.Pipeline.Boxes...)

	if cmd.Flags().Changed("speeds") {
		speeds, err := parseIntList(f.speeds)
		if err != nil {
			return nil, errors.Wrap(err, "--speeds")
		}
		cfg.SetBoxSpeeds(speeds)
	}
	if cmd.Flags().Changed("wip") {
		limits, err := parseLimitList(f.wip)
		if err != nil {
			return nil, errors.Wrap(err, "--wip")
		}
		if len(limits) > len(cfg.Pipeline.Boxes) {
			return nil, errors.WithHint(
				errors.NewInvalidInputError("--wip lists %d limits for %d boxes", len(limits), len(cfg.Pipeline.Boxes)),
				"give --speeds (or configure pipeline.boxes) for every box first")
		}
		for i, l := range limits {
			cfg.Pipeline.Boxes[i].WIPLimit = l
		}
	}
	if cmd.Flags().Changed("days") {
		cfg.Run.Days = f.days
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// parseIntList parses "3,1" into non-negative integers.
func parseIntList(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, len(parts))
	for i, p := range parts {
		v, ok := repl.ParseNonNegative(p)
		if !ok {
			return nil, errors.NewInvalidInputError("position %d: %q is not a non-negative integer", i, strings.TrimSpace(p))
		}
		out[i] = v
	}
	return out, nil
}

// parseLimitList parses ",2,none" into WIP limits; empty entries and
// "none" are unbounded (nil).
func parseLimitList(s string) ([]*int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]*int, len(parts))
	for i, p := range parts {
		if strings.TrimSpace(p) == "" {
			continue
		}
		v, ok := repl.ParseLimit(p)
		if !ok {
			return nil, errors.NewInvalidInputError("position %d: %q is not a WIP limit", i, strings.TrimSpace(p))
		}
		if v == kanban.Unbounded {
			continue
		}
		out[i] = util.Ptr(v)
	}
	return out, nil
}

// newSession builds the pipeline from cfg and wraps it for the CLI.
func newSession(cfg *am.Config) *pulse.Session {
	p := kanban.New(cfg.BoxSpecs()...)
	return pulse.NewSession(p, logger.ComponentLogger("pulse"))
}

// printInfo writes a pterm info line to w
func printInfo(w io.Writer, format string, args ...interface{}) {
	fmt.Fprint(w, pterm.Info.Sprintfln(format, args...))
}

// printWarning writes a pterm warning line to w
func printWarning(w io.Writer, format string, args ...interface{}) {
	fmt.Fprint(w, pterm.Warning.Sprintfln(format, args...))
}

// printSuccess writes a pterm success line to w
func printSuccess(w io.Writer, format string, args ...interface{}) {
	fmt.Fprint(w, pterm.Success.Sprintfln(format, args...))
}

// syncWriter serializes writes from the ticker and watcher goroutines
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

// describeBoxes renders "3, 1 (wip 2)" for banners
func describeBoxes(cfg *am.Config) string {
	parts := make([]string, len(cfg.Pipeline.Boxes))
	for i, b := range cfg.Pipeline.Boxes {
		parts[i] = strconv.Itoa(b.Speed)
		if b.WIPLimit != nil {
			parts[i] += fmt.Sprintf(" (wip %d)", *b.WIPLimit)
		}
	}
	return strings.Join(parts, ", ")
}

// verbosityOf reads the root -v count; 0 when the flag is absent.
func verbosityOf(cmd *cobra.Command) int {
	v, err := cmd.Flags().GetCount("verbose")
	if err != nil {
		return 0
	}
	return v
}

func intervalOf(cfg *am.Config) time.Duration {
	return time.Duration(cfg.Run.IntervalMS) * time.Millisecond
}
