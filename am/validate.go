package am

import (
	"slices"
	"strings"

	"github.com/teranos/fsim/errors"
)

// Validate checks that the configuration can drive a simulation.
// Zero means zero: a zero speed stalls a box and a zero WIP limit admits
// nothing, both valid. Negative values are not.
func (c *Config) Validate() error {
	for i, b := range c.Pipeline.Boxes {
		if b.Speed < 0 {
			return errors.NewInvalidConfigError("pipeline.boxes[%d].speed must be >= 0, got %d", i, b.Speed)
		}
		if b.WIPLimit != nil && *b.WIPLimit < 0 {
			return errors.WithHint(
				errors.NewInvalidConfigError("pipeline.boxes[%d].wip_limit must be >= 0, got %d", i, *b.WIPLimit),
				"omit wip_limit for an unbounded box")
		}
	}

	if c.Run.Days < 0 {
		return errors.NewInvalidConfigError("run.days must be >= 0, got %d", c.Run.Days)
	}
	if c.Run.IntervalMS < 0 {
		return errors.NewInvalidConfigError("run.interval_ms must be >= 0, got %d (0 steps manually)", c.Run.IntervalMS)
	}
	if c.Run.Rate < 0 {
		return errors.NewInvalidConfigError("run.rate must be >= 0, got %g (0 is unpaced)", c.Run.Rate)
	}

	if !slices.Contains(Formats, c.Display.Format) {
		return errors.WithHintf(
			errors.NewInvalidConfigError("display.format %q is not supported", c.Display.Format),
			"use one of: %s", strings.Join(Formats, ", "))
	}

	return nil
}
