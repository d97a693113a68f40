// Package am loads the FSIM configuration: the pipeline layout, run pacing,
// display format and logging. Values are layered from built-in defaults,
// system, user and project am.toml files, FSIM_* environment variables and
// finally command-line flags.
package am

import (
	"github.com/teranos/fsim/internal/util"
	"github.com/teranos/fsim/kanban"
)

// Config represents the FSIM configuration
type Config struct {
	Pipeline PipelineConfig `mapstructure:"pipeline" json:"pipeline" yaml:"pipeline" toml:"pipeline"`
	Run      RunConfig      `mapstructure:"run" json:"run" yaml:"run" toml:"run"`
	Display  DisplayConfig  `mapstructure:"display" json:"display" yaml:"display" toml:"display"`
	Log      LogConfig      `mapstructure:"log" json:"log" yaml:"log" toml:"log"`
}

// PipelineConfig lists the boxes in pipeline order
type PipelineConfig struct {
	Boxes []BoxConfig `mapstructure:"boxes" json:"boxes" yaml:"boxes" toml:"boxes"`
}

// BoxConfig configures one box
type BoxConfig struct {
	Speed    int  `mapstructure:"speed" json:"speed" yaml:"speed" toml:"speed"`
	WIPLimit *int `mapstructure:"wip_limit" json:"wip_limit,omitempty" yaml:"wip_limit,omitempty" toml:"wip_limit,omitempty"` // nil = unbounded
}

// RunConfig configures how days advance
type RunConfig struct {
	Days       int     `mapstructure:"days" json:"days" yaml:"days" toml:"days"`                      // sim: number of days (default: 10)
	IntervalMS int     `mapstructure:"interval_ms" json:"interval_ms" yaml:"interval_ms" toml:"interval_ms"` // run --auto: ms between days (0 = manual stepping)
	Rate       float64 `mapstructure:"rate" json:"rate" yaml:"rate" toml:"rate"`                      // sim: max days per second (0 = unpaced)
}

// DisplayConfig configures state rendering
type DisplayConfig struct {
	Format string `mapstructure:"format" json:"format" yaml:"format" toml:"format"` // table | json | yaml | toml
}

// LogConfig configures the logger
type LogConfig struct {
	JSON bool `mapstructure:"json" json:"json" yaml:"json" toml:"json"`
}

// Display formats
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatTOML  = "toml"
)

// Formats lists every accepted display format
var Formats = []string{FormatTable, FormatJSON, FormatYAML, FormatTOML}

// Defaults
const (
	DefaultDays   = 10
	DefaultFormat = FormatTable
)

// File system constants
const (
	DefaultDirPermissions  = 0755 // Standard directory permissions (rwxr-xr-x)
	DefaultFilePermissions = 0644 // Standard file permissions (rw-r--r--)
)

// BoxSpecs converts the configured boxes to engine specs.
func (c *Config) BoxSpecs() []kanban.BoxSpec {
	specs := make([]kanban.BoxSpec, len(c.Pipeline.Boxes))
	for i, b := range c.Pipeline.Boxes {
		specs[i] = kanban.BoxSpec{Speed: b.Speed}
		if b.WIPLimit != nil {
			specs[i].WIPLimit = util.Ptr(*b.WIPLimit)
		}
	}
	return specs
}

// SetBoxSpeeds replaces the pipeline with one unbounded box per speed,
// keeping existing WIP limits for positions that survive.
func (c *Config) SetBoxSpeeds(speeds []int) {
	boxes := make([]BoxConfig, len(speeds))
	for i, s := range speeds {
		boxes[i].Speed = s
		if i < len(c.Pipeline.Boxes) {
			boxes[i].WIPLimit = c.Pipeline.Boxes[i].WIPLimit
		}
	}
	c.Pipeline.Boxes = boxes
}
