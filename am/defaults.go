package am

import (
	"fmt"

	"github.com/spf13/viper"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Pipeline: no boxes means the run command prompts for them
	v.SetDefault("pipeline.boxes", []map[string]interface{}{})

	// Run defaults
	v.SetDefault("run.days", DefaultDays)
	v.SetDefault("run.interval_ms", 0) // Manual stepping
	v.SetDefault("run.rate", 0.0)      // Unpaced batch runs

	// Display defaults
	v.SetDefault("display.format", DefaultFormat)

	// Log defaults
	v.SetDefault("log.json", false)
}

// BindEnvVars explicitly binds settings whose names do not follow the
// automatic FSIM_<SECTION>_<KEY> mapping.
func BindEnvVars(v *viper.Viper) {
	v.BindEnv("display.format", "FSIM_FORMAT", "FSIM_DISPLAY_FORMAT")
	v.BindEnv("log.json", "FSIM_LOG_JSON")
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf("Config{Boxes: %d, Run: {Days: %d, IntervalMS: %d, Rate: %g}, Display: %s}",
		len(c.Pipeline.Boxes), c.Run.Days, c.Run.IntervalMS, c.Run.Rate, c.Display.Format)
}
