package configs

import (
	"strings"

	"github.com/spf13/viper"
)

// NewViper returns a viper instance reading SPECTRA_ environment variables
// with defaults applied
func NewViper() *viper.Viper {
	v := viper.New()
	ConfigureEnv(v)
	SetDefaults(v)
	return v
}

// ConfigureEnv maps nested keys to SPECTRA_ variables, e.g.
// analysis.max_transform_length -> SPECTRA_ANALYSIS_MAX_TRANSFORM_LENGTH
func ConfigureEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
}

// SetDefaults sets default configuration values for all components
func SetDefaults(v *viper.Viper) {
	// Application defaults
	v.SetDefault("verbose", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("output_format", "table")

	// Analysis defaults
	v.SetDefault("analysis.window", "square")
	v.SetDefault("analysis.display_mode", "real_imaginary")
	v.SetDefault("analysis.max_transform_length", 1<<22)
	v.SetDefault("analysis.workers", 0)

	// Filter defaults: pass everything but DC
	v.SetDefault("filter.low_pass", -1.0)
	v.SetDefault("filter.high_pass", -1.0)
	v.SetDefault("filter.notch", -1.0)
	v.SetDefault("filter.notch_on", false)

	// Output defaults
	v.SetDefault("output.precision", 6)
}
