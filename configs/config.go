package configs

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/RyanBlaney/sonido-spectra/algorithms/analysis"
	"github.com/RyanBlaney/sonido-spectra/algorithms/spectral"
	"github.com/RyanBlaney/sonido-spectra/algorithms/windowing"
	"github.com/RyanBlaney/sonido-spectra/logging"
)

// EnvPrefix namespaces environment overrides, e.g. SPECTRA_ANALYSIS_WINDOW
const EnvPrefix = "SPECTRA"

// Config represents the application configuration
type Config struct {
	// Application settings
	Verbose      bool   `mapstructure:"verbose"`
	LogLevel     string `mapstructure:"log_level"`
	OutputFormat string `mapstructure:"output_format"`

	// Transform and analysis settings
	Analysis AnalysisConfig `mapstructure:"analysis"`

	// Filter cutoffs; negative values select the defaults
	Filter analysis.FilterSettings `mapstructure:"filter"`

	// Output configuration
	Output OutputConfig `mapstructure:"output"`
}

// AnalysisConfig contains transform engine settings
type AnalysisConfig struct {
	Window             string `mapstructure:"window"`
	DisplayMode        string `mapstructure:"display_mode"`
	MaxTransformLength int    `mapstructure:"max_transform_length"`
	Workers            int    `mapstructure:"workers"`
}

// OutputConfig contains output formatting settings
type OutputConfig struct {
	Precision int `mapstructure:"precision"`
}

// LoadConfig loads configuration from the global viper instance
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(viper.GetViper())
}

// LoadConfigFrom decodes a viper instance, filling unset keys with defaults
func LoadConfigFrom(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode configuration: %w", err)
	}

	return config, nil
}

// ValidateConfig validates the configuration
func ValidateConfig(config *Config) error {
	if _, err := logging.ParseLevel(config.LogLevel); err != nil {
		return err
	}

	switch config.OutputFormat {
	case "table", "csv", "yaml":
	default:
		return fmt.Errorf("output format must be table, csv or yaml, got %q", config.OutputFormat)
	}

	if _, err := config.Analysis.WindowType(); err != nil {
		return err
	}

	if _, err := config.Analysis.Display(); err != nil {
		return err
	}

	if config.Analysis.MaxTransformLength <= 0 {
		return fmt.Errorf("max transform length must be positive")
	}

	if config.Analysis.Workers < 0 {
		return fmt.Errorf("workers cannot be negative")
	}

	if config.Output.Precision < 0 || config.Output.Precision > 15 {
		return fmt.Errorf("output precision must be between 0 and 15")
	}

	return nil
}

// WindowType parses the configured window name
func (a AnalysisConfig) WindowType() (windowing.Type, error) {
	return windowing.ParseType(a.Window)
}

// Display parses the configured display mode
func (a AnalysisConfig) Display() (analysis.DisplayMode, error) {
	return analysis.ParseDisplayMode(a.DisplayMode)
}

// TransformerConfig returns the engine limits
func (a AnalysisConfig) TransformerConfig() spectral.Config {
	return spectral.Config{
		MaxTransformLength: a.MaxTransformLength,
		Workers:            a.Workers,
	}
}
