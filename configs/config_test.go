package configs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/sonido-spectra/algorithms/analysis"
	"github.com/RyanBlaney/sonido-spectra/algorithms/windowing"
)

func TestDefaultsAreValid(t *testing.T) {
	config, err := LoadConfigFrom(NewViper())
	require.NoError(t, err)
	require.NoError(t, ValidateConfig(config))

	assert.Equal(t, "info", config.LogLevel)
	assert.Equal(t, "table", config.OutputFormat)
	assert.Equal(t, analysis.DefaultFilterSettings(), config.Filter)
	assert.Equal(t, 1<<22, config.Analysis.TransformerConfig().MaxTransformLength)

	window, err := config.Analysis.WindowType()
	require.NoError(t, err)
	assert.Equal(t, windowing.Square, window)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("SPECTRA_ANALYSIS_WINDOW", "welch")
	t.Setenv("SPECTRA_ANALYSIS_WORKERS", "3")
	t.Setenv("SPECTRA_FILTER_NOTCH_ON", "true")

	config, err := LoadConfigFrom(NewViper())
	require.NoError(t, err)

	assert.Equal(t, "welch", config.Analysis.Window)
	assert.Equal(t, 3, config.Analysis.TransformerConfig().Workers)
	assert.True(t, config.Filter.NotchOn)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spectra.yaml")
	content := `
log_level: debug
output_format: csv
analysis:
  window: hamming
  display_mode: amplitude_phase
filter:
  low_pass: 40
  high_pass: 0.5
  notch_on: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	v := NewViper()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	config, err := LoadConfigFrom(v)
	require.NoError(t, err)
	require.NoError(t, ValidateConfig(config))

	assert.Equal(t, "csv", config.OutputFormat)
	assert.Equal(t, 40.0, config.Filter.LowPassFrequency)
	assert.Equal(t, 0.5, config.Filter.HighPassFrequency)
	assert.Equal(t, -1.0, config.Filter.NotchFrequency)

	display, err := config.Analysis.Display()
	require.NoError(t, err)
	assert.Equal(t, analysis.AmplitudePhase, display)
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		config, err := LoadConfigFrom(NewViper())
		require.NoError(t, err)
		return config
	}

	cases := map[string]func(*Config){
		"log level":     func(c *Config) { c.LogLevel = "loud" },
		"output format": func(c *Config) { c.OutputFormat = "json" },
		"window":        func(c *Config) { c.Analysis.Window = "kaiser" },
		"display mode":  func(c *Config) { c.Analysis.DisplayMode = "polar" },
		"max length":    func(c *Config) { c.Analysis.MaxTransformLength = 0 },
		"workers":       func(c *Config) { c.Analysis.Workers = -1 },
		"precision":     func(c *Config) { c.Output.Precision = 16 },
	}

	for name, mutate := range cases {
		config := valid()
		mutate(config)
		assert.Error(t, ValidateConfig(config), name)
	}
}
