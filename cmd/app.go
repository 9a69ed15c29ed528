package cmd

import (
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/RyanBlaney/sonido-spectra/algorithms/analysis"
	"github.com/RyanBlaney/sonido-spectra/algorithms/signal"
	"github.com/RyanBlaney/sonido-spectra/algorithms/spectral"
	"github.com/RyanBlaney/sonido-spectra/configs"
	"github.com/RyanBlaney/sonido-spectra/logging"
	"github.com/RyanBlaney/sonido-spectra/signalio"
)

// application is what every subcommand needs once flags and config have
// been resolved
type application struct {
	config      *configs.Config
	logger      logging.Logger
	transformer *spectral.Transformer
	processor   *analysis.Processor
	out         io.Writer
}

func newApplication(out io.Writer) (*application, error) {
	config, err := configs.LoadConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}
	if err := configs.ValidateConfig(config); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	level, _ := logging.ParseLevel(config.LogLevel)
	if config.Verbose && level > logging.DebugLevel {
		level = logging.DebugLevel
	}

	// logs go to stderr so that stdout stays machine readable
	logger := logging.NewDefaultLoggerFor(os.Stderr, os.Stderr)
	logger.SetLevel(level)
	logging.SetGlobalLogger(logger)

	transformer := spectral.NewTransformerWithConfig(config.Analysis.TransformerConfig(), logger)

	return &application{
		config:      config,
		logger:      logger,
		transformer: transformer,
		processor:   analysis.NewProcessor(transformer, logger),
		out:         out,
	}, nil
}

// print renders channels as one table in the configured format
func (a *application) print(title, axis string, channels ...*signal.Channel) error {
	table, err := signalio.NewTable(title, axis, channels...)
	if err != nil {
		return err
	}
	return signalio.Write(a.out, a.config.OutputFormat, table, a.config.Output.Precision)
}

// save writes a channel as a signal document that the other commands can
// read back
func (a *application) save(path string, c *signal.Channel) error {
	doc, err := signalio.FromChannel(c)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create output file")
	}
	defer f.Close()

	if err := signalio.WriteDocuments(f, doc); err != nil {
		return err
	}

	a.logger.Info("saved signal", logging.Fields{"path": path, "samples": c.Len()})
	return nil
}
