package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RyanBlaney/sonido-spectra/signalio"
)

var correlateCmd = &cobra.Command{
	Use:   "correlate [file] [file]",
	Short: "Cross-correlation of two signals, or auto-correlation of one",
	Long: `Correlate signals through their spectra. With two files the output is the
cross-correlation ordered by signed lag; a peak at lag -d means the second
signal lags the first by d. With one file the output is the auto-correlation
for non-negative lags.

Examples:
  spectra correlate lead_i.yaml lead_ii.yaml
  spectra correlate resp.yaml`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runCorrelate,
}

func init() {
	rootCmd.AddCommand(correlateCmd)
}

func runCorrelate(cmd *cobra.Command, args []string) error {
	app, err := newApplication(cmd.OutOrStdout())
	if err != nil {
		return err
	}

	first, err := signalio.LoadOne(args[0])
	if err != nil {
		return err
	}

	p := app.processor
	if len(args) == 2 {
		second, err := signalio.LoadOne(args[1])
		if err != nil {
			return err
		}
		if err := p.CrossCorrelation(first.Real, second.Real); err != nil {
			return err
		}
	} else if err := p.AutoCorrelation(first.Real); err != nil {
		return err
	}

	if err := app.print(p.Processed.Name, "lag", p.Processed); err != nil {
		return err
	}

	peak, err := p.CorrelationPeak()
	if err != nil {
		return err
	}
	if app.config.OutputFormat == "table" {
		fmt.Fprintf(app.out, "\nPeak %.*g at lag %.*g (%d samples)\n",
			app.config.Output.Precision, peak.Value,
			app.config.Output.Precision, peak.Lag, peak.Samples)
	}

	return nil
}
