package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RyanBlaney/sonido-spectra/signalio"
)

var powerCmd = &cobra.Command{
	Use:   "power [file]",
	Short: "Power spectrum and dominant frequency of a signal",
	Long: `Compute the magnitude of each non-DC bin of a signal's square window
transform and report the strongest frequency.

Examples:
  spectra power lead_ii.yaml
  spectra power -o csv lead_ii.yaml > power.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runPower,
}

func init() {
	rootCmd.AddCommand(powerCmd)
}

func runPower(cmd *cobra.Command, args []string) error {
	app, err := newApplication(cmd.OutOrStdout())
	if err != nil {
		return err
	}

	recording, err := signalio.LoadOne(args[0])
	if err != nil {
		return err
	}

	p := app.processor
	if err := p.PowerSpectrum(recording.Real); err != nil {
		return err
	}

	if err := app.print(p.RealDevice1.Name, "frequency", p.RealDevice1); err != nil {
		return err
	}

	dominant, err := p.DominantFrequency()
	if err != nil {
		return err
	}
	if app.config.OutputFormat == "table" {
		fmt.Fprintf(app.out, "\nDominant frequency: %.*g\n", app.config.Output.Precision, dominant)
	}

	return nil
}
