package cmd

import (
	"github.com/spf13/cobra"

	"github.com/RyanBlaney/sonido-spectra/algorithms/signal"
	"github.com/RyanBlaney/sonido-spectra/algorithms/windowing"
	"github.com/RyanBlaney/sonido-spectra/signalio"
)

var inverseSave string

var inverseCmd = &cobra.Command{
	Use:   "inverse [file]",
	Short: "Round trip a signal through the forward and inverse transforms",
	Long: `Forward transform a signal with the square window and transform it back,
printing the reconstruction over the original sample range. Useful for
checking a recording survives the transform pipeline.

Examples:
  spectra inverse lead_ii.yaml
  spectra inverse --save reconstructed.yaml lead_ii.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runInverse,
}

func init() {
	rootCmd.AddCommand(inverseCmd)

	inverseCmd.Flags().StringVar(&inverseSave, "save", "",
		"write the reconstructed real signal to this YAML file")
}

func runInverse(cmd *cobra.Command, args []string) error {
	app, err := newApplication(cmd.OutOrStdout())
	if err != nil {
		return err
	}

	recording, err := signalio.LoadOne(args[0])
	if err != nil {
		return err
	}
	name := recording.Real.Name

	re, im := signal.NewTransformPair(name)
	if err := app.transformer.Forward(windowing.Square, recording.Real, recording.Imaginary, re, im); err != nil {
		return err
	}

	if recording.Imaginary != nil {
		outRe, outIm := signal.NewTransformPair(name + " reconstructed")
		if err := app.transformer.Inverse(re, im, outRe, outIm); err != nil {
			return err
		}
		outRe.Buffer.End = recording.Real.Len() - 1
		return app.print(name+" reconstructed", "time", outRe, outIm)
	}

	out := signal.NewProcessedChannel(name + " reconstructed")
	if err := app.transformer.Inverse(re, im, out, nil); err != nil {
		return err
	}
	out.Buffer.End = recording.Real.Len() - 1
	if err := app.print(name+" reconstructed", "time", out); err != nil {
		return err
	}

	if inverseSave != "" {
		return app.save(inverseSave, out)
	}
	return nil
}
