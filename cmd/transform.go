package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RyanBlaney/sonido-spectra/algorithms/analysis"
	"github.com/RyanBlaney/sonido-spectra/algorithms/signal"
	"github.com/RyanBlaney/sonido-spectra/signalio"
)

var (
	transformWindow  string
	transformDisplay string
)

var transformCmd = &cobra.Command{
	Use:   "transform [file...]",
	Short: "Forward transform of every signal in the given files",
	Long: `Forward transform each signal found in the given YAML files.

Real signals produce the non-negative half spectrum; signals carrying an
imaginary companion produce the full complex spectrum. Real signals are
transformed in parallel.

Examples:
  spectra transform lead_ii.yaml
  spectra transform --window hamming --display amplitude_phase ecg.yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTransform,
}

func init() {
	rootCmd.AddCommand(transformCmd)

	transformCmd.Flags().StringVarP(&transformWindow, "window", "w", "square",
		"data window (square, hamming, parzen, welch)")
	transformCmd.Flags().StringVar(&transformDisplay, "display", "real_imaginary",
		"bin display (real_imaginary, amplitude_phase)")

	bindKey(transformCmd.Flags(), "window", "analysis.window")
	bindKey(transformCmd.Flags(), "display", "analysis.display_mode")
}

func runTransform(cmd *cobra.Command, args []string) error {
	app, err := newApplication(cmd.OutOrStdout())
	if err != nil {
		return err
	}

	window, _ := app.config.Analysis.WindowType()
	display, _ := app.config.Analysis.Display()

	var recordings []*signalio.Recording
	for _, path := range args {
		loaded, err := signalio.Load(path)
		if err != nil {
			return err
		}
		recordings = append(recordings, loaded...)
	}

	var realSignals []*signal.Channel
	for _, r := range recordings {
		switch {
		case r.Imaginary != nil:
			re, im := signal.NewTransformPair(r.Real.Name)
			if err := app.transformer.Forward(window, r.Real, r.Imaginary, re, im); err != nil {
				return err
			}
			if err := app.print(r.Real.Name+" spectrum", "frequency", re, im); err != nil {
				return err
			}
		case display == analysis.AmplitudePhase:
			if err := app.processor.FrequencyDomain(r.Real, window, display); err != nil {
				return err
			}
			p := app.processor
			if err := app.print(r.Real.Name+" spectrum", "frequency", p.RealDevice1, p.ImaginaryDevice1); err != nil {
				return err
			}
		default:
			realSignals = append(realSignals, r.Real)
		}
	}

	if len(realSignals) == 0 {
		return nil
	}

	spectra, err := app.transformer.ForwardAll(window, realSignals)
	if err != nil {
		return err
	}
	for i, s := range spectra {
		title := fmt.Sprintf("%s spectrum (%s window)", realSignals[i].Name, window)
		if err := app.print(title, "frequency", s.Real, s.Imaginary); err != nil {
			return err
		}
	}

	return nil
}
