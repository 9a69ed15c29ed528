package cmd

import (
	"github.com/spf13/cobra"

	"github.com/RyanBlaney/sonido-spectra/signalio"
)

var (
	filterLowPass  float64
	filterHighPass float64
	filterNotch    float64
	filterNotchOn  bool
	filterSave     string
)

var filterCmd = &cobra.Command{
	Use:   "filter [file]",
	Short: "Band-pass, band-stop and notch filtering in the frequency domain",
	Long: `Remove frequency bands from a signal by clearing transform bins.

When the high-pass edge is below the low-pass edge the band between them is
kept; otherwise the band between them is removed. Negative edges select the
defaults: Nyquist for the low-pass edge, zero for the high-pass edge and
50 (capped at Nyquist) for the notch.

Examples:
  spectra filter --low-pass 40 --high-pass 0.5 ecg.yaml
  spectra filter --notch-on --notch 60 --save clean.yaml ecg.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runFilter,
}

func init() {
	rootCmd.AddCommand(filterCmd)

	filterCmd.Flags().Float64Var(&filterLowPass, "low-pass", -1,
		"upper edge of the pass band (negative for Nyquist)")
	filterCmd.Flags().Float64Var(&filterHighPass, "high-pass", -1,
		"lower edge of the pass band (negative for 0)")
	filterCmd.Flags().Float64Var(&filterNotch, "notch", -1,
		"notch frequency (negative for mains)")
	filterCmd.Flags().BoolVar(&filterNotchOn, "notch-on", false,
		"enable the notch")
	filterCmd.Flags().StringVar(&filterSave, "save", "",
		"write the filtered signal to this YAML file")

	bindKey(filterCmd.Flags(), "low-pass", "filter.low_pass")
	bindKey(filterCmd.Flags(), "high-pass", "filter.high_pass")
	bindKey(filterCmd.Flags(), "notch", "filter.notch")
	bindKey(filterCmd.Flags(), "notch-on", "filter.notch_on")
}

func runFilter(cmd *cobra.Command, args []string) error {
	app, err := newApplication(cmd.OutOrStdout())
	if err != nil {
		return err
	}

	recording, err := signalio.LoadOne(args[0])
	if err != nil {
		return err
	}

	p := app.processor
	if err := p.Filter(recording.Real, app.config.Filter); err != nil {
		return err
	}

	if err := app.print(p.Processed.Name, "time", p.Processed); err != nil {
		return err
	}

	if filterSave != "" {
		return app.save(filterSave, p.Processed)
	}
	return nil
}
