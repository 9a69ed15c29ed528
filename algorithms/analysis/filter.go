package analysis

import (
	"fmt"
	"math"

	"github.com/RyanBlaney/sonido-spectra/algorithms/signal"
	"github.com/RyanBlaney/sonido-spectra/algorithms/windowing"
	"github.com/RyanBlaney/sonido-spectra/logging"
)

// defaultNotchFrequency is mains hum
const defaultNotchFrequency = 50.0

// FilterSettings are cutoffs in the units of the device's sample rate.
// A negative cutoff selects its default: the Nyquist frequency for the
// low-pass edge, zero for the high-pass edge and mains frequency (capped at
// Nyquist) for the notch.
type FilterSettings struct {
	LowPassFrequency  float64 `mapstructure:"low_pass" yaml:"low_pass"`
	HighPassFrequency float64 `mapstructure:"high_pass" yaml:"high_pass"`
	NotchFrequency    float64 `mapstructure:"notch" yaml:"notch"`
	NotchOn           bool    `mapstructure:"notch_on" yaml:"notch_on"`
}

// DefaultFilterSettings passes everything but DC
func DefaultFilterSettings() FilterSettings {
	return FilterSettings{
		LowPassFrequency:  -1,
		HighPassFrequency: -1,
		NotchFrequency:    -1,
		NotchOn:           false,
	}
}

// filterBins are the settings resolved to bin indices
type filterBins struct {
	low, high int
	notch     int
	notchOn   bool
}

// resolve converts cutoffs to bin indices for a half spectrum of points
// bins at binsPerUnit bins per unit frequency
func (s FilterSettings) resolve(points int, binsPerUnit float64) filterBins {
	nyquist := float64(points) / binsPerUnit

	low, high, notch := s.LowPassFrequency, s.HighPassFrequency, s.NotchFrequency
	if low < 0 {
		low = nyquist
	}
	if high < 0 {
		high = 0
	}
	if notch < 0 {
		notch = math.Min(nyquist, defaultNotchFrequency)
	}

	index := func(f float64) int {
		return min(max(int(f*binsPerUnit+0.5), 0), points)
	}

	bins := filterBins{
		low:  index(low),
		high: index(high),
	}
	if s.NotchOn {
		bins.notch = int(math.Floor(notch * binsPerUnit))
		bins.notchOn = bins.notch >= 0 && bins.notch < points-1
	}
	return bins
}

// Filter removes frequency bands from device and writes the filtered
// signal to Processed.
//
// When the high-pass index is below the low-pass index the bins in between
// are kept (band-pass). Otherwise the bins strictly between the low-pass
// and high-pass indices are removed (band-stop). The notch, when on, clears
// floor(notch) and the bin above it. DC is always removed; the Nyquist
// term only when a band-pass edge lies below it.
func (p *Processor) Filter(device *signal.Channel, settings FilterSettings) error {
	p.begin(FilteringMode)

	re, im := p.RealDevice1, p.ImaginaryDevice1
	if err := p.transformer.Forward(windowing.Square, device, nil, re, im); err != nil {
		return fmt.Errorf("filter: %w", err)
	}

	points := re.Buffer.NumberOfSamples
	bins := settings.resolve(points, re.Buffer.Frequency)
	bandPass := bins.high < bins.low

	// bin 0 imaginary is the Nyquist term, logically bin `points`
	nyquist := bin(im, 0)
	if bandPass && bins.low < points {
		nyquist = 0
	}

	if bins.notchOn {
		zeroBins(re, im, bins.notch, bins.notch+1)
	}

	if bandPass {
		zeroBins(re, im, 0, bins.high-1)
		zeroBins(re, im, bins.low+1, points-1)
	} else {
		zeroBins(re, im, bins.low+1, bins.high-1)
	}
	setBin(re, 0, 0)
	setBin(im, 0, nyquist)

	if err := p.transformer.Inverse(re, im, p.Processed, nil); err != nil {
		return fmt.Errorf("filter: %w", err)
	}
	p.Processed.Buffer.End = device.Len() - 1
	p.Processed.Name = device.Name + " filtered"

	p.succeed(logging.Fields{
		"device":    device.Name,
		"low_bin":   bins.low,
		"high_bin":  bins.high,
		"band_pass": bandPass,
		"notch_bin": bins.notch,
		"notch_on":  bins.notchOn,
	})
	return nil
}
