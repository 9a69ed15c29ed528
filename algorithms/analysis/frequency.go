package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/RyanBlaney/sonido-spectra/algorithms/signal"
	"github.com/RyanBlaney/sonido-spectra/algorithms/windowing"
	"github.com/RyanBlaney/sonido-spectra/logging"
)

// FrequencyDomain transforms device into RealDevice1/ImaginaryDevice1 with
// the DC bin removed. In AmplitudePhase mode every non-zero bin is
// rewritten as (|X|, arg X).
func (p *Processor) FrequencyDomain(device *signal.Channel, window windowing.Type, display DisplayMode) error {
	p.begin(FrequencyDomainMode)

	re, im := p.RealDevice1, p.ImaginaryDevice1
	if err := p.transformer.Forward(window, device, nil, re, im); err != nil {
		return fmt.Errorf("frequency domain: %w", err)
	}

	setBin(re, 0, 0)
	setBin(im, 0, 0)

	if display == AmplitudePhase {
		for k := 1; k < re.Buffer.NumberOfSamples; k++ {
			x, y := bin(re, k), bin(im, k)
			if x == 0 && y == 0 {
				continue
			}
			setBin(re, k, math.Hypot(x, y))
			setBin(im, k, math.Atan2(y, x))
		}
		im.Gain = 1
		re.Name, im.Name = device.Name+" Am", device.Name+" Ph"
	} else {
		re.Name, im.Name = device.Name+" Re", device.Name+" Im"
	}

	p.succeed(logging.Fields{
		"device":  device.Name,
		"window":  window.String(),
		"display": display.String(),
	})
	return nil
}

// PowerSpectrum stores the magnitude of each bin of device's rectangular
// window transform in RealDevice1. Bin 0 is cleared.
func (p *Processor) PowerSpectrum(device *signal.Channel) error {
	p.begin(PowerSpectrumMode)

	re, im := p.RealDevice1, p.ImaginaryDevice1
	if err := p.transformer.Forward(windowing.Square, device, nil, re, im); err != nil {
		return fmt.Errorf("power spectrum: %w", err)
	}

	setBin(re, 0, 0)
	for k := 1; k < re.Buffer.NumberOfSamples; k++ {
		setBin(re, k, math.Hypot(bin(re, k), bin(im, k)))
	}
	re.Name = device.Name + " Power"

	p.succeed(logging.Fields{"device": device.Name, "bins": re.Buffer.NumberOfSamples})
	return nil
}

// DominantFrequency returns the frequency of the strongest non-DC bin of
// the last power spectrum
func (p *Processor) DominantFrequency() (float64, error) {
	if p.mode != PowerSpectrumMode || !p.valid {
		return 0, fmt.Errorf("no valid power spectrum")
	}

	magnitudes := p.RealDevice1.Values()
	if len(magnitudes) < 2 {
		return 0, fmt.Errorf("power spectrum has no non-DC bins")
	}

	k := floats.MaxIdx(magnitudes[1:]) + 1
	return float64(k) / p.RealDevice1.Buffer.Frequency, nil
}
