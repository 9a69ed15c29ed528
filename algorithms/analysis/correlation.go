package analysis

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/RyanBlaney/sonido-spectra/algorithms/signal"
	"github.com/RyanBlaney/sonido-spectra/algorithms/spectral"
	"github.com/RyanBlaney/sonido-spectra/algorithms/windowing"
	"github.com/RyanBlaney/sonido-spectra/logging"
)

// CrossCorrelation computes r(lag) = sum_n x1[n] x2[n-lag] (circular, mean
// removed) into Processed, ordered by signed lag with zero lag at the
// centre. If device2 is device1 delayed by d samples the peak sits at
// lag -d.
func (p *Processor) CrossCorrelation(device1, device2 *signal.Channel) error {
	p.begin(CrossCorrelationMode)

	if device1 == nil || device2 == nil {
		return fmt.Errorf("cross correlation: %w: both devices are required", spectral.ErrInvalidInput)
	}
	if device1.Len() != device2.Len() {
		return fmt.Errorf("cross correlation: %w: devices have %d and %d samples",
			spectral.ErrInvalidInput, device1.Len(), device2.Len())
	}

	re1, im1 := p.RealDevice1, p.ImaginaryDevice1
	re2, im2 := p.RealDevice2, p.ImaginaryDevice2
	if err := p.transformer.Forward(windowing.Square, device1, nil, re1, im1); err != nil {
		return fmt.Errorf("cross correlation: %w", err)
	}
	if err := p.transformer.Forward(windowing.Square, device2, nil, re2, im2); err != nil {
		return fmt.Errorf("cross correlation: %w", err)
	}

	// T1 * conj(T2)
	for k := 1; k < re1.Buffer.NumberOfSamples; k++ {
		x, y := bin(re1, k), bin(im1, k)
		x2, y2 := bin(re2, k), bin(im2, k)
		setBin(re1, k, x*x2+y*y2)
		setBin(im1, k, y*x2-x*y2)
	}
	setBin(re1, 0, 0)
	setBin(im1, 0, 0)

	if err := p.transformer.Inverse(re1, im1, p.Processed, nil); err != nil {
		return fmt.Errorf("cross correlation: %w", err)
	}
	centreLags(p.Processed.Buffer)
	p.Processed.Name = device1.Name + " x " + device2.Name

	p.succeed(logging.Fields{"device1": device1.Name, "device2": device2.Name})
	return nil
}

// AutoCorrelation computes the circular auto-correlation of device into
// Processed. The result is even in lag, so only lags 0..len/2-1 are left
// visible.
func (p *Processor) AutoCorrelation(device *signal.Channel) error {
	p.begin(AutoCorrelationMode)

	re, im := p.RealDevice1, p.ImaginaryDevice1
	if err := p.transformer.Forward(windowing.Square, device, nil, re, im); err != nil {
		return fmt.Errorf("auto correlation: %w", err)
	}

	for k := 1; k < re.Buffer.NumberOfSamples; k++ {
		x, y := bin(re, k), bin(im, k)
		setBin(re, k, x*x+y*y)
		setBin(im, k, 0)
	}
	setBin(re, 0, 0)
	setBin(im, 0, 0)

	if err := p.transformer.Inverse(re, im, p.Processed, nil); err != nil {
		return fmt.Errorf("auto correlation: %w", err)
	}
	p.Processed.Buffer.End = p.Processed.Buffer.NumberOfSamples/2 - 1
	p.Processed.Name = device.Name + " auto"

	p.succeed(logging.Fields{"device": device.Name})
	return nil
}

// centreLags swaps the two halves of a single-signal buffer so that lag 0
// moves to the middle, and rewrites the times as signed lags
func centreLags(b *signal.Buffer) {
	n := b.NumberOfSamples
	half := n / 2

	rotated := make([]float32, n)
	for i := range n {
		rotated[i] = b.FloatValues[(i+half)%n]
	}
	copy(b.FloatValues, rotated)

	for i := range b.Times {
		b.Times[i] = i - half
	}
	b.Start = 0
	b.End = n - 1
}

// Peak is the strongest point of a correlation
type Peak struct {
	Value float64
	// Lag is in units of the independent axis
	Lag float64
	// Samples is the lag in samples
	Samples int
}

// CorrelationPeak locates the maximum of the last correlation over its
// visible range
func (p *Processor) CorrelationPeak() (Peak, error) {
	if !p.valid || (p.mode != CrossCorrelationMode && p.mode != AutoCorrelationMode) {
		return Peak{}, fmt.Errorf("no valid correlation")
	}

	extracted, err := p.Processed.Extract()
	if err != nil {
		return Peak{}, err
	}
	if len(extracted.Values) == 0 {
		return Peak{}, fmt.Errorf("correlation is empty")
	}

	idx := floats.MaxIdx(extracted.Values)
	b := p.Processed.Buffer
	return Peak{
		Value:   extracted.Values[idx],
		Lag:     extracted.Times[idx],
		Samples: b.Times[b.Start+idx],
	}, nil
}
