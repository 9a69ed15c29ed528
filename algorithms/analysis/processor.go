package analysis

import (
	"fmt"
	"strings"

	"github.com/RyanBlaney/sonido-spectra/algorithms/signal"
	"github.com/RyanBlaney/sonido-spectra/algorithms/spectral"
	"github.com/RyanBlaney/sonido-spectra/logging"
)

// Mode is the analysis most recently run by a Processor
type Mode int

const (
	NoAnalysis Mode = iota
	FrequencyDomainMode
	PowerSpectrumMode
	CrossCorrelationMode
	AutoCorrelationMode
	FilteringMode
)

func (m Mode) String() string {
	switch m {
	case FrequencyDomainMode:
		return "frequency_domain"
	case PowerSpectrumMode:
		return "power_spectrum"
	case CrossCorrelationMode:
		return "cross_correlation"
	case AutoCorrelationMode:
		return "auto_correlation"
	case FilteringMode:
		return "filtering"
	default:
		return "none"
	}
}

// DisplayMode selects how FrequencyDomain presents each bin
type DisplayMode int

const (
	RealImaginary DisplayMode = iota
	AmplitudePhase
)

func (d DisplayMode) String() string {
	if d == AmplitudePhase {
		return "amplitude_phase"
	}
	return "real_imaginary"
}

// ParseDisplayMode accepts the String forms plus the short "re_im"/"am_ph"
func ParseDisplayMode(name string) (DisplayMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "real_imaginary", "re_im":
		return RealImaginary, nil
	case "amplitude_phase", "am_ph":
		return AmplitudePhase, nil
	default:
		return RealImaginary, fmt.Errorf("unknown display mode %q", name)
	}
}

// Processor runs the derived analyses on top of a spectral.Transformer.
// It owns its working channels: two transform pairs and one processed
// time-domain channel. A Processor is not safe for concurrent use.
type Processor struct {
	transformer *spectral.Transformer
	logger      logging.Logger

	RealDevice1      *signal.Channel
	ImaginaryDevice1 *signal.Channel
	RealDevice2      *signal.Channel
	ImaginaryDevice2 *signal.Channel
	Processed        *signal.Channel

	mode  Mode
	valid bool
}

// NewProcessor creates a processor with empty working channels. Nil
// arguments fall back to a default transformer and the global logger.
func NewProcessor(transformer *spectral.Transformer, logger logging.Logger) *Processor {
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}
	if transformer == nil {
		transformer = spectral.NewTransformerWithConfig(spectral.DefaultConfig(), logger)
	}

	re1, im1 := signal.NewTransformPair("device 1")
	re2, im2 := signal.NewTransformPair("device 2")

	return &Processor{
		transformer:      transformer,
		logger:           logger.WithFields(logging.Fields{"component": "analysis"}),
		RealDevice1:      re1,
		ImaginaryDevice1: im1,
		RealDevice2:      re2,
		ImaginaryDevice2: im2,
		Processed:        signal.NewProcessedChannel("processed"),
	}
}

// Valid reports whether the last analysis completed. It is false from the
// start of every analysis until that analysis succeeds.
func (p *Processor) Valid() bool {
	return p.valid
}

// Mode returns the last analysis attempted
func (p *Processor) Mode() Mode {
	return p.mode
}

func (p *Processor) begin(mode Mode) {
	p.mode = mode
	p.valid = false
}

func (p *Processor) succeed(fields logging.Fields) {
	p.valid = true
	fields["mode"] = p.mode.String()
	p.logger.Debug("analysis complete", fields)
}

// bin returns the raw stored value of a working channel at sample k
func bin(c *signal.Channel, k int) float64 {
	return c.Buffer.Raw(k, c.Index)
}

func setBin(c *signal.Channel, k int, value float64) {
	c.Buffer.SetRaw(k, c.Index, float32(value))
}

// zeroBins clears bins lo..hi inclusive of a transform pair
func zeroBins(re, im *signal.Channel, lo, hi int) {
	for k := max(lo, 0); k <= hi && k < re.Buffer.NumberOfSamples; k++ {
		setBin(re, k, 0)
		setBin(im, k, 0)
	}
}
