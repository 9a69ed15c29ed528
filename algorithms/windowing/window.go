package windowing

import (
	"fmt"
	"strings"
)

// Type selects the data window applied during a forward transform
type Type int

const (
	// Square is the rectangular window (no tapering)
	Square Type = iota
	Hamming
	Parzen
	Welch
)

func (t Type) String() string {
	switch t {
	case Square:
		return "square"
	case Hamming:
		return "hamming"
	case Parzen:
		return "parzen"
	case Welch:
		return "welch"
	default:
		return fmt.Sprintf("window(%d)", int(t))
	}
}

// ParseType converts a window name to a Type. "rectangular" is accepted as
// an alias for square.
func ParseType(name string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "square", "rectangular", "":
		return Square, nil
	case "hamming":
		return Hamming, nil
	case "parzen":
		return Parzen, nil
	case "welch":
		return Welch, nil
	default:
		return Square, fmt.Errorf("unknown window type %q", name)
	}
}

// Window is a precomputed per-sample taper
type Window interface {
	// Amplitude returns the multiplier for sample index i
	Amplitude(i int) float64
	Apply(signal []float64) []float64
	ApplyInPlace(signal []float64) error
	GetCoefficients() []float64
	GetSize() int
	GetType() string
}

// New creates the window of the given type for size samples
func New(t Type, size int) (Window, error) {
	if size <= 0 {
		return nil, fmt.Errorf("window size must be positive, got %d", size)
	}

	switch t {
	case Square:
		return NewRectangular(size), nil
	case Hamming:
		return NewHamming(size), nil
	case Parzen:
		return NewParzen(size), nil
	case Welch:
		return NewWelch(size), nil
	default:
		return nil, fmt.Errorf("unknown window type %d", int(t))
	}
}

// coefficients is the storage shared by every window shape
type coefficients struct {
	size   int
	values []float64
}

func (c *coefficients) Amplitude(i int) float64 {
	return c.values[i]
}

// Apply applies the window to a signal (creates new array)
func (c *coefficients) Apply(signal []float64) []float64 {
	if len(signal) != c.size {
		return nil
	}

	windowed := make([]float64, c.size)
	for i := range c.size {
		windowed[i] = signal[i] * c.values[i]
	}

	return windowed
}

// ApplyInPlace applies the window to a signal in-place
func (c *coefficients) ApplyInPlace(signal []float64) error {
	if len(signal) != c.size {
		return fmt.Errorf("signal length (%d) doesn't match window size (%d)", len(signal), c.size)
	}

	for i := range c.size {
		signal[i] *= c.values[i]
	}

	return nil
}

// GetCoefficients returns a copy of the window coefficients
func (c *coefficients) GetCoefficients() []float64 {
	coeffs := make([]float64, len(c.values))
	copy(coeffs, c.values)
	return coeffs
}

// GetSize returns the window size
func (c *coefficients) GetSize() int {
	return c.size
}
