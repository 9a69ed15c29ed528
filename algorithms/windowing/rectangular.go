package windowing

// Rectangular is the square window: every multiplier is 1
type Rectangular struct {
	coefficients
}

// NewRectangular creates a new rectangular window
func NewRectangular(size int) *Rectangular {
	r := &Rectangular{coefficients{size: size}}
	r.generate()
	return r
}

func (r *Rectangular) generate() {
	r.values = make([]float64, r.size)
	for i := range r.values {
		r.values[i] = 1.0
	}
}

// ApplyInPlace leaves the signal unchanged once the length has been checked
func (r *Rectangular) ApplyInPlace(signal []float64) error {
	if len(signal) != r.size {
		return r.coefficients.ApplyInPlace(signal)
	}
	return nil
}

// GetType returns the window type
func (r *Rectangular) GetType() string {
	return Square.String()
}
