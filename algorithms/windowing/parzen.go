package windowing

// ParzenWindow is a triangular taper normalised by (N+1)/2 that folds over
// past the midpoint.
type ParzenWindow struct {
	coefficients
}

// NewParzen creates a new Parzen window
func NewParzen(size int) *ParzenWindow {
	p := &ParzenWindow{coefficients{size: size}}
	p.generate()
	return p
}

func (p *ParzenWindow) generate() {
	p.values = make([]float64, p.size)

	half := float64(p.size+1) / 2
	for i := range p.size {
		amplitude := float64(i+1) / half
		if amplitude > 1 {
			amplitude = 2 - amplitude
		}
		p.values[i] = amplitude
	}
}

// GetType returns the window type
func (p *ParzenWindow) GetType() string {
	return Parzen.String()
}
