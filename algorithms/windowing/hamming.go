package windowing

import (
	"math"
)

// HammingWindow is the raised-cosine taper used by the trace analysis:
//
//	w(k) = (1 - cos(2*pi*(k+1)/(N+1))) / 2
//
// It never reaches zero on a sample, unlike the textbook 0.54/0.46 form.
type HammingWindow struct {
	coefficients
}

// NewHamming creates a new Hamming window
func NewHamming(size int) *HammingWindow {
	h := &HammingWindow{coefficients{size: size}}
	h.generate()
	return h
}

func (h *HammingWindow) generate() {
	h.values = make([]float64, h.size)

	step := 2 * math.Pi / float64(h.size+1)
	for i := range h.size {
		h.values[i] = (1 - math.Cos(float64(i+1)*step)) / 2
	}
}

// GetType returns the window type
func (h *HammingWindow) GetType() string {
	return Hamming.String()
}
