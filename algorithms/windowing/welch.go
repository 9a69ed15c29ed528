package windowing

// WelchWindow is the parabolic taper 1 - ((mid-k)/mid)^2 with
// mid = (N-1)/2, so the first and last samples are zero.
type WelchWindow struct {
	coefficients
}

// NewWelch creates a new Welch window
func NewWelch(size int) *WelchWindow {
	w := &WelchWindow{coefficients{size: size}}
	w.generate()
	return w
}

func (w *WelchWindow) generate() {
	w.values = make([]float64, w.size)

	if w.size == 1 {
		w.values[0] = 1
		return
	}

	mid := float64(w.size-1) / 2
	for i := range w.size {
		arg := (mid - float64(i)) / mid
		w.values[i] = 1 - arg*arg
	}
}

// GetType returns the window type
func (w *WelchWindow) GetType() string {
	return Welch.String()
}
