package spectral

import (
	"math"

	"github.com/RyanBlaney/sonido-spectra/algorithms/signal"
	"github.com/RyanBlaney/sonido-spectra/algorithms/windowing"
	"github.com/RyanBlaney/sonido-spectra/logging"
	"github.com/mjibson/go-dsp/dsputils"
	"gonum.org/v1/gonum/stat"
)

// Forward transforms signalReal (and signalImaginary, when given) into the
// transformReal/transformImaginary pair, which must share a two-signal
// buffer at distinct indices.
//
// A real input of N samples produces L/2 bins, L being the smallest power
// of two >= N (at least 2). Bin 0 then carries X_0/2 + mean*L/2 in its real
// part and the Nyquist term X_{L/2}/2 in its imaginary part. A complex
// input produces L bins with bin 0 = X_0 + mean*L. The output frequency is
// L/f bins per unit frequency, f being the input sample rate.
//
// Nothing is written unless every check passes.
func (t *Transformer) Forward(window windowing.Type, signalReal, signalImaginary, transformReal, transformImaginary *signal.Channel) error {
	const op = "forward"

	re, terr := extract(op, "real input", signalReal)
	if terr != nil {
		return t.fail(terr)
	}
	n := len(re.Values)

	var im []float64
	if signalImaginary != nil {
		extracted, terr := extract(op, "imaginary input", signalImaginary)
		if terr != nil {
			return t.fail(terr)
		}
		if len(extracted.Values) != n {
			return t.fail(newError(op, ErrInvalidInput,
				"imaginary input has %d samples, real input has %d", len(extracted.Values), n))
		}
		im = extracted.Values
	}

	if terr := checkPair(op, transformReal, transformImaginary); terr != nil {
		return t.fail(terr)
	}
	if !(re.Frequency > 0) {
		return t.fail(newError(op, ErrInvalidInput, "input frequency %g is not positive", re.Frequency))
	}

	length := dsputils.NextPowerOf2(n)
	if im == nil {
		length = max(length, 2)
	}
	if length > t.config.MaxTransformLength {
		return t.fail(newError(op, ErrAllocation,
			"length %d exceeds limit %d", length, t.config.MaxTransformLength))
	}

	win, err := windowing.New(window, n)
	if err != nil {
		return t.fail(newError(op, ErrInvalidInput, "%v", err))
	}

	var (
		data []float32
		bins int
		path string
	)
	if im == nil {
		data = forwardReal(re.Values, win, length)
		bins = length / 2
		path = "real"
	} else {
		data = forwardComplex(re.Values, im, win, length)
		bins = length
		path = "complex"
	}

	commitPair(transformReal, transformImaginary, data, bins)
	buffer := transformReal.Buffer
	buffer.Frequency = float64(length) / re.Frequency
	for _, c := range []*signal.Channel{transformReal, transformImaginary} {
		c.Gain = 1
		c.Offset = 0
	}

	t.logger.Debug("forward transform", logging.Fields{
		"samples": n,
		"length":  length,
		"bins":    bins,
		"window":  window.String(),
		"path":    path,
	})

	return nil
}

// forwardReal packs x into z_m = x_2m + i*x_2m+1 (mean removed, windowed)
// in bit-reversed order, transforms the half-length sequence and unpacks
// the non-negative half spectrum of x.
func forwardReal(x []float64, win windowing.Window, length int) []float32 {
	n := len(x)
	points := length / 2
	mean := stat.Mean(x, nil)

	data := make([]float32, 2*points)
	cursor := newBitReverser(points)
	for m := 0; 2*m < n; m++ {
		pos := 2 * cursor.loc
		even, odd := 2*m, 2*m+1

		data[pos] = float32((x[even] - mean) * win.Amplitude(even))
		if odd < n {
			data[pos+1] = float32((x[odd] - mean) * win.Amplitude(odd))
		}

		cursor.increment()
	}

	butterflies(data, points, forwardDirection)
	unpackReal(data, points, mean)

	return data
}

// unpackReal separates the spectra of the even and odd samples held in the
// half-length transform Z and recombines them:
//
//	h1 = (Z_k + conj Z_{M-k})/2
//	h2 = -i(Z_k - conj Z_{M-k})/2
//	X_k = h1 + W^k h2, X_{M-k} = conj(h1 - W^k h2), W = exp(-i*pi/M)
func unpackReal(data []float32, points int, mean float64) {
	if points >= 2 {
		tw := newTwiddle(-math.Pi / float64(points))

		for k := 1; k < points-k; k++ {
			tw.advance()

			a, b := 2*k, 2*(points-k)
			ar, ai := float64(data[a]), float64(data[a+1])
			br, bi := float64(data[b]), float64(data[b+1])

			h1r, h1i := (ar+br)/2, (ai-bi)/2
			h2r, h2i := (ai+bi)/2, (br-ar)/2

			tr := tw.re*h2r - tw.im*h2i
			ti := tw.re*h2i + tw.im*h2r

			data[a] = float32(h1r + tr)
			data[a+1] = float32(h1i + ti)
			data[b] = float32(h1r - tr)
			data[b+1] = float32(ti - h1i)
		}

		// middle bin pairs with itself
		mid := 2 * (points / 2)
		data[mid+1] = -data[mid+1]
	}

	z0r, z0i := float64(data[0]), float64(data[1])
	data[0] = float32((z0r+z0i)/2 + mean*float64(points))
	data[1] = float32((z0r - z0i) / 2)
}

// forwardComplex places the windowed, mean removed samples at their
// bit-reversed positions and transforms them over length points
func forwardComplex(re, im []float64, win windowing.Window, length int) []float32 {
	meanRe := stat.Mean(re, nil)
	meanIm := stat.Mean(im, nil)

	data := make([]float32, 2*length)
	cursor := newBitReverser(length)
	for k := range re {
		w := win.Amplitude(k)
		pos := 2 * cursor.loc

		data[pos] = float32((re[k] - meanRe) * w)
		data[pos+1] = float32((im[k] - meanIm) * w)

		cursor.increment()
	}

	butterflies(data, length, forwardDirection)

	data[0] += float32(meanRe * float64(length))
	data[1] += float32(meanIm * float64(length))

	return data
}
