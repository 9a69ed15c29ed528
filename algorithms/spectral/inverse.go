package spectral

import (
	"math"

	"github.com/RyanBlaney/sonido-spectra/algorithms/signal"
	"github.com/RyanBlaney/sonido-spectra/logging"
	"github.com/mjibson/go-dsp/dsputils"
)

// Inverse reconstructs a time-domain signal from the spectrum held in
// signalReal/signalImaginary.
//
// With transformImaginary nil the spectrum is taken as the non-negative
// half of a real signal's transform, laid out as Forward produces it, and
// 2M real samples are written to transformReal's single-signal buffer. M is
// the smallest power of two >= the number of bins. Otherwise M complex
// samples are written to the two-signal pair.
//
// Bin 0 never enters the butterflies: its value is carried in the output
// offsets and the gain is 1/M, so reading the outputs through their
// calibration undoes Forward.
func (t *Transformer) Inverse(signalReal, signalImaginary, transformReal, transformImaginary *signal.Channel) error {
	const op = "inverse"

	re, terr := extract(op, "real spectrum", signalReal)
	if terr != nil {
		return t.fail(terr)
	}
	im, terr := extract(op, "imaginary spectrum", signalImaginary)
	if terr != nil {
		return t.fail(terr)
	}
	n := len(re.Values)
	if len(im.Values) != n {
		return t.fail(newError(op, ErrInvalidInput,
			"imaginary spectrum has %d bins, real spectrum has %d", len(im.Values), n))
	}

	realOutput := transformImaginary == nil
	if realOutput {
		if transformReal == nil || transformReal.Buffer == nil {
			return t.fail(newError(op, ErrInvalidInput, "output channel is required"))
		}
		if transformReal.Buffer.NumberOfSignals != 1 {
			return t.fail(newError(op, ErrBufferShape,
				"output buffer holds %d signals, want 1", transformReal.Buffer.NumberOfSignals))
		}
		if transformReal.Index != 0 {
			return t.fail(newError(op, ErrInvalidInput, "output index %d outside 0..0", transformReal.Index))
		}
	} else if terr := checkPair(op, transformReal, transformImaginary); terr != nil {
		return t.fail(terr)
	}

	if !(re.Frequency > 0) {
		return t.fail(newError(op, ErrInvalidInput, "spectrum frequency %g is not positive", re.Frequency))
	}

	points := dsputils.NextPowerOf2(n)
	samples := points
	if realOutput {
		samples = 2 * points
	}
	if samples > t.config.MaxTransformLength {
		return t.fail(newError(op, ErrAllocation,
			"length %d exceeds limit %d", samples, t.config.MaxTransformLength))
	}

	gain := 1 / float64(points)
	if realOutput {
		data := inverseReal(re.Values, im.Values, points)

		buffer := transformReal.Buffer
		_, _ = buffer.Prepare(1, samples)
		copy(buffer.FloatValues, data)
		buffer.Frequency = float64(samples) / re.Frequency

		transformReal.Gain = gain
		transformReal.Offset = -re.Values[0]
	} else {
		data := inverseComplex(re.Values, im.Values, points)

		commitPair(transformReal, transformImaginary, data, samples)
		transformReal.Buffer.Frequency = float64(samples) / re.Frequency

		transformReal.Gain = gain
		transformReal.Offset = -re.Values[0]
		transformImaginary.Gain = gain
		transformImaginary.Offset = -im.Values[0]
	}

	t.logger.Debug("inverse transform", logging.Fields{
		"bins":    n,
		"samples": samples,
		"real":    realOutput,
	})

	return nil
}

// inverseComplex places bins 1..n-1 at their bit-reversed positions and
// runs the inverse butterflies over points values
func inverseComplex(re, im []float64, points int) []float32 {
	data := make([]float32, 2*points)

	cursor := newBitReverser(points)
	for k := 1; k < len(re); k++ {
		cursor.increment()
		pos := 2 * cursor.loc
		data[pos] = float32(re[k])
		data[pos+1] = float32(im[k])
	}

	butterflies(data, points, inverseDirection)
	return data
}

// inverseReal rebuilds the half-length transform Z_k = E_k + i*O_k of
// z_m = x_2m + i*x_2m+1 from the half spectrum of x, writing it straight
// into bit-reversed order with one cursor climbing from k = 1 and one
// descending from k = M-1. After the inverse butterflies the interleaved
// array is x itself, scaled by M.
func inverseReal(re, im []float64, points int) []float32 {
	bin := func(k int) (float64, float64) {
		if k >= len(re) {
			return 0, 0
		}
		return re[k], im[k]
	}

	data := make([]float32, 2*points)

	// bin 0 imaginary holds half the Nyquist term; the DC half is in the offset
	nyquist := im[0]
	data[0] = float32(nyquist)
	data[1] = float32(-nyquist)

	plus := newBitReverser(points)
	plus.increment()
	minus := newBitReverser(points)
	minus.loc = points - 1

	tw := newTwiddle(math.Pi / float64(points))
	for k := 1; k <= points-k; k++ {
		tw.advance()

		ar, ai := bin(k)
		br, bi := bin(points - k)

		h1r, h1i := (ar+br)/2, (ai-bi)/2
		dr, di := (ar-br)/2, (ai+bi)/2

		oRe := tw.re*dr - tw.im*di
		oIm := tw.re*di + tw.im*dr

		p := 2 * plus.loc
		data[p] = float32(h1r - oIm)
		data[p+1] = float32(h1i + oRe)

		q := 2 * minus.loc
		data[q] = float32(h1r + oIm)
		data[q+1] = float32(oRe - h1i)

		plus.increment()
		minus.decrement()
	}

	butterflies(data, points, inverseDirection)
	return data
}
