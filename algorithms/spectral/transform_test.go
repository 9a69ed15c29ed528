package spectral

import (
	"errors"
	"math"
	"math/cmplx"
	"math/rand"
	"testing"

	"github.com/mjibson/go-dsp/fft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/stat"

	"github.com/RyanBlaney/sonido-spectra/algorithms/signal"
	"github.com/RyanBlaney/sonido-spectra/algorithms/windowing"
	"github.com/RyanBlaney/sonido-spectra/logging"
)

// TransformerTestSuite exercises Forward and Inverse against reference
// transforms
type TransformerTestSuite struct {
	suite.Suite
	transformer *Transformer
	rng         *rand.Rand
}

func (s *TransformerTestSuite) SetupTest() {
	s.transformer = NewTransformerWithConfig(DefaultConfig(), &logging.NoOpLogger{})
	s.rng = rand.New(rand.NewSource(7))
}

func (s *TransformerTestSuite) randomSignal(n int, offset float64) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = offset + s.rng.Float64()*2 - 1
	}
	return values
}

// float32 storage rounds each input, so references are computed from the
// same rounded values
func rounded(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(float32(v))
	}
	return out
}

func bins(re, im *signal.Channel) []complex128 {
	reValues, imValues := re.Values(), im.Values()
	out := make([]complex128, len(reValues))
	for i := range out {
		out[i] = complex(reValues[i], imValues[i])
	}
	return out
}

func (s *TransformerTestSuite) forward(window windowing.Type, x []float64) []complex128 {
	input := signal.NewFloatChannel("x", 1, x)
	re, im := signal.NewTransformPair("x")
	s.Require().NoError(s.transformer.Forward(window, input, nil, re, im))
	return bins(re, im)
}

func (s *TransformerTestSuite) TestRealPathMatchesGonum() {
	x := rounded(s.randomSignal(64, 0.25))
	got := s.forward(windowing.Square, x)
	s.Require().Len(got, 32)

	want := fourier.NewFFT(64).Coefficients(nil, x)
	for k := 1; k < 32; k++ {
		s.InDelta(real(want[k]), real(got[k]), 1e-3, "re[%d]", k)
		s.InDelta(imag(want[k]), imag(got[k]), 1e-3, "im[%d]", k)
	}

	s.InDelta(real(want[0])/2, real(got[0]), 1e-3, "dc")
	s.InDelta(real(want[32])/2, imag(got[0]), 1e-3, "nyquist")
}

func (s *TransformerTestSuite) TestWindowedOddLength() {
	const n = 37
	x := rounded(s.randomSignal(n, 1.5))
	got := s.forward(windowing.Hamming, x)
	s.Require().Len(got, 32)

	mean := stat.Mean(x, nil)
	win, err := windowing.New(windowing.Hamming, n)
	s.Require().NoError(err)

	padded := make([]float64, 64)
	for i, v := range x {
		padded[i] = (v - mean) * win.Amplitude(i)
	}
	want := fourier.NewFFT(64).Coefficients(nil, padded)

	for k := 1; k < 32; k++ {
		s.InDelta(real(want[k]), real(got[k]), 1e-3, "re[%d]", k)
		s.InDelta(imag(want[k]), imag(got[k]), 1e-3, "im[%d]", k)
	}
	s.InDelta(real(want[0])/2+mean*32, real(got[0]), 1e-3, "dc")
	s.InDelta(real(want[32])/2, imag(got[0]), 1e-3, "nyquist")
}

func (s *TransformerTestSuite) TestComplexPathMatchesGoDSP() {
	const n = 50
	xr := rounded(s.randomSignal(n, 2))
	xi := rounded(s.randomSignal(n, -1))

	reIn := signal.NewFloatChannel("re", 10, xr)
	imIn := signal.NewFloatChannel("im", 10, xi)
	re, im := signal.NewTransformPair("z")
	s.Require().NoError(s.transformer.Forward(windowing.Square, reIn, imIn, re, im))

	got := bins(re, im)
	s.Require().Len(got, 64)

	meanRe, meanIm := stat.Mean(xr, nil), stat.Mean(xi, nil)
	padded := make([]complex128, 64)
	for i := range n {
		padded[i] = complex(xr[i]-meanRe, xi[i]-meanIm)
	}
	want := fft.FFT(padded)

	for k := 1; k < 64; k++ {
		s.InDelta(real(want[k]), real(got[k]), 1e-3, "re[%d]", k)
		s.InDelta(imag(want[k]), imag(got[k]), 1e-3, "im[%d]", k)
	}
	s.InDelta(real(want[0])+meanRe*64, real(got[0]), 1e-3)
	s.InDelta(imag(want[0])+meanIm*64, imag(got[0]), 1e-3)
	s.InDelta(6.4, re.Buffer.Frequency, 1e-12)
}

func (s *TransformerTestSuite) TestDCCarriesMeanTimesLength() {
	x := make([]float64, 64)
	for i := range x {
		x[i] = 3 + math.Sin(2*math.Pi*4*float64(i)/64)
	}

	got := s.forward(windowing.Square, x)
	s.InDelta(3*32.0, real(got[0]), 1e-3)

	re, im := signal.NewTransformPair("z")
	s.Require().NoError(s.transformer.Forward(windowing.Square,
		signal.NewFloatChannel("re", 1, x), signal.NewFloatChannel("im", 1, x), re, im))
	s.InDelta(3*64.0, re.Values()[0], 1e-3)
	s.InDelta(3*64.0, im.Values()[0], 1e-3)
}

func (s *TransformerTestSuite) TestPureSinusoidPeak() {
	x := make([]float64, 64)
	for i := range x {
		x[i] = math.Sin(2 * math.Pi * 4 * float64(i) / 64)
	}

	got := s.forward(windowing.Square, x)
	for k := 1; k < 32; k++ {
		if k == 4 {
			s.InDelta(32.0, cmplx.Abs(got[k]), 1e-3)
			continue
		}
		s.Less(cmplx.Abs(got[k]), 1e-3, "bin %d", k)
	}
}

func (s *TransformerTestSuite) TestOutputBufferLayout() {
	input := signal.NewFloatChannel("x", 250, s.randomSignal(100, 0))
	re, im := signal.NewTransformPair("x")
	re.Gain, re.Offset = 3, 4

	s.Require().NoError(s.transformer.Forward(windowing.Welch, input, nil, re, im))

	buffer := re.Buffer
	s.Equal(64, buffer.NumberOfSamples)
	s.Equal(0, buffer.Start)
	s.Equal(63, buffer.End)
	s.Equal(63, buffer.Times[63])
	s.InDelta(128.0/250.0, buffer.Frequency, 1e-12)
	s.Equal(1.0, re.Gain)
	s.Equal(0.0, re.Offset)
	s.Equal(1.0, im.Gain)
}

func (s *TransformerTestSuite) TestRepeatedCallsReuseStorage() {
	input := signal.NewFloatChannel("x", 1, s.randomSignal(64, 0))
	re, im := signal.NewTransformPair("x")

	s.Require().NoError(s.transformer.Forward(windowing.Square, input, nil, re, im))
	first := &re.Buffer.FloatValues[0]
	snapshot := append([]float32(nil), re.Buffer.FloatValues...)

	s.Require().NoError(s.transformer.Forward(windowing.Square, input, nil, re, im))
	s.Equal(32, re.Buffer.NumberOfSamples)
	s.Same(first, &re.Buffer.FloatValues[0])
	s.Equal(snapshot, re.Buffer.FloatValues, "output is deterministic")
}

func (s *TransformerTestSuite) TestMismatchedLengthsLeaveBufferUntouched() {
	re, im := signal.NewTransformPair("x")
	s.Require().NoError(s.transformer.Forward(windowing.Square,
		signal.NewFloatChannel("x", 1, s.randomSignal(16, 0)), nil, re, im))
	before := re.Buffer.Clone()

	err := s.transformer.Forward(windowing.Square,
		signal.NewFloatChannel("re", 1, s.randomSignal(100, 0)),
		signal.NewFloatChannel("im", 1, s.randomSignal(99, 0)),
		re, im)

	s.Require().ErrorIs(err, ErrInvalidInput)
	var terr *TransformError
	s.Require().ErrorAs(err, &terr)
	s.Equal("forward", terr.Op)
	s.Equal(before, re.Buffer)
}

func (s *TransformerTestSuite) TestForwardValidation() {
	x := signal.NewFloatChannel("x", 1, []float64{1, 2, 3})
	re, im := signal.NewTransformPair("x")

	s.ErrorIs(s.transformer.Forward(windowing.Square, nil, nil, re, im), ErrInvalidInput)
	s.ErrorIs(s.transformer.Forward(windowing.Square,
		signal.NewFloatChannel("empty", 1, nil), nil, re, im), ErrInvalidInput)
	s.ErrorIs(s.transformer.Forward(windowing.Square, x, nil, re, re), ErrInvalidInput)

	other, _ := signal.NewTransformPair("other")
	s.ErrorIs(s.transformer.Forward(windowing.Square, x, nil, re, other), ErrInvalidInput)

	wide := signal.NewBuffer(3, 0, signal.FloatValue, 0)
	s.ErrorIs(s.transformer.Forward(windowing.Square, x, nil,
		&signal.Channel{Buffer: wide, Index: 0}, &signal.Channel{Buffer: wide, Index: 1}), ErrBufferShape)

	s.ErrorIs(s.transformer.Forward(windowing.Square,
		signal.NewFloatChannel("x", 0, []float64{1, 2}), nil, re, im), ErrInvalidInput)

	s.ErrorIs(s.transformer.Forward(windowing.Type(9), x, nil, re, im), ErrInvalidInput)

	small := NewTransformerWithConfig(Config{MaxTransformLength: 16}, &logging.NoOpLogger{})
	s.ErrorIs(small.Forward(windowing.Square,
		signal.NewFloatChannel("x", 1, make([]float64, 17)), nil, re, im), ErrAllocation)

	s.Equal(0, re.Buffer.NumberOfSamples, "failed calls write nothing")
}

func (s *TransformerTestSuite) roundTrip(x []float64) *signal.Channel {
	input := signal.NewFloatChannel("x", 500, x)
	re, im := signal.NewTransformPair("x")
	s.Require().NoError(s.transformer.Forward(windowing.Square, input, nil, re, im))

	out := signal.NewProcessedChannel("x")
	s.Require().NoError(s.transformer.Inverse(re, im, out, nil))
	return out
}

func (s *TransformerTestSuite) TestRealRoundTrip() {
	for _, n := range []int{1, 2, 3, 64, 100} {
		x := s.randomSignal(n, 0.75)
		out := s.roundTrip(x)

		length := max(2, nextPow2(n))
		s.Require().Equal(length, out.Buffer.NumberOfSamples, "n=%d", n)
		s.InDelta(500.0, out.Buffer.Frequency, 1e-9)

		values := out.Values()
		for i, v := range x {
			s.InDelta(v, values[i], 1e-4, "n=%d sample %d", n, i)
		}

		mean := stat.Mean(rounded(x), nil)
		for i := n; i < length; i++ {
			s.InDelta(mean, values[i], 1e-4, "n=%d padding %d", n, i)
		}
	}
}

func (s *TransformerTestSuite) TestComplexRoundTrip() {
	const n = 50
	xr, xi := s.randomSignal(n, 1), s.randomSignal(n, -2)

	re, im := signal.NewTransformPair("z")
	s.Require().NoError(s.transformer.Forward(windowing.Square,
		signal.NewFloatChannel("re", 8, xr), signal.NewFloatChannel("im", 8, xi), re, im))

	outRe, outIm := signal.NewTransformPair("z")
	s.Require().NoError(s.transformer.Inverse(re, im, outRe, outIm))
	s.Require().Equal(64, outRe.Buffer.NumberOfSamples)
	s.InDelta(8.0, outRe.Buffer.Frequency, 1e-9)

	gotRe, gotIm := outRe.Values(), outIm.Values()
	for i := range n {
		s.InDelta(xr[i], gotRe[i], 1e-4, "re %d", i)
		s.InDelta(xi[i], gotIm[i], 1e-4, "im %d", i)
	}

	meanIm := stat.Mean(rounded(xi), nil)
	for i := n; i < 64; i++ {
		s.InDelta(meanIm, gotIm[i], 1e-4, "padding %d", i)
	}
}

func (s *TransformerTestSuite) TestInverseValidation() {
	re, im := signal.NewTransformPair("x")
	s.Require().NoError(s.transformer.Forward(windowing.Square,
		signal.NewFloatChannel("x", 1, s.randomSignal(16, 0)), nil, re, im))

	out := signal.NewProcessedChannel("out")
	s.ErrorIs(s.transformer.Inverse(re, nil, out, nil), ErrInvalidInput)
	s.ErrorIs(s.transformer.Inverse(re,
		signal.NewFloatChannel("short", 1, []float64{1}), out, nil), ErrInvalidInput)

	pairRe, _ := signal.NewTransformPair("pair")
	s.ErrorIs(s.transformer.Inverse(re, im, pairRe, nil), ErrBufferShape)

	single := signal.NewProcessedChannel("single")
	s.ErrorIs(s.transformer.Inverse(re, im, single, &signal.Channel{Buffer: single.Buffer, Index: 1}), ErrBufferShape)

	small := NewTransformerWithConfig(Config{MaxTransformLength: 8}, &logging.NoOpLogger{})
	s.ErrorIs(small.Inverse(re, im, out, nil), ErrAllocation)

	s.Equal(0, out.Buffer.NumberOfSamples)
}

func (s *TransformerTestSuite) TestShortIntInputUsesCalibration() {
	raw := make([]int16, 40)
	calibrated := make([]float64, 40)
	for i := range raw {
		raw[i] = int16(s.rng.Intn(2000) - 1000)
		calibrated[i] = (float64(raw[i]) - 10) * 0.5
	}

	re, im := signal.NewTransformPair("raw")
	s.Require().NoError(s.transformer.Forward(windowing.Parzen,
		signal.NewShortChannel("raw", 1, 0.5, 10, raw), nil, re, im))

	want := s.forward(windowing.Parzen, calibrated)
	got := bins(re, im)
	s.Require().Len(got, len(want))
	for k := range want {
		s.InDelta(real(want[k]), real(got[k]), 1e-6, "re[%d]", k)
		s.InDelta(imag(want[k]), imag(got[k]), 1e-6, "im[%d]", k)
	}
}

func (s *TransformerTestSuite) TestForwardAllMatchesSerial() {
	var inputs []*signal.Channel
	for _, n := range []int{8, 33, 64, 100, 5} {
		inputs = append(inputs, signal.NewFloatChannel("", 100, s.randomSignal(n, 0.1)))
	}

	spectra, err := s.transformer.ForwardAll(windowing.Hamming, inputs)
	s.Require().NoError(err)
	s.Require().Len(spectra, len(inputs))

	for i, input := range inputs {
		re, im := signal.NewTransformPair("serial")
		s.Require().NoError(s.transformer.Forward(windowing.Hamming, input, nil, re, im))
		s.Equal(re.Buffer.FloatValues, spectra[i].Real.Buffer.FloatValues, "signal %d", i)
		if i > 0 {
			s.NotSame(spectra[0].Real.Buffer, spectra[i].Real.Buffer)
		}
	}

	inputs = append(inputs, signal.NewFloatChannel("empty", 1, nil))
	_, err = s.transformer.ForwardAll(windowing.Square, inputs)
	s.ErrorIs(err, ErrInvalidInput)
}

func TestTransformerSuite(t *testing.T) {
	suite.Run(t, new(TransformerTestSuite))
}

func TestTransformErrorMessage(t *testing.T) {
	err := newError("inverse", ErrBufferShape, "buffer holds %d signals", 3)

	assert.Equal(t, "inverse: transform buffer has wrong number of signals: buffer holds 3 signals", err.Error())
	assert.True(t, errors.Is(err, ErrBufferShape))
}

func TestWorkerCount(t *testing.T) {
	tr := NewTransformerWithConfig(Config{Workers: 3}, &logging.NoOpLogger{})
	assert.Equal(t, 3, tr.workerCount(10))
	assert.Equal(t, 2, tr.workerCount(2))

	auto := NewTransformer()
	assert.GreaterOrEqual(t, auto.workerCount(1), 1)
	require.Equal(t, 1<<22, auto.Config().MaxTransformLength)
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
