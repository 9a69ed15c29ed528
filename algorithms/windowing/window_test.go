package windowing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	for _, name := range []string{"square", "rectangular", "Hamming", "PARZEN", "welch"} {
		_, err := ParseType(name)
		assert.NoError(t, err, name)
	}

	typ, err := ParseType("rectangular")
	require.NoError(t, err)
	assert.Equal(t, Square, typ)

	_, err = ParseType("kaiser")
	assert.Error(t, err)
}

func TestTypeStringRoundTrip(t *testing.T) {
	for _, typ := range []Type{Square, Hamming, Parzen, Welch} {
		parsed, err := ParseType(typ.String())
		require.NoError(t, err)
		assert.Equal(t, typ, parsed)
	}
}

func TestNewRejectsBadArguments(t *testing.T) {
	_, err := New(Hamming, 0)
	assert.Error(t, err)

	_, err = New(Type(42), 8)
	assert.Error(t, err)
}

func TestWindowBoundaries(t *testing.T) {
	for _, n := range []int{2, 7, 64, 101} {
		last := n - 1
		nf := float64(n)

		square, err := New(Square, n)
		require.NoError(t, err)
		assert.Equal(t, 1.0, square.Amplitude(0))
		assert.Equal(t, 1.0, square.Amplitude(last))

		hamming, err := New(Hamming, n)
		require.NoError(t, err)
		wantFirst := (1 - math.Cos(2*math.Pi/(nf+1))) / 2
		wantLast := (1 - math.Cos(2*math.Pi*nf/(nf+1))) / 2
		assert.InDelta(t, wantFirst, hamming.Amplitude(0), 1e-12)
		assert.InDelta(t, wantLast, hamming.Amplitude(last), 1e-12)

		parzen, err := New(Parzen, n)
		require.NoError(t, err)
		half := (nf + 1) / 2
		assert.InDelta(t, 1/half, parzen.Amplitude(0), 1e-12)
		assert.InDelta(t, 2-nf/half, parzen.Amplitude(last), 1e-12)

		welch, err := New(Welch, n)
		require.NoError(t, err)
		assert.InDelta(t, 0.0, welch.Amplitude(0), 1e-12)
		assert.InDelta(t, 0.0, welch.Amplitude(last), 1e-12)
	}
}

func TestWindowsAreSymmetricAndBounded(t *testing.T) {
	for _, typ := range []Type{Square, Hamming, Parzen, Welch} {
		for _, n := range []int{1, 2, 9, 32} {
			w, err := New(typ, n)
			require.NoError(t, err)

			coeffs := w.GetCoefficients()
			require.Len(t, coeffs, n)
			for i, c := range coeffs {
				assert.GreaterOrEqual(t, c, 0.0, "%s[%d]", typ, i)
				assert.LessOrEqual(t, c, 1.0+1e-12, "%s[%d]", typ, i)
				assert.InDelta(t, c, coeffs[n-1-i], 1e-12, "%s symmetry at %d", typ, i)
			}
		}
	}
}

func TestWelchSingleSample(t *testing.T) {
	w := NewWelch(1)
	assert.Equal(t, 1.0, w.Amplitude(0))
}

func TestApplyInPlace(t *testing.T) {
	w := NewParzen(3)
	signal := []float64{2, 2, 2}

	require.NoError(t, w.ApplyInPlace(signal))
	assert.InDelta(t, 1.0, signal[0], 1e-12)
	assert.InDelta(t, 2.0, signal[1], 1e-12)
	assert.InDelta(t, 1.0, signal[2], 1e-12)

	assert.Error(t, w.ApplyInPlace([]float64{1}))
	assert.Error(t, NewRectangular(4).ApplyInPlace([]float64{1}))
	assert.Nil(t, w.Apply([]float64{1, 2}))
}

func TestGetType(t *testing.T) {
	assert.Equal(t, "square", NewRectangular(4).GetType())
	assert.Equal(t, "hamming", NewHamming(4).GetType())
	assert.Equal(t, "parzen", NewParzen(4).GetType())
	assert.Equal(t, "welch", NewWelch(4).GetType())
	assert.Equal(t, 4, NewWelch(4).GetSize())
}
