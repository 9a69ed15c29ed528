package spectral

import (
	"math"
)

const (
	forwardDirection = -1.0
	inverseDirection = 1.0
)

// bitReverser walks the bit-reversed index sequence of a power-of-two
// length without a lookup table
type bitReverser struct {
	points int
	loc    int
}

func newBitReverser(points int) *bitReverser {
	return &bitReverser{points: points}
}

// increment moves loc from br(k) to br(k+1)
func (b *bitReverser) increment() {
	bit := b.points >> 1
	for bit >= 1 && b.loc&bit != 0 {
		b.loc -= bit
		bit >>= 1
	}
	b.loc += bit
}

// decrement moves loc from br(k) to br(k-1)
func (b *bitReverser) decrement() {
	bit := b.points >> 1
	for bit >= 1 && b.loc&bit == 0 {
		b.loc += bit
		bit >>= 1
	}
	b.loc -= bit
}

// twiddle steps through powers of exp(i*theta) using
// w^(k+1) = w^k + w^k*(w-1). Kept in float64: float32 drifts visibly past
// a few hundred points.
type twiddle struct {
	re, im         float64
	stepRe, stepIm float64
}

func newTwiddle(theta float64) twiddle {
	s := math.Sin(theta / 2)
	return twiddle{
		re:     1,
		stepRe: -2 * s * s,
		stepIm: math.Sin(theta),
	}
}

func (w *twiddle) advance() {
	re := w.re
	w.re += re*w.stepRe - w.im*w.stepIm
	w.im += w.im*w.stepRe + re*w.stepIm
}

// butterflies runs the Danielson-Lanczos passes over points complex
// values stored interleaved in data, which must already be in
// bit-reversed order. The result is in natural order and unnormalized.
func butterflies(data []float32, points int, direction float64) {
	for span := 1; span < points; span <<= 1 {
		tw := newTwiddle(direction * math.Pi / float64(span))
		stride := 4 * span

		for k := range span {
			wr, wi := float32(tw.re), float32(tw.im)

			for e := 2 * k; e < 2*points; e += stride {
				o := e + 2*span
				tr := wr*data[o] - wi*data[o+1]
				ti := wr*data[o+1] + wi*data[o]

				data[o] = data[e] - tr
				data[o+1] = data[e+1] - ti
				data[e] += tr
				data[e+1] += ti
			}

			tw.advance()
		}
	}
}
