package signal

import (
	"fmt"
	"math"
)

// Channel is one signal of a buffer together with the calibration needed
// to turn stored values into true amplitudes:
//
//	amplitude = (raw - Offset) * Gain
type Channel struct {
	Name   string
	Buffer *Buffer
	Index  int
	Gain   float64
	Offset float64
}

// Extracted is the calibrated view of a channel over its visible range
type Extracted struct {
	Values []float64
	// Times are in units of the independent axis (Times[i]/Frequency)
	Times     []float64
	Frequency float64
}

// NewFloatChannel wraps values in a single-signal float buffer
func NewFloatChannel(name string, frequency float64, values []float64) *Channel {
	buffer := NewBuffer(1, len(values), FloatValue, frequency)
	for i, v := range values {
		buffer.FloatValues[i] = float32(v)
	}

	return &Channel{Name: name, Buffer: buffer, Gain: 1}
}

// NewShortChannel wraps raw acquisition values with their calibration
func NewShortChannel(name string, frequency, gain, offset float64, raw []int16) *Channel {
	buffer := NewBuffer(1, len(raw), ShortIntValue, frequency)
	copy(buffer.ShortValues, raw)

	return &Channel{Name: name, Buffer: buffer, Gain: gain, Offset: offset}
}

// NewTransformPair creates the real and imaginary channels of an empty
// two-signal float buffer, ready to receive a forward transform
func NewTransformPair(name string) (real, imaginary *Channel) {
	buffer := NewBuffer(2, 0, FloatValue, 0)

	real = &Channel{Name: name + " Re", Buffer: buffer, Index: 0, Gain: 1}
	imaginary = &Channel{Name: name + " Im", Buffer: buffer, Index: 1, Gain: 1}
	return real, imaginary
}

// NewProcessedChannel creates a channel on an empty single-signal float
// buffer, ready to receive a real inverse transform
func NewProcessedChannel(name string) *Channel {
	return &Channel{Name: name, Buffer: NewBuffer(1, 0, FloatValue, 0), Gain: 1}
}

// Len returns the number of samples in the visible range
func (c *Channel) Len() int {
	if c == nil || c.Buffer == nil {
		return 0
	}
	return max(c.Buffer.End-c.Buffer.Start+1, 0)
}

// Value returns the calibrated amplitude of buffer sample i
func (c *Channel) Value(i int) float64 {
	return (c.Buffer.Raw(i, c.Index) - c.Offset) * c.Gain
}

// Extract returns the calibrated values and times over Start..End
func (c *Channel) Extract() (*Extracted, error) {
	if c == nil || c.Buffer == nil {
		return nil, fmt.Errorf("channel has no buffer")
	}

	b := c.Buffer
	if c.Index < 0 || c.Index >= b.NumberOfSignals {
		return nil, fmt.Errorf("channel index %d outside buffer with %d signals", c.Index, b.NumberOfSignals)
	}
	if b.Start < 0 || b.End >= b.NumberOfSamples || len(b.Times) < b.NumberOfSamples {
		return nil, fmt.Errorf("visible range %d..%d outside buffer of %d samples", b.Start, b.End, b.NumberOfSamples)
	}

	n := c.Len()
	out := &Extracted{
		Values:    make([]float64, n),
		Times:     make([]float64, n),
		Frequency: b.Frequency,
	}

	for i := range n {
		sample := b.Start + i
		out.Values[i] = c.Value(sample)
		if b.Frequency > 0 {
			out.Times[i] = float64(b.Times[sample]) / b.Frequency
		} else {
			out.Times[i] = float64(b.Times[sample])
		}
	}

	return out, nil
}

// Values returns the calibrated amplitudes over the visible range, or nil
// when the channel cannot be read
func (c *Channel) Values() []float64 {
	extracted, err := c.Extract()
	if err != nil {
		return nil
	}
	return extracted.Values
}

// Range returns the minimum and maximum calibrated amplitude over the
// visible range
func (c *Channel) Range() (minimum, maximum float64) {
	minimum, maximum = math.Inf(1), math.Inf(-1)
	for _, v := range c.Values() {
		minimum = math.Min(minimum, v)
		maximum = math.Max(maximum, v)
	}
	return minimum, maximum
}
