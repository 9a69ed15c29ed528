package signal

import (
	"fmt"
)

// ValueType is the storage width of a buffer's samples
type ValueType int

const (
	// ShortIntValue is raw acquisition storage
	ShortIntValue ValueType = iota
	// FloatValue is single precision storage, used by every transform buffer
	FloatValue
)

func (v ValueType) String() string {
	switch v {
	case ShortIntValue:
		return "short_int"
	case FloatValue:
		return "float"
	default:
		return "unknown"
	}
}

// Buffer holds one or more signals sampled on a shared time base. Samples
// are interleaved: signal s at sample i lives at i*NumberOfSignals+s.
type Buffer struct {
	NumberOfSignals int
	NumberOfSamples int
	ValueType       ValueType

	ShortValues []int16
	FloatValues []float32

	// Times are integer sample indices; divide by Frequency for real time
	Times []int

	// Frequency is samples per unit of the independent axis
	Frequency float64

	// Start and End bound the visible range (inclusive)
	Start int
	End   int
}

// NewBuffer allocates a zeroed buffer with a 0..n-1 time ramp
func NewBuffer(numberOfSignals, numberOfSamples int, valueType ValueType, frequency float64) *Buffer {
	b := &Buffer{
		NumberOfSignals: numberOfSignals,
		NumberOfSamples: numberOfSamples,
		ValueType:       valueType,
		Times:           make([]int, numberOfSamples),
		Frequency:       frequency,
		Start:           0,
		End:             numberOfSamples - 1,
	}

	switch valueType {
	case ShortIntValue:
		b.ShortValues = make([]int16, numberOfSignals*numberOfSamples)
	default:
		b.FloatValues = make([]float32, numberOfSignals*numberOfSamples)
	}

	b.assignTimes()
	return b
}

// Prepare readies the buffer to hold numberOfSignals float signals of
// numberOfSamples each. Storage is reused when the sample count already
// matches and the values are float with enough room; otherwise the time
// and value arrays are reallocated. The time array is always left as the
// ramp 0..numberOfSamples-1. It reports whether storage was reused.
func (b *Buffer) Prepare(numberOfSignals, numberOfSamples int) (reused bool, err error) {
	if numberOfSignals <= 0 || numberOfSamples < 0 {
		return false, fmt.Errorf("invalid buffer shape %dx%d", numberOfSignals, numberOfSamples)
	}

	size := numberOfSignals * numberOfSamples
	if numberOfSamples == b.NumberOfSamples && b.ValueType == FloatValue &&
		len(b.FloatValues) == size && len(b.Times) == numberOfSamples {
		reused = true
	} else {
		b.Times = make([]int, numberOfSamples)
		b.FloatValues = make([]float32, size)
		b.ShortValues = nil
		b.ValueType = FloatValue
	}

	b.NumberOfSignals = numberOfSignals
	b.NumberOfSamples = numberOfSamples
	b.Start = 0
	b.End = numberOfSamples - 1
	b.assignTimes()

	return reused, nil
}

func (b *Buffer) assignTimes() {
	for i := range b.Times {
		b.Times[i] = i
	}
}

// Raw returns the stored value of signal index at sample i, before any
// channel gain or offset
func (b *Buffer) Raw(i, index int) float64 {
	pos := i*b.NumberOfSignals + index
	if b.ValueType == ShortIntValue {
		return float64(b.ShortValues[pos])
	}
	return float64(b.FloatValues[pos])
}

// SetRaw stores a raw float value; it panics on short-int buffers
func (b *Buffer) SetRaw(i, index int, value float32) {
	if b.ValueType != FloatValue {
		panic("signal: SetRaw on a short-int buffer")
	}
	b.FloatValues[i*b.NumberOfSignals+index] = value
}

// Clone returns a deep copy, useful for checking a buffer was left untouched
func (b *Buffer) Clone() *Buffer {
	c := *b
	c.Times = append([]int(nil), b.Times...)
	if b.ShortValues != nil {
		c.ShortValues = append([]int16(nil), b.ShortValues...)
	}
	if b.FloatValues != nil {
		c.FloatValues = append([]float32(nil), b.FloatValues...)
	}
	return &c
}
