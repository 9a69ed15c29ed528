package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShortChannelCalibration(t *testing.T) {
	c := NewShortChannel("lead_ii", 1000, 0.5, 10, []int16{10, 12, 8, 30})

	extracted, err := c.Extract()
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 1, -1, 10}, extracted.Values)
	assert.InDeltaSlice(t, []float64{0, 0.001, 0.002, 0.003}, extracted.Times, 1e-12)
	assert.Equal(t, 1000.0, extracted.Frequency)
}

func TestExtractHonoursVisibleRange(t *testing.T) {
	c := NewFloatChannel("v1", 2, []float64{1, 2, 3, 4, 5})
	c.Buffer.Start = 1
	c.Buffer.End = 3

	extracted, err := c.Extract()
	require.NoError(t, err)

	assert.Equal(t, []float64{2, 3, 4}, extracted.Values)
	assert.Equal(t, []float64{0.5, 1, 1.5}, extracted.Times)
	assert.Equal(t, 3, c.Len())
}

func TestExtractRejectsBadChannels(t *testing.T) {
	var nilChannel *Channel
	_, err := nilChannel.Extract()
	assert.Error(t, err)

	c := NewFloatChannel("v1", 1, []float64{1, 2})
	c.Index = 1
	_, err = c.Extract()
	assert.Error(t, err)

	c.Index = 0
	c.Buffer.End = 5
	_, err = c.Extract()
	assert.Error(t, err)
	assert.Nil(t, c.Values())
}

func TestTransformPairSharesBuffer(t *testing.T) {
	re, im := NewTransformPair("lead_ii")

	assert.Same(t, re.Buffer, im.Buffer)
	assert.Equal(t, 0, re.Index)
	assert.Equal(t, 1, im.Index)
	assert.Equal(t, 2, re.Buffer.NumberOfSignals)
	assert.Equal(t, "lead_ii Re", re.Name)
	assert.Equal(t, "lead_ii Im", im.Name)
	assert.Equal(t, 0, re.Len())
}

func TestProcessedChannel(t *testing.T) {
	p := NewProcessedChannel("filtered")

	assert.Equal(t, 1, p.Buffer.NumberOfSignals)
	assert.Equal(t, FloatValue, p.Buffer.ValueType)
	assert.Equal(t, 1.0, p.Gain)
}

func TestRange(t *testing.T) {
	c := NewFloatChannel("v1", 1, []float64{3, -2, 8, 0})

	lo, hi := c.Range()
	assert.Equal(t, -2.0, lo)
	assert.Equal(t, 8.0, hi)
}
