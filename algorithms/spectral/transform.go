package spectral

import (
	"github.com/RyanBlaney/sonido-spectra/algorithms/signal"
	"github.com/RyanBlaney/sonido-spectra/logging"
)

// Config bounds the engine's working storage and batch parallelism
type Config struct {
	// MaxTransformLength is the largest working length, in complex points,
	// the engine will allocate
	MaxTransformLength int `mapstructure:"max_transform_length"`

	// Workers caps ForwardAll's pool; zero sizes it from the CPU count
	Workers int `mapstructure:"workers"`
}

// DefaultConfig allows transforms up to 2^22 points
func DefaultConfig() Config {
	return Config{
		MaxTransformLength: 1 << 22,
		Workers:            0,
	}
}

// Transformer runs forward and inverse transforms between channels. It
// holds no mutable state, so one Transformer may serve concurrent callers
// as long as each call writes to its own output buffer.
type Transformer struct {
	config Config
	logger logging.Logger
}

// NewTransformer creates a transformer with the default limits that logs
// through the global logger
func NewTransformer() *Transformer {
	return NewTransformerWithConfig(DefaultConfig(), nil)
}

// NewTransformerWithConfig creates a transformer with explicit limits and
// logger. A nil logger falls back to the global one.
func NewTransformerWithConfig(config Config, logger logging.Logger) *Transformer {
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}
	if config.MaxTransformLength <= 0 {
		config.MaxTransformLength = DefaultConfig().MaxTransformLength
	}

	return &Transformer{
		config: config,
		logger: logger.WithFields(logging.Fields{"component": "spectral"}),
	}
}

// Config returns the limits the transformer was built with
func (t *Transformer) Config() Config {
	return t.config
}

func (t *Transformer) fail(err *TransformError) error {
	t.logger.Error(err, "transform failed", logging.Fields{"op": err.Op})
	return err
}

// extract reads a channel's calibrated samples, mapping read failures to
// invalid input
func extract(op, role string, c *signal.Channel) (*signal.Extracted, *TransformError) {
	if c == nil {
		return nil, newError(op, ErrInvalidInput, "%s channel is nil", role)
	}

	extracted, err := c.Extract()
	if err != nil {
		return nil, newError(op, ErrInvalidInput, "%s channel: %v", role, err)
	}
	if len(extracted.Values) == 0 {
		return nil, newError(op, ErrInvalidInput, "%s channel has no samples", role)
	}

	return extracted, nil
}

// checkPair validates a two-signal output: both channels present, on the
// same buffer, at distinct indices
func checkPair(op string, re, im *signal.Channel) *TransformError {
	if re == nil || im == nil {
		return newError(op, ErrInvalidInput, "output channels are required")
	}
	if re.Buffer == nil || re.Buffer != im.Buffer {
		return newError(op, ErrInvalidInput, "output channels must share one buffer")
	}
	if re.Index == im.Index {
		return newError(op, ErrInvalidInput, "output channels share index %d", re.Index)
	}
	if re.Buffer.NumberOfSignals != 2 {
		return newError(op, ErrBufferShape, "output buffer holds %d signals, want 2", re.Buffer.NumberOfSignals)
	}
	if re.Index < 0 || re.Index > 1 || im.Index < 0 || im.Index > 1 {
		return newError(op, ErrInvalidInput, "output indices %d/%d outside 0..1", re.Index, im.Index)
	}
	return nil
}

// commitPair copies an interleaved working array into a two-signal buffer
func commitPair(re, im *signal.Channel, data []float32, length int) {
	buffer := re.Buffer
	_, _ = buffer.Prepare(2, length)

	for k := range length {
		buffer.FloatValues[2*k+re.Index] = data[2*k]
		buffer.FloatValues[2*k+im.Index] = data[2*k+1]
	}
}
