package signalio

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/RyanBlaney/sonido-spectra/algorithms/signal"
)

// Document is one signal as stored on disk. Either Samples (calibrated
// floats) or Raw (acquisition counts read through Gain and Offset) is set.
type Document struct {
	Name       string    `yaml:"name"`
	SampleRate float64   `yaml:"sample_rate"`
	Samples    []float64 `yaml:"samples,omitempty"`
	Imaginary  []float64 `yaml:"imaginary,omitempty"`
	Raw        []int16   `yaml:"raw,omitempty"`
	Gain       float64   `yaml:"gain,omitempty"`
	Offset     float64   `yaml:"offset,omitempty"`
}

// Recording is a decoded signal, with an imaginary companion when the
// document carried one
type Recording struct {
	Real      *signal.Channel
	Imaginary *signal.Channel
}

// Load reads every document in a YAML file
func Load(path string) ([]*Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open signal file")
	}
	defer f.Close()

	recordings, err := Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	return recordings, nil
}

// LoadOne reads a file that must hold exactly one signal
func LoadOne(path string) (*Recording, error) {
	recordings, err := Load(path)
	if err != nil {
		return nil, err
	}
	if len(recordings) != 1 {
		return nil, errors.Errorf("%s holds %d signals, want 1", path, len(recordings))
	}
	return recordings[0], nil
}

// Decode reads a stream of YAML documents, one signal each
func Decode(r io.Reader) ([]*Recording, error) {
	decoder := yaml.NewDecoder(r)

	var recordings []*Recording
	for {
		var doc Document
		err := decoder.Decode(&doc)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to decode document %d", len(recordings)+1)
		}

		recording, err := doc.Recording()
		if err != nil {
			return nil, errors.Wrapf(err, "document %d", len(recordings)+1)
		}
		recordings = append(recordings, recording)
	}

	if len(recordings) == 0 {
		return nil, errors.New("no signals found")
	}
	return recordings, nil
}

// Recording validates the document and builds its channels
func (d Document) Recording() (*Recording, error) {
	if d.SampleRate <= 0 {
		return nil, errors.Errorf("signal %q: sample_rate must be positive", d.Name)
	}
	if len(d.Samples) > 0 && len(d.Raw) > 0 {
		return nil, errors.Errorf("signal %q: set samples or raw, not both", d.Name)
	}

	name := d.Name
	if name == "" {
		name = "signal"
	}

	var real *signal.Channel
	switch {
	case len(d.Raw) > 0:
		gain := d.Gain
		if gain == 0 {
			gain = 1
		}
		real = signal.NewShortChannel(name, d.SampleRate, gain, d.Offset, d.Raw)
	case len(d.Samples) > 0:
		real = signal.NewFloatChannel(name, d.SampleRate, d.Samples)
	default:
		return nil, errors.Errorf("signal %q has no samples", d.Name)
	}

	recording := &Recording{Real: real}
	if len(d.Imaginary) > 0 {
		if len(d.Imaginary) != real.Len() {
			return nil, errors.Errorf("signal %q: imaginary has %d samples, real has %d",
				d.Name, len(d.Imaginary), real.Len())
		}
		recording.Imaginary = signal.NewFloatChannel(name+" imaginary", d.SampleRate, d.Imaginary)
	}

	return recording, nil
}

// FromChannel captures a channel's calibrated values as a document, so a
// processed signal can be written back out and re-read
func FromChannel(c *signal.Channel) (Document, error) {
	extracted, err := c.Extract()
	if err != nil {
		return Document{}, errors.Wrap(err, "failed to read channel")
	}

	return Document{
		Name:       c.Name,
		SampleRate: extracted.Frequency,
		Samples:    extracted.Values,
	}, nil
}
