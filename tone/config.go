package tone

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math"

	"gopkg.in/yaml.v3"
)

const (
	DefaultSampleRate    = 44100
	DefaultBufferSamples = 1024 // Samples per device callback.
	DefaultAmplitude     = 0.85
)

// Config holds the settings shared by every driver.
type Config struct {
	SampleRate    int     `yaml:"sample_rate"`
	BufferSamples int     `yaml:"buffer_samples"`
	Amplitude     float64 `yaml:"amplitude"` // Initial amplitude, 0.0 to 1.0.

	Logger *log.Logger `yaml:"-"` // Diagnostics sink. Nil means log.Default().
	Clock  Clock       `yaml:"-"` // Time provider for blocking waits. Nil means SystemClock.
}

// DefaultConfig returns the reference configuration: 44.1 kHz, 1024-sample buffers.
func DefaultConfig() *Config {
	return &Config{
		SampleRate:    DefaultSampleRate,
		BufferSamples: DefaultBufferSamples,
		Amplitude:     DefaultAmplitude,
	}
}

// LoadConfig reads a YAML configuration on top of the defaults.
// Missing fields keep their default values.
func LoadConfig(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("cannot decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.Amplitude = clampAmplitude(cfg.Amplitude)
	return cfg, nil
}

func (c *Config) validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive, got %d", c.SampleRate)
	}
	if c.BufferSamples <= 0 {
		return fmt.Errorf("buffer size must be positive, got %d", c.BufferSamples)
	}
	return nil
}

// withDefaults fills the unset fields of a copy of c.
func (c *Config) withDefaults() *Config {
	out := DefaultConfig()
	if c != nil {
		*out = *c
	}
	if out.SampleRate <= 0 {
		out.SampleRate = DefaultSampleRate
	}
	if out.BufferSamples <= 0 {
		out.BufferSamples = DefaultBufferSamples
	}
	if out.Logger == nil {
		out.Logger = log.Default()
	}
	if out.Clock == nil {
		out.Clock = SystemClock{}
	}
	out.Amplitude = clampAmplitude(out.Amplitude)
	return out
}

func clampAmplitude(amp float64) float64 {
	if amp < 0 || math.IsNaN(amp) {
		return 0
	} else if amp > 1 {
		return 1
	}
	return amp
}
