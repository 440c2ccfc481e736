package tone

import (
	"fmt"
	"sync"
)

// Engine synthesizes the square wave in software and plays it on an audio Device.
type Engine struct {
	*Player
	synth  *Synth
	device Device

	closeOnce sync.Once
	closeErr  error
}

// NewEngine opens dev with a new Synth as its source. If the device cannot be
// opened the error is returned and no engine is created.
func NewEngine(dev Device, cfg *Config) (*Engine, error) {
	cfg = cfg.withDefaults()

	synth := NewSynth(cfg.SampleRate, cfg.Amplitude)
	if err := dev.Open(cfg.SampleRate, cfg.BufferSamples, synth); err != nil {
		cfg.Logger.Printf("audio device unavailable: %v", err)
		return nil, fmt.Errorf("cannot open audio device: %w", err)
	}

	e := &Engine{
		synth:  synth,
		device: dev,
	}
	e.Player = NewPlayer(engineVoice{e}, cfg)
	return e, nil
}

// Synth returns the sample producer feeding the device.
func (e *Engine) Synth() *Synth {
	return e.synth
}

// Close silences the engine and releases the device.
func (e *Engine) Close() error {
	e.closeOnce.Do(func() {
		e.Stop()
		e.closeErr = e.device.Close()
	})
	return e.closeErr
}

// engineVoice adapts the Synth and Device pair to Voice.
type engineVoice struct {
	e *Engine
}

// Start leaves the synth untouched if the device cannot be resumed.
func (v engineVoice) Start(freq float64) error {
	if err := v.e.device.Resume(); err != nil {
		return err
	}
	v.e.synth.Begin(freq)
	return nil
}

func (v engineVoice) Stop() error {
	// Silence the producer first so anything pulled before the pause is quiet.
	v.e.synth.Halt()
	return v.e.device.Pause()
}

func (v engineVoice) SetAmplitude(amp float64) error {
	v.e.synth.SetAmplitude(amp)
	return nil
}

func (v engineVoice) Running() bool {
	return v.e.synth.Running()
}
