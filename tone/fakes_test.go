package tone

import (
	"bytes"
	"errors"
	"log"
	"sync"
)

var errFakeOpen = errors.New("no audio hardware")

// fakeDevice records what the engine asks of it and lets tests pull samples.
type fakeDevice struct {
	mu            sync.Mutex
	failOpen      bool
	resumeErr     error
	src           Source
	sampleRate    int
	bufferSamples int
	playing       bool
	resumes       int
	pauses        int
	closes        int
}

func (d *fakeDevice) Open(sampleRate, bufferSamples int, src Source) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failOpen {
		return errFakeOpen
	}
	d.src = src
	d.sampleRate = sampleRate
	d.bufferSamples = bufferSamples
	return nil
}

func (d *fakeDevice) Resume() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.resumeErr != nil {
		return d.resumeErr
	}
	d.playing = true
	d.resumes++
	return nil
}

func (d *fakeDevice) Pause() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.playing = false
	d.pauses++
	return nil
}

func (d *fakeDevice) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.playing = false
	d.closes++
	return nil
}

func (d *fakeDevice) isPlaying() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.playing
}

// pull asks the source for n samples, as the device callback would.
func (d *fakeDevice) pull(n int) []int16 {
	buf := make([]int16, n)
	d.src.Fill(buf)
	return buf
}

type voiceEvent struct {
	Kind string
	Freq float64
}

// fakeVoice records every call made by a Player.
type fakeVoice struct {
	mu        sync.Mutex
	events    []voiceEvent
	running   bool
	amplitude float64
	startErr  error
}

func (v *fakeVoice) Start(freq float64) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.startErr != nil {
		return v.startErr
	}
	v.events = append(v.events, voiceEvent{Kind: "start", Freq: freq})
	v.running = true
	return nil
}

func (v *fakeVoice) Stop() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.events = append(v.events, voiceEvent{Kind: "stop"})
	v.running = false
	return nil
}

func (v *fakeVoice) SetAmplitude(amp float64) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.amplitude = amp
	return nil
}

func (v *fakeVoice) Running() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.running
}

func (v *fakeVoice) recorded() []voiceEvent {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]voiceEvent(nil), v.events...)
}

// testConfig returns a config with a manual clock and a logger writing to buf.
func testConfig(clock Clock, buf *bytes.Buffer) *Config {
	cfg := DefaultConfig()
	cfg.Clock = clock
	cfg.Logger = log.New(buf, "", 0)
	return cfg
}
