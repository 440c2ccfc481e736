// Package otoout plays a tone.Source through ebitengine/oto.
package otoout

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/QEStudios/tonedriver/tone"
)

// oto allows a single context per process.
var (
	contextOnce sync.Once
	otoCtx      *oto.Context
	contextErr  error
	contextRate int
)

// Device is a tone.Device backed by an oto player.
type Device struct {
	src    atomic.Pointer[tone.Source] // read lock-free by the audio thread
	player *oto.Player
	mu     sync.Mutex
	closed bool
}

var _ tone.Device = (*Device)(nil)

// New returns an unopened Device.
func New() *Device {
	return &Device{}
}

func (d *Device) Open(sampleRate, bufferSamples int, src tone.Source) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.player != nil {
		return errors.New("device already open")
	}

	ctx, err := openContext(sampleRate, bufferSamples)
	if err != nil {
		return err
	}

	d.src.Store(&src)
	d.player = ctx.NewPlayer(d)
	d.player.SetBufferSize(2 * bufferSamples)
	return nil
}

func openContext(sampleRate, bufferSamples int) (*oto.Context, error) {
	contextOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: 1,
			Format:       oto.FormatSignedInt16LE,
			BufferSize:   time.Duration(bufferSamples) * time.Second / time.Duration(sampleRate),
		}
		var ready chan struct{}
		otoCtx, ready, contextErr = oto.NewContext(op)
		if contextErr != nil {
			return
		}
		<-ready
		contextRate = sampleRate
	})
	if contextErr != nil {
		return nil, contextErr
	}
	if contextRate != sampleRate {
		return nil, errors.New("audio context already running at a different sample rate")
	}
	return otoCtx, nil
}

// Read is called by oto's mixer goroutine.
func (d *Device) Read(p []byte) (int, error) {
	src := d.src.Load()
	if src == nil {
		clear(p)
		return len(p), nil
	}
	return (*src).Read(p)
}

func (d *Device) Resume() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.player == nil || d.closed {
		return errors.New("device not open")
	}
	if !d.player.IsPlaying() {
		d.player.Play()
	}
	return d.player.Err()
}

func (d *Device) Pause() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.player == nil || d.closed {
		return nil
	}
	d.player.Pause()
	return nil
}

func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.player == nil || d.closed {
		return nil
	}
	d.closed = true
	d.src.Store(nil)
	return d.player.Close()
}
