// Package headless provides a tone.Device with no audio hardware behind it.
// Samples are produced only when pulled, or by a pump goroutine that consumes
// them at the configured rate.
package headless

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/QEStudios/tonedriver/tone"
)

// Device is a tone.Device that discards or hands back whatever it pulls.
type Device struct {
	failOpen error
	realtime bool

	mu            sync.Mutex
	src           tone.Source
	sampleRate    int
	bufferSamples int
	playing       bool
	open          bool
	stop          chan struct{}
	done          chan struct{}

	fillMu sync.Mutex // Pull and the pump never fill at the same time
	pulled atomic.Int64
}

var _ tone.Device = (*Device)(nil)

type Option func(*Device)

// WithOpenError makes Open fail with err.
func WithOpenError(err error) Option {
	return func(d *Device) { d.failOpen = err }
}

// Realtime starts a goroutine that pulls one buffer per buffer period while
// the device is playing.
func Realtime() Option {
	return func(d *Device) { d.realtime = true }
}

func New(opts ...Option) *Device {
	d := &Device{}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Device) Open(sampleRate, bufferSamples int, src tone.Source) error {
	if d.failOpen != nil {
		return d.failOpen
	}
	if sampleRate <= 0 || bufferSamples <= 0 {
		return errors.New("sample rate and buffer size must be positive")
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.open {
		return errors.New("device already open")
	}
	d.src = src
	d.sampleRate = sampleRate
	d.bufferSamples = bufferSamples
	d.open = true

	if d.realtime {
		d.stop = make(chan struct{})
		d.done = make(chan struct{})
		period := time.Duration(bufferSamples) * time.Second / time.Duration(sampleRate)
		go d.pump(src, bufferSamples, period, d.stop, d.done)
	}
	return nil
}

func (d *Device) pump(src tone.Source, n int, period time.Duration, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(max(period, time.Microsecond))
	defer ticker.Stop()

	buf := make([]int16, n)
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if d.Playing() {
				d.fill(src, buf)
			}
		}
	}
}

func (d *Device) fill(src tone.Source, buf []int16) {
	d.fillMu.Lock()
	defer d.fillMu.Unlock()
	src.Fill(buf)
	d.pulled.Add(int64(len(buf)))
}

// Pull asks the source for n samples the way an audio callback would.
// A paused or closed device returns silence without touching the source.
// With Realtime set, Pull takes turns with the pump goroutine.
func (d *Device) Pull(n int) []int16 {
	buf := make([]int16, n)
	d.mu.Lock()
	playing, src := d.playing, d.src
	d.mu.Unlock()

	if playing && src != nil {
		d.fill(src, buf)
	}
	return buf
}

// Pulled returns the number of samples consumed from the source so far.
func (d *Device) Pulled() int64 {
	return d.pulled.Load()
}

func (d *Device) Playing() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.playing
}

func (d *Device) SampleRate() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.sampleRate
}

func (d *Device) Resume() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.open {
		return errors.New("device not open")
	}
	d.playing = true
	return nil
}

func (d *Device) Pause() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.playing = false
	return nil
}

func (d *Device) Close() error {
	d.mu.Lock()
	if !d.open {
		d.mu.Unlock()
		return nil
	}
	d.open = false
	d.playing = false
	stop, done := d.stop, d.done
	d.stop, d.done = nil, nil
	d.mu.Unlock()

	if stop != nil {
		close(stop)
		<-done
	}
	return nil
}
