//go:build portaudio

package paout

import (
	"errors"
	"sync"

	"github.com/gordonklaus/portaudio"

	"github.com/QEStudios/tonedriver/tone"
)

// Device is a tone.Device backed by the default PortAudio output stream.
type Device struct {
	mu      sync.Mutex
	stream  *portaudio.Stream
	started bool
}

var _ tone.Device = (*Device)(nil)

func New() *Device {
	return &Device{}
}

func (d *Device) Open(sampleRate, bufferSamples int, src tone.Source) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stream != nil {
		return errors.New("device already open")
	}

	if err := portaudio.Initialize(); err != nil {
		return err
	}
	stream, err := portaudio.OpenDefaultStream(0, 1, float64(sampleRate), bufferSamples, func(out []int16) {
		src.Fill(out)
	})
	if err != nil {
		portaudio.Terminate()
		return err
	}
	d.stream = stream
	return nil
}

func (d *Device) Resume() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stream == nil {
		return errors.New("device not open")
	}
	if d.started {
		return nil
	}
	if err := d.stream.Start(); err != nil {
		return err
	}
	d.started = true
	return nil
}

func (d *Device) Pause() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stream == nil || !d.started {
		return nil
	}
	d.started = false
	return d.stream.Stop()
}

func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stream == nil {
		return nil
	}
	if d.started {
		d.stream.Stop()
		d.started = false
	}
	err := d.stream.Close()
	d.stream = nil
	return errors.Join(err, portaudio.Terminate())
}
