// Package beepout plays a tone.Source through the gopxl/beep speaker.
package beepout

import (
	"errors"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/QEStudios/tonedriver/tone"
)

// Device is a tone.Device feeding a paused beep.Ctrl on the shared speaker.
type Device struct {
	mu   sync.Mutex
	ctrl *beep.Ctrl
}

var _ tone.Device = (*Device)(nil)

func New() *Device {
	return &Device{}
}

func (d *Device) Open(sampleRate, bufferSamples int, src tone.Source) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.ctrl != nil {
		return errors.New("device already open")
	}

	if err := speaker.Init(beep.SampleRate(sampleRate), bufferSamples); err != nil {
		return err
	}

	d.ctrl = &beep.Ctrl{Streamer: newStreamer(src, bufferSamples), Paused: true}
	speaker.Play(d.ctrl)
	return nil
}

func (d *Device) Resume() error {
	return d.setPaused(false)
}

func (d *Device) Pause() error {
	return d.setPaused(true)
}

func (d *Device) setPaused(paused bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.ctrl == nil {
		if paused {
			return nil
		}
		return errors.New("device not open")
	}
	speaker.Lock()
	d.ctrl.Paused = paused
	speaker.Unlock()
	return nil
}

func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.ctrl == nil {
		return nil
	}
	speaker.Clear()
	speaker.Close()
	d.ctrl = nil
	return nil
}

// streamer converts mono int16 samples to the stereo float frames beep mixes.
type streamer struct {
	src tone.Source
	buf []int16
}

func newStreamer(src tone.Source, bufferSamples int) *streamer {
	return &streamer{src: src, buf: make([]int16, bufferSamples)}
}

func (s *streamer) Stream(samples [][2]float64) (int, bool) {
	for done := 0; done < len(samples); {
		n := min(len(samples)-done, len(s.buf))
		chunk := s.buf[:n]
		s.src.Fill(chunk)
		for i, v := range chunk {
			f := float64(v) / 32768
			samples[done+i] = [2]float64{f, f}
		}
		done += n
	}
	return len(samples), true
}

func (s *streamer) Err() error {
	return nil
}
