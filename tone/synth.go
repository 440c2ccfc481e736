package tone

import (
	"encoding/binary"
	"math"
	"sync/atomic"
)

const maxSampleValue = 32767

// voice is one published note. A new note always gets a new voice, which is
// how the producer knows to restart the waveform phase.
type voice struct {
	frequency float64
}

// Synth generates a square wave at the current note frequency. It is the
// real-time producer behind every audio Device: the control side publishes
// state through atomics and the device callback pulls samples with Fill or Read.
type Synth struct {
	sampleRate float64

	// Shared with the control goroutine.
	voice     atomic.Pointer[voice]
	amplitude atomic.Uint64 // math.Float64bits of the amplitude
	running   atomic.Bool

	// Owned by the producer.
	current *voice
	phase   uint64 // samples generated since the current voice started
	scratch [512]int16
}

// NewSynth returns a stopped synth for the given sample rate.
func NewSynth(sampleRate int, amplitude float64) *Synth {
	s := &Synth{sampleRate: float64(sampleRate)}
	s.SetAmplitude(amplitude)
	return s
}

// Begin starts a new note at freq. The phase restarts at the beginning of the next fill.
func (s *Synth) Begin(freq float64) {
	s.voice.Store(&voice{frequency: freq})
	s.running.Store(true)
}

// Halt silences the output. Frequency and amplitude are kept.
func (s *Synth) Halt() {
	s.running.Store(false)
}

// SetAmplitude stores the output gain, clamped to [0,1].
func (s *Synth) SetAmplitude(amp float64) {
	s.amplitude.Store(math.Float64bits(clampAmplitude(amp)))
}

// Amplitude returns the stored output gain.
func (s *Synth) Amplitude() float64 {
	return math.Float64frombits(s.amplitude.Load())
}

// Frequency returns the frequency of the current note, 0 if none was played.
func (s *Synth) Frequency() float64 {
	if v := s.voice.Load(); v != nil {
		return v.frequency
	}
	return 0
}

// Running reports whether the synth is producing sound.
func (s *Synth) Running() bool {
	return s.running.Load()
}

// Fill writes the next len(buf) samples. It is called from the audio callback
// and never blocks or allocates.
func (s *Synth) Fill(buf []int16) {
	if !s.running.Load() {
		clear(buf)
		return
	}

	v := s.voice.Load()
	if v != s.current {
		s.current = v
		s.phase = 0
	}
	if v == nil || v.frequency <= 0 {
		clear(buf)
		return
	}

	level := int16(maxSampleValue * s.Amplitude())
	step := 2 * math.Pi * v.frequency / s.sampleRate

	for i := range buf {
		if math.Sin(step*float64(s.phase)) > 0 {
			buf[i] = level
		} else {
			buf[i] = -level
		}
		s.phase++
	}
}

// Read fills p with len(p)/2 little-endian signed 16-bit samples.
func (s *Synth) Read(p []byte) (int, error) {
	samples := len(p) / 2
	for done := 0; done < samples; {
		chunk := s.scratch[:min(samples-done, len(s.scratch))]
		s.Fill(chunk)
		for i, v := range chunk {
			binary.LittleEndian.PutUint16(p[2*(done+i):], uint16(v))
		}
		done += len(chunk)
	}
	return samples * 2, nil
}
