package tone

import (
	"fmt"
	"log"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/QEStudios/tonedriver/pitch"
)

// Voice is the single sound-producing channel a backend exposes to a Player.
type Voice interface {
	// Start begins a new note at freq, restarting the waveform.
	Start(freq float64) error
	// Stop silences the voice. Calling it while silent has no effect.
	Stop() error
	// SetAmplitude applies a gain already clamped to [0,1]. It may be called
	// concurrently with the other methods.
	SetAmplitude(amp float64) error
	// Running reports whether the voice is sounding.
	Running() bool
}

// Player implements Driver on top of a Voice. It validates arguments,
// sequences timed notes through its Clock, and serializes commands.
type Player struct {
	voice  Voice
	clock  Clock
	logger *log.Logger

	mu        sync.Mutex // held for the whole of each command
	frequency atomic.Uint64
	amplitude atomic.Uint64
}

var _ Driver = (*Player)(nil)

// NewPlayer returns a Player driving v. A nil cfg uses DefaultConfig.
func NewPlayer(v Voice, cfg *Config) *Player {
	cfg = cfg.withDefaults()
	p := &Player{
		voice:  v,
		clock:  cfg.Clock,
		logger: cfg.Logger,
	}
	p.SetAmplitude(cfg.Amplitude)
	return p
}

func (p *Player) PlayFrequency(freq float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.start(freq)
}

func (p *Player) PlayFrequencyFor(freq float64, d time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.start(freq); err != nil {
		return err
	}
	p.stopAfter(d)
	return nil
}

func (p *Player) PlayNote(class pitch.Class, octave int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.validate(class, octave); err != nil {
		return err
	}
	return p.start(pitch.FrequencyOf(class, octave))
}

func (p *Player) PlayNoteFor(class pitch.Class, octave int, d time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.validate(class, octave); err != nil {
		return err
	}
	if err := p.start(pitch.FrequencyOf(class, octave)); err != nil {
		return err
	}
	p.stopAfter(d)
	return nil
}

func (p *Player) PlayChord(notes []pitch.Note) error {
	return p.PlayArpeggio(notes, DefaultNoteDuration, ChordArpeggioDelay)
}

// PlayArpeggio checks every note before playing any of them, so a request
// containing an invalid note produces no sound at all.
func (p *Player) PlayArpeggio(notes []pitch.Note, noteDuration, delay time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(notes) < 1 || len(notes) > MaxPolyphony {
		err := fmt.Errorf("%w: %d, chords and arpeggios can have between 1 and %d notes", ErrInvalidPolyphony, len(notes), MaxPolyphony)
		p.logger.Print(err)
		return err
	}
	for _, n := range notes {
		if err := p.validate(n.Class, n.Octave); err != nil {
			return err
		}
	}

	for _, n := range notes {
		if err := p.start(n.Frequency()); err != nil {
			return err
		}
		p.stopAfter(noteDuration)
		p.rest(delay)
	}
	return nil
}

func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stop()
}

func (p *Player) StopAfter(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopAfter(d)
}

func (p *Player) Rest(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rest(d)
}

// SetAmplitude does not wait for a running command to finish.
func (p *Player) SetAmplitude(amp float64) {
	amp = clampAmplitude(amp)
	p.amplitude.Store(math.Float64bits(amp))
	if err := p.voice.SetAmplitude(amp); err != nil {
		p.logger.Printf("cannot set amplitude: %v", err)
	}
}

func (p *Player) IsValidNote(class pitch.Class, octave int) bool {
	return p.validate(class, octave) == nil
}

// Amplitude returns the stored output gain.
func (p *Player) Amplitude() float64 {
	return math.Float64frombits(p.amplitude.Load())
}

// Frequency returns the frequency of the last note started.
func (p *Player) Frequency() float64 {
	return math.Float64frombits(p.frequency.Load())
}

// Running reports whether a tone is sounding.
func (p *Player) Running() bool {
	return p.voice.Running()
}

func (p *Player) validate(class pitch.Class, octave int) error {
	err := pitch.Validate(class, octave)
	if err != nil {
		p.logger.Printf("%v", err)
	}
	return err
}

func (p *Player) start(freq float64) error {
	if err := p.voice.Start(freq); err != nil {
		err = fmt.Errorf("cannot play %.2f Hz: %w", freq, err)
		p.logger.Print(err)
		return err
	}
	p.frequency.Store(math.Float64bits(freq))
	return nil
}

func (p *Player) stop() {
	if err := p.voice.Stop(); err != nil {
		p.logger.Printf("cannot stop output: %v", err)
	}
}

func (p *Player) stopAfter(d time.Duration) {
	p.clock.Sleep(d)
	p.stop()
}

func (p *Player) rest(d time.Duration) {
	p.stop()
	p.clock.Sleep(d)
}
