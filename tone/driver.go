// Package tone plays pitches, timed notes, chords and arpeggios on a
// square-wave tone generator.
//
// Every backend implements Driver. Commands without a duration return at once
// and the tone keeps sounding until stopped; commands with a duration block the
// calling goroutine until the note has finished. Commands issued on one driver
// from several goroutines are serialized.
package tone

import (
	"errors"
	"time"

	"github.com/QEStudios/tonedriver/pitch"
)

const (
	MaxPolyphony         = 5                      // Maximum number of notes in a chord or arpeggio.
	DefaultNoteDuration  = 100 * time.Millisecond // Duration of each arpeggio note.
	DefaultArpeggioDelay = 100 * time.Millisecond // Silence between arpeggio notes.
	ChordArpeggioDelay   = 10 * time.Millisecond  // Silence between chord notes.
)

var ErrInvalidPolyphony = errors.New("invalid number of notes")

// Driver is the capability set shared by all tone backends.
type Driver interface {
	// PlayFrequency starts a tone at freq Hz and returns immediately.
	// A frequency of zero or below is silent.
	PlayFrequency(freq float64) error
	// PlayFrequencyFor plays freq for d, then stops. It blocks for d.
	PlayFrequencyFor(freq float64, d time.Duration) error
	// PlayNote starts the given pitch and returns immediately.
	PlayNote(class pitch.Class, octave int) error
	// PlayNoteFor plays the given pitch for d, then stops. It blocks for d.
	PlayNoteFor(class pitch.Class, octave int, d time.Duration) error
	// PlayChord plays up to MaxPolyphony notes as a fast arpeggio.
	PlayChord(notes []pitch.Note) error
	// PlayArpeggio plays each note for noteDuration followed by delay of silence.
	PlayArpeggio(notes []pitch.Note, noteDuration, delay time.Duration) error
	// Stop silences the output immediately.
	Stop()
	// StopAfter waits d, then stops.
	StopAfter(d time.Duration)
	// Rest stops, then waits d.
	Rest(d time.Duration)
	// SetAmplitude sets the output gain, clamped to [0,1].
	SetAmplitude(amp float64)
	// IsValidNote reports whether the pitch can be played, logging why not.
	IsValidNote(class pitch.Class, octave int) bool
}
