// Package pitch maps musical pitches (pitch class + octave) to frequencies
// using 12-tone equal temperament.
package pitch

import (
	"errors"
	"fmt"
	"math"
)

// Class is one of the 12 chromatic pitch classes, C (0) through B (11).
type Class int

const (
	C Class = iota
	CSharp
	D
	DSharp
	E
	F
	FSharp
	G
	GSharp
	A
	ASharp
	B
)

const (
	NotesPerOctave = 12
	MaxOctave      = 6 // Highest supported octave (inclusive).
	NumOctaves     = MaxOctave + 1

	ReferenceFrequency = 440.0 // Frequency of the reference pitch in Hz.
	ReferenceClass     = A
	ReferenceOctave    = 4
)

var (
	ErrInvalidClass  = errors.New("invalid pitch class")
	ErrInvalidOctave = errors.New("invalid octave")
)

var classNames = [NotesPerOctave]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

var longClassNames = [NotesPerOctave]string{"C", "C#/Db", "D", "D#/Eb", "E", "F", "F#/Gb", "G", "G#/Ab", "A", "A#/Bb", "B"}

func (c Class) isValid() bool {
	return c >= C && c <= B
}

func (c Class) String() string {
	if !c.isValid() {
		return "?"
	}
	return classNames[c]
}

// LongName returns the name of the pitch class including its flat spelling (e.g. "C#/Db").
func (c Class) LongName() string {
	if !c.isValid() {
		return "?"
	}
	return longClassNames[c]
}

// IsValid reports whether class and octave form a supported pitch.
func IsValid(class Class, octave int) bool {
	return Validate(class, octave) == nil
}

// Validate returns nil for a supported pitch, otherwise an error naming the part that is out of range.
func Validate(class Class, octave int) error {
	if !class.isValid() {
		return fmt.Errorf("%w: %d, pitch classes range from 0 to %d (C to B)", ErrInvalidClass, int(class), NotesPerOctave-1)
	}
	if octave < 0 || octave > MaxOctave {
		return fmt.Errorf("%w: %d, octaves range from 0 to %d", ErrInvalidOctave, octave, MaxOctave)
	}
	return nil
}

// SemitonesBetween returns the signed number of semitones from the first pitch to the second.
func SemitonesBetween(class1 Class, octave1 int, class2 Class, octave2 int) int {
	return (int(class2) + NotesPerOctave*octave2) - (int(class1) + NotesPerOctave*octave1)
}

// FrequencyOf returns the equal-tempered frequency in Hz of the given pitch.
// The caller is responsible for passing a valid pitch.
func FrequencyOf(class Class, octave int) float64 {
	d := SemitonesBetween(ReferenceClass, ReferenceOctave, class, octave)
	return ReferenceFrequency * math.Pow(2, float64(d)/NotesPerOctave)
}

// Table holds the precomputed frequency of every supported pitch, indexed [class][octave].
// Useful where computing powers at play time is too expensive.
var Table [NotesPerOctave][NumOctaves]float64

func init() {
	for c := range NotesPerOctave {
		for o := range NumOctaves {
			Table[c][o] = FrequencyOf(Class(c), o)
		}
	}
}
