package pitch

import (
	"fmt"
	"strconv"
	"strings"
)

// Default pitch used when a note would otherwise be out of range.
const (
	DefaultClass  = C
	DefaultOctave = 4
)

// MIDI key range covered by the supported octaves (C0 = 12 through B6 = 95).
const (
	minMIDIKey = (0 + 1) * NotesPerOctave
	maxMIDIKey = (MaxOctave+1)*NotesPerOctave + int(B)
)

// A Note is a pitch class in a specific octave.
type Note struct {
	Class  Class
	Octave int
}

// NewNote returns the given note, or C4 if class and octave are not a valid pitch.
func NewNote(class Class, octave int) Note {
	if !IsValid(class, octave) {
		return Note{Class: DefaultClass, Octave: DefaultOctave}
	}
	return Note{Class: class, Octave: octave}
}

// IsValid reports whether the note lies inside the supported range.
func (n Note) IsValid() bool {
	return IsValid(n.Class, n.Octave)
}

// Frequency returns the frequency of the note in Hz.
func (n Note) Frequency() float64 {
	return FrequencyOf(n.Class, n.Octave)
}

// String formats the note as its sharp name followed by the octave, e.g. "C#4".
func (n Note) String() string {
	return fmt.Sprintf("%s%d", n.Class, n.Octave)
}

// Transpose moves the note by a signed number of semitones.
// A result outside the supported range resets to C4.
func (n Note) Transpose(semitones int) Note {
	total := n.Octave*NotesPerOctave + int(n.Class) + semitones

	// Negative totals would give a negative modulo, they are out of range anyway.
	if total < 0 {
		return NewNote(DefaultClass, DefaultOctave)
	}
	return NewNote(Class(total%NotesPerOctave), total/NotesPerOctave)
}

// Next returns the note one semitone up.
func (n Note) Next() Note {
	return n.Transpose(1)
}

// Prev returns the note one semitone down.
func (n Note) Prev() Note {
	return n.Transpose(-1)
}

// MIDI returns the MIDI key number of the note (C4 = 60, A4 = 69).
func (n Note) MIDI() int {
	return (n.Octave+1)*NotesPerOctave + int(n.Class)
}

// FromMIDI converts a MIDI key number to a note.
// Keys outside the supported octaves return an error.
func FromMIDI(key int) (Note, error) {
	if key < minMIDIKey || key > maxMIDIKey {
		return Note{}, fmt.Errorf("MIDI key %d outside supported range %d-%d", key, minMIDIKey, maxMIDIKey)
	}
	return Note{Class: Class(key % NotesPerOctave), Octave: key/NotesPerOctave - 1}, nil
}

var letterClasses = map[byte]Class{'C': C, 'D': D, 'E': E, 'F': F, 'G': G, 'A': A, 'B': B}

// ParseNote parses a note written as a letter, any number of sharps (#) or
// flats (b), and an octave, e.g. "C#4", "Eb3" or "a5". Accidentals may cross
// an octave boundary ("Cb4" is B3). The result must be a valid pitch.
func ParseNote(s string) (Note, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Note{}, fmt.Errorf("empty note name")
	}

	class, ok := letterClasses[strings.ToUpper(s[:1])[0]]
	if !ok {
		return Note{}, fmt.Errorf("note %q must start with a letter from A to G", s)
	}

	offset := 0
	rest := s[1:]
	for len(rest) > 0 && (rest[0] == '#' || rest[0] == 'b') {
		if rest[0] == '#' {
			offset++
		} else {
			offset--
		}
		rest = rest[1:]
	}

	octave, err := strconv.Atoi(rest)
	if err != nil {
		return Note{}, fmt.Errorf("note %q has no valid octave: %w", s, err)
	}

	total := octave*NotesPerOctave + int(class) + offset
	n := Note{Class: Class(((total % NotesPerOctave) + NotesPerOctave) % NotesPerOctave), Octave: floorDiv(total, NotesPerOctave)}
	if err := Validate(n.Class, n.Octave); err != nil {
		return Note{}, fmt.Errorf("note %q: %w", s, err)
	}
	return n, nil
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}
