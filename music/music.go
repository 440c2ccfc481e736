// Package music plays higher-level musical material, such as notes, scales
// and sweeps, on any tone.Driver.
package music

import (
	"errors"
	"fmt"
	"time"

	"github.com/QEStudios/tonedriver/pitch"
	"github.com/QEStudios/tonedriver/tone"
)

// MajorScaleIntervals are the semitone steps of a major scale.
var MajorScaleIntervals = [...]int{2, 2, 1, 2, 2, 2, 1}

// PlayNote plays n on d for dur.
func PlayNote(d tone.Driver, n pitch.Note, dur time.Duration) error {
	return d.PlayNoteFor(n.Class, n.Octave, dur)
}

// PlayNotes plays each note for dur followed by rest. An invalid note is
// skipped and the rest still taken; the errors are returned together.
func PlayNotes(d tone.Driver, notes []pitch.Note, dur, rest time.Duration) error {
	var errs []error
	for _, n := range notes {
		if err := PlayNote(d, n, dur); err != nil {
			errs = append(errs, err)
		}
		d.Rest(rest)
	}
	return errors.Join(errs...)
}

// MajorScale returns the ascending major scale on root spanning octaves
// octaves, ending on the root an octave (or more) up. Notes past the top of
// the playable range are returned as they are and rejected when played.
func MajorScale(root pitch.Note, octaves int) []pitch.Note {
	semitone := int(root.Class) + pitch.NotesPerOctave*root.Octave
	notes := []pitch.Note{root}
	for range octaves {
		for _, step := range MajorScaleIntervals {
			semitone += step
			notes = append(notes, pitch.Note{
				Class:  pitch.Class(semitone % pitch.NotesPerOctave),
				Octave: semitone / pitch.NotesPerOctave,
			})
		}
	}
	return notes
}

// PlayMajorScale plays the scale up and then back down, sounding the top note once.
func PlayMajorScale(d tone.Driver, root pitch.Note, octaves int, noteDur, restDur time.Duration) error {
	up := MajorScale(root, octaves)
	run := make([]pitch.Note, 0, 2*len(up)-1)
	run = append(run, up...)
	for i := len(up) - 2; i >= 0; i-- {
		run = append(run, up[i])
	}
	return PlayNotes(d, run, noteDur, restDur)
}

// Chromatic returns every note from first to last inclusive, walking up or
// down in semitones.
func Chromatic(first, last pitch.Note) []pitch.Note {
	from := int(first.Class) + pitch.NotesPerOctave*first.Octave
	to := int(last.Class) + pitch.NotesPerOctave*last.Octave
	step := 1
	if to < from {
		step = -1
	}

	notes := make([]pitch.Note, 0, (to-from)*step+1)
	for semitone := from; ; semitone += step {
		notes = append(notes, pitch.Note{
			Class:  pitch.Class(semitone % pitch.NotesPerOctave),
			Octave: semitone / pitch.NotesPerOctave,
		})
		if semitone == to {
			break
		}
	}
	return notes
}

// Sweep plays every frequency from from to to in increments of step, each
// for dur. It sweeps downwards when from is above to. progress, if not nil,
// is called before each frequency is played.
func Sweep(d tone.Driver, from, to, step float64, dur time.Duration, progress func(freq float64)) error {
	if !(step > 0) {
		return fmt.Errorf("sweep step must be positive, got %g", step)
	}
	if to < from {
		step = -step
	}

	count := int((to-from)/step) + 1
	for i := range count {
		freq := from + float64(i)*step
		if progress != nil {
			progress(freq)
		}
		if err := d.PlayFrequencyFor(freq, dur); err != nil {
			return err
		}
	}
	return nil
}
