package main

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/spf13/pflag"

	"github.com/QEStudios/tonedriver/music"
	"github.com/QEStudios/tonedriver/pitch"
)

// newFlagSet returns a flag set for a command. Its errors are returned to the
// caller rather than exiting.
func newFlagSet(name string) *pflag.FlagSet {
	return pflag.NewFlagSet(name, pflag.ContinueOnError)
}

// parseFlags parses args into fs, treating a help request as success.
func parseFlags(fs *pflag.FlagSet, args []string) (help bool, err error) {
	err = fs.Parse(args)
	if errors.Is(err, pflag.ErrHelp) {
		return true, nil
	}
	return false, err
}

func runTone(p player, args []string) error {
	fs := newFlagSet("tone")
	freq := fs.Float64P("freq", "f", pitch.ReferenceFrequency, "frequency in Hz")
	dur := fs.DurationP("duration", "d", time.Second, "how long to play")
	if help, err := parseFlags(fs, args); help || err != nil {
		return err
	}

	logger.Printf("Playing %.2f Hz for %v", *freq, *dur)
	return p.PlayFrequencyFor(*freq, *dur)
}

func runNotes(p player, args []string) error {
	fs := newFlagSet("notes")
	from := fs.String("from", "C1", "first note")
	to := fs.String("to", "B6", "last note")
	dur := fs.DurationP("duration", "d", 250*time.Millisecond, "note duration")
	rest := fs.DurationP("rest", "r", 100*time.Millisecond, "rest after each note")
	if help, err := parseFlags(fs, args); help || err != nil {
		return err
	}

	first, err := pitch.ParseNote(*from)
	if err != nil {
		return err
	}
	last, err := pitch.ParseNote(*to)
	if err != nil {
		return err
	}

	for _, n := range music.Chromatic(first, last) {
		logger.Printf("Playing note %s (%.2f Hz)", n, n.Frequency())
		if err := music.PlayNote(p, n, *dur); err != nil {
			return err
		}
		p.Rest(*rest)
	}
	return nil
}

func runScales(p player, args []string) error {
	fs := newFlagSet("scales")
	octave := fs.Int("octave", 3, "octave the scales start in")
	octaves := fs.Int("octaves", 2, "octaves each scale spans")
	dur := fs.DurationP("duration", "d", 150*time.Millisecond, "note duration")
	rest := fs.DurationP("rest", "r", 50*time.Millisecond, "rest after each note")
	between := fs.Duration("between", 200*time.Millisecond, "rest between scales")
	if help, err := parseFlags(fs, args); help || err != nil {
		return err
	}

	for class := pitch.C; class <= pitch.B; class++ {
		root := pitch.Note{Class: class, Octave: *octave}
		logger.Printf("Playing %s major scale from %s", class.LongName(), root)
		if err := music.PlayMajorScale(p, root, *octaves, *dur, *rest); err != nil {
			logger.Printf("scale incomplete: %v", err)
		}
		p.Rest(*between)
	}
	return nil
}

func runTable(p player, args []string) error {
	fs := newFlagSet("table")
	fromOctave := fs.Int("from-octave", 1, "first octave")
	toOctave := fs.Int("to-octave", pitch.MaxOctave, "last octave")
	dur := fs.DurationP("duration", "d", 250*time.Millisecond, "note duration")
	rest := fs.DurationP("rest", "r", 100*time.Millisecond, "rest after each note")
	if help, err := parseFlags(fs, args); help || err != nil {
		return err
	}
	if *fromOctave < 0 || *toOctave > pitch.MaxOctave || *fromOctave > *toOctave {
		return fmt.Errorf("%w: octaves must satisfy 0 <= from <= to <= %d", errUsage, pitch.MaxOctave)
	}

	for octave := *fromOctave; octave <= *toOctave; octave++ {
		for class := pitch.C; class <= pitch.B; class++ {
			freq := pitch.Table[class][octave]
			logger.Printf("Playing note %s octave %d (%.2f Hz)", class, octave, freq)
			if err := p.PlayFrequencyFor(freq, *dur); err != nil {
				return err
			}
			p.Rest(*rest)
		}
	}
	return nil
}

func runSweep(p player, args []string) error {
	fs := newFlagSet("sweep")
	from := fs.Float64("from", 16, "start frequency in Hz")
	to := fs.Float64("to", 1975, "end frequency in Hz")
	step := fs.Float64("step", 1, "frequency step in Hz")
	dur := fs.DurationP("duration", "d", 10*time.Millisecond, "time on each frequency")
	if help, err := parseFlags(fs, args); help || err != nil {
		return err
	}

	return music.Sweep(p, *from, *to, *step, *dur, func(freq float64) {
		if math.Mod(freq, 10) == 0 {
			logger.Printf("%.0f Hz", freq)
		}
	})
}

func runChord(p player, args []string) error {
	fs := newFlagSet("chord")
	repeat := fs.IntP("repeat", "n", 1, "times to play the chord")
	if help, err := parseFlags(fs, args); help || err != nil {
		return err
	}

	notes, err := parseNotes(fs.Args())
	if err != nil {
		return err
	}
	for range *repeat {
		if err := p.PlayChord(notes); err != nil {
			return err
		}
	}
	return nil
}

func runArpeggio(p player, args []string) error {
	fs := newFlagSet("arpeggio")
	dur := fs.DurationP("duration", "d", 100*time.Millisecond, "note duration")
	delay := fs.Duration("delay", 100*time.Millisecond, "silence after each note")
	repeat := fs.IntP("repeat", "n", 1, "times to play the arpeggio")
	if help, err := parseFlags(fs, args); help || err != nil {
		return err
	}

	notes, err := parseNotes(fs.Args())
	if err != nil {
		return err
	}
	for range *repeat {
		if err := p.PlayArpeggio(notes, *dur, *delay); err != nil {
			return err
		}
	}
	return nil
}

// parseNotes parses note names such as "C4" or "Eb3".
func parseNotes(args []string) ([]pitch.Note, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: no notes given", errUsage)
	}
	notes := make([]pitch.Note, 0, len(args))
	var errs []error
	for _, arg := range args {
		n, err := pitch.ParseNote(arg)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		notes = append(notes, n)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return notes, nil
}
