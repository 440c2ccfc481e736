package main

import (
	"testing"
	"time"

	"github.com/QEStudios/tonedriver/pitch"
)

func TestKeyboardNote(t *testing.T) {
	tests := []struct {
		key  rune
		want pitch.Note
	}{
		{'a', pitch.Note{Class: pitch.C, Octave: 4}},
		{'w', pitch.Note{Class: pitch.CSharp, Octave: 4}},
		{'j', pitch.Note{Class: pitch.B, Octave: 4}},
		{'k', pitch.Note{Class: pitch.C, Octave: 5}},
	}
	for _, tt := range tests {
		got, ok := keyboardNote(tt.key, 4)
		if !ok || got != tt.want {
			t.Errorf("key %q: expected %s, got %s (ok=%v)", tt.key, tt.want, got, ok)
		}
	}
	if _, ok := keyboardNote('p', 4); ok {
		t.Error("expected 'p' to play nothing")
	}
}

func TestKeyboardPress(t *testing.T) {
	e, dev, _ := newTestEngine(t)
	k := newKeyboard(e, 4, 0)

	if k.press('h') {
		t.Fatal("unexpected quit")
	}
	if e.Frequency() != 440 || !dev.Playing() {
		t.Errorf("expected A4 to sound, got %f", e.Frequency())
	}

	k.press('x')
	k.press('h')
	if e.Frequency() != 880 {
		t.Errorf("expected A5 after octave up, got %f", e.Frequency())
	}

	k.press('-')
	if a := e.Amplitude(); a < 0.74 || a > 0.76 {
		t.Errorf("expected amplitude about 0.75, got %f", a)
	}

	k.press(' ')
	if e.Running() {
		t.Error("expected space to stop the note")
	}
	if k.statusLine() != "stopped" {
		t.Errorf("unexpected status %q", k.statusLine())
	}

	// 'k' at octave 6 would be C7.
	for range 5 {
		k.press('x')
	}
	k.press('k')
	if e.Running() {
		t.Error("expected an out-of-range key to play nothing")
	}

	if !k.press('q') {
		t.Error("expected q to quit")
	}
}

func TestKeyboardReleaseOnlyStopsCurrentNote(t *testing.T) {
	e, _, _ := newTestEngine(t)
	k := newKeyboard(e, 4, 0)

	k.press('a')
	first := k.generation
	k.press('s')

	k.release(first)
	if !e.Running() {
		t.Fatal("expected a stale release to leave the newer note sounding")
	}
	k.release(k.generation)
	if e.Running() {
		t.Error("expected the release to stop the note")
	}
}

func TestKeyboardHoldStopsNote(t *testing.T) {
	e, _, _ := newTestEngine(t)
	k := newKeyboard(e, 4, 5*time.Millisecond)

	k.press('a')
	deadline := time.Now().Add(time.Second)
	for e.Running() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if e.Running() {
		t.Error("expected the note to stop after the hold time")
	}
}
