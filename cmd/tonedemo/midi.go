package main

import (
	"slices"
	"sync"

	"github.com/QEStudios/tonedriver/pitch"
)

// monoVoice plays MIDI keys on a single-voice player with last-note
// priority: releasing the newest key returns to the one held before it.
type monoVoice struct {
	p player

	mu   sync.Mutex
	held []int
}

func newMonoVoice(p player) *monoVoice {
	return &monoVoice{p: p}
}

func (m *monoVoice) noteOn(key int) {
	n, err := pitch.FromMIDI(key)
	if err != nil {
		logger.Printf("ignoring key: %v", err)
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.held = slices.DeleteFunc(m.held, func(k int) bool { return k == key })
	m.held = append(m.held, key)
	m.p.PlayNote(n.Class, n.Octave)
}

func (m *monoVoice) noteOff(key int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := slices.Index(m.held, key)
	if i < 0 {
		return
	}
	wasTop := i == len(m.held)-1
	m.held = slices.Delete(m.held, i, i+1)
	if !wasTop {
		return
	}

	if len(m.held) == 0 {
		m.p.Stop()
		return
	}
	n, _ := pitch.FromMIDI(m.held[len(m.held)-1])
	m.p.PlayNote(n.Class, n.Octave)
}

// allOff silences the voice and forgets every held key.
func (m *monoVoice) allOff() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.held = m.held[:0]
	m.p.Stop()
}
