package main

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/QEStudios/tonedriver/pitch"
)

// Home row keys play white notes, the row above plays the black ones.
const keyboardKeys = "awsedftgyhujk"

func keyboardNote(r rune, octave int) (pitch.Note, bool) {
	i := strings.IndexRune(keyboardKeys, r)
	if i < 0 {
		return pitch.Note{}, false
	}
	return pitch.Note{
		Class:  pitch.Class(i % pitch.NotesPerOctave),
		Octave: octave + i/pitch.NotesPerOctave,
	}, true
}

// keyboard turns key presses into notes. Terminals report no key releases,
// so each note stops by itself after hold unless another key came first.
type keyboard struct {
	p    player
	hold time.Duration

	mu         sync.Mutex
	octave     int
	generation int
	status     string
}

func newKeyboard(p player, octave int, hold time.Duration) *keyboard {
	return &keyboard{p: p, octave: octave, hold: hold, status: "ready"}
}

// press handles one key and reports whether the user asked to quit.
func (k *keyboard) press(r rune) bool {
	k.mu.Lock()
	defer k.mu.Unlock()

	switch r {
	case 'q':
		return true
	case 'z':
		k.octave = max(k.octave-1, 0)
		k.status = fmt.Sprintf("octave %d", k.octave)
	case 'x':
		k.octave = min(k.octave+1, pitch.MaxOctave)
		k.status = fmt.Sprintf("octave %d", k.octave)
	case '-':
		k.p.SetAmplitude(k.p.Amplitude() - 0.1)
		k.status = fmt.Sprintf("amplitude %.1f", k.p.Amplitude())
	case '=', '+':
		k.p.SetAmplitude(k.p.Amplitude() + 0.1)
		k.status = fmt.Sprintf("amplitude %.1f", k.p.Amplitude())
	case ' ':
		k.generation++
		k.p.Stop()
		k.status = "stopped"
	default:
		n, ok := keyboardNote(r, k.octave)
		if !ok {
			return false
		}
		if err := k.p.PlayNote(n.Class, n.Octave); err != nil {
			k.status = err.Error()
			return false
		}
		k.generation++
		k.status = fmt.Sprintf("%s (%.2f Hz)", n, n.Frequency())
		if k.hold > 0 {
			gen := k.generation
			time.AfterFunc(k.hold, func() { k.release(gen) })
		}
	}
	return false
}

// release stops the note started as generation gen if it is still sounding.
func (k *keyboard) release(gen int) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.generation == gen {
		k.p.Stop()
	}
}

func (k *keyboard) statusLine() string {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.status
}

func runKeyboard(p player, args []string) error {
	fs := newFlagSet("keyboard")
	octave := fs.Int("octave", 4, "starting octave")
	hold := fs.Duration("hold", 300*time.Millisecond, "how long a key press sounds (0 holds until the next key)")
	if help, err := parseFlags(fs, args); help || err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	k := newKeyboard(p, *octave, *hold)
	for {
		drawKeyboard(screen, k.statusLine())

		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
				p.Stop()
				return nil
			}
			if ev.Key() == tcell.KeyRune && k.press(ev.Rune()) {
				p.Stop()
				return nil
			}
		}
	}
}

var keyboardHelp = []string{
	" w e   t y u ",
	"a s d f g h j k",
	"",
	"z/x octave down/up   -/= amplitude",
	"space stop           q or Esc quit",
}

func drawKeyboard(screen tcell.Screen, status string) {
	screen.Clear()
	for y, line := range keyboardHelp {
		drawText(screen, 2, y+1, tcell.StyleDefault, line)
	}
	drawText(screen, 2, len(keyboardHelp)+2, tcell.StyleDefault.Foreground(tcell.ColorGreen), status)
	screen.Show()
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range []rune(text) {
		screen.SetContent(x+i, y, r, nil, style)
	}
}
