package headless

import (
	"errors"
	"testing"
	"time"

	"github.com/QEStudios/tonedriver/pitch"
	"github.com/QEStudios/tonedriver/tone"
)

func TestOpenError(t *testing.T) {
	errNoCard := errors.New("no sound card")
	_, err := tone.NewEngine(New(WithOpenError(errNoCard)), nil)
	if !errors.Is(err, errNoCard) {
		t.Fatalf("expected %v, got %v", errNoCard, err)
	}
}

func TestPullFollowsEngine(t *testing.T) {
	dev := New()
	cfg := tone.DefaultConfig()
	cfg.Clock = tone.NewManualClock(time.Time{})
	e, err := tone.NewEngine(dev, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer e.Close()

	if dev.SampleRate() != tone.DefaultSampleRate {
		t.Errorf("expected %d Hz, got %d", tone.DefaultSampleRate, dev.SampleRate())
	}

	for _, v := range dev.Pull(16) {
		if v != 0 {
			t.Fatal("expected silence before the first note")
		}
	}
	if dev.Pulled() != 0 {
		t.Error("expected a paused device not to consume samples")
	}

	e.PlayNote(pitch.A, 4)
	buf := dev.Pull(200)
	var high int
	for _, v := range buf {
		if v > 0 {
			high++
		}
	}
	if high < 90 || high > 110 {
		t.Errorf("expected about half the samples high, got %d of 200", high)
	}
	if dev.Pulled() != 200 {
		t.Errorf("expected 200 samples pulled, got %d", dev.Pulled())
	}

	e.Stop()
	if dev.Playing() {
		t.Error("expected the device to be paused")
	}
}

func TestRealtimePump(t *testing.T) {
	dev := New(Realtime())
	cfg := tone.DefaultConfig()
	cfg.BufferSamples = 441 // 10ms
	e, err := tone.NewEngine(dev, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	e.PlayFrequencyFor(440, 100*time.Millisecond)
	if err := e.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if dev.Pulled() == 0 {
		t.Error("expected the pump to consume samples while playing")
	}
	if err := dev.Close(); err != nil {
		t.Errorf("expected a second close to succeed, got %v", err)
	}
}

func TestResumeBeforeOpen(t *testing.T) {
	if err := New().Resume(); err == nil {
		t.Error("expected an error")
	}
}

func TestRealtimeCloseWhilePlaying(t *testing.T) {
	for i := range 50 {
		dev := New(Realtime())
		if err := dev.Open(44100, 4, tone.NewSynth(44100, 1)); err != nil {
			t.Fatalf("iteration %d: unexpected error: %v", i, err)
		}
		if err := dev.Resume(); err != nil {
			t.Fatalf("iteration %d: unexpected error: %v", i, err)
		}
		time.Sleep(100 * time.Microsecond)

		closed := make(chan error, 1)
		go func() { closed <- dev.Close() }()
		select {
		case err := <-closed:
			if err != nil {
				t.Fatalf("iteration %d: unexpected error: %v", i, err)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("Close did not return on iteration %d", i)
		}
	}
}

func TestPullAlongsideRealtimePump(t *testing.T) {
	synth := tone.NewSynth(44100, 1)
	synth.Begin(440)
	dev := New(Realtime())
	if err := dev.Open(44100, 8, synth); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer dev.Close()
	if err := dev.Resume(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var pulled int64
	for range 200 {
		dev.Pull(16)
		pulled += 16
	}
	if dev.Pulled() < pulled {
		t.Errorf("expected at least %d samples pulled, got %d", pulled, dev.Pulled())
	}
}
