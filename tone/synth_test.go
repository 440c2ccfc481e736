package tone

import (
	"encoding/binary"
	"slices"
	"testing"
)

func TestSynthSilentUntilBegin(t *testing.T) {
	s := NewSynth(DefaultSampleRate, 1)
	buf := []int16{1, 2, 3, 4}
	s.Fill(buf)
	for i, v := range buf {
		if v != 0 {
			t.Errorf("sample %d: expected silence, got %d", i, v)
		}
	}
	if s.Running() {
		t.Error("expected a new synth to be stopped")
	}
	if s.Frequency() != 0 {
		t.Errorf("expected no frequency, got %f", s.Frequency())
	}
}

func TestSynthSquareWaveFlipsEveryHalfPeriod(t *testing.T) {
	s := NewSynth(44100, 1)
	s.Begin(440)

	buf := make([]int16, 4410)
	s.Fill(buf)

	var flips []int
	for i := 1; i < len(buf); i++ {
		if (buf[i] > 0) != (buf[i-1] > 0) {
			flips = append(flips, i)
		}
	}

	// 44100 / 440 / 2 = 50.1 samples per half period.
	if len(flips) < 85 || len(flips) > 90 {
		t.Fatalf("expected about 88 sign changes, got %d", len(flips))
	}
	for i := 1; i < len(flips); i++ {
		if gap := flips[i] - flips[i-1]; gap < 49 || gap > 51 {
			t.Errorf("sign change %d came after %d samples, expected about 50", i, gap)
		}
	}
}

func TestSynthAmplitudeScalesLevel(t *testing.T) {
	tests := []struct {
		amp  float64
		want int16
	}{
		{1, 32767},
		{0.5, 16383},
		{0, 0},
	}

	for _, tt := range tests {
		s := NewSynth(DefaultSampleRate, tt.amp)
		s.Begin(1000)
		buf := make([]int16, 200)
		s.Fill(buf)
		for i, v := range buf {
			if v != tt.want && v != -tt.want {
				t.Errorf("amp %.2f sample %d: expected +/-%d, got %d", tt.amp, i, tt.want, v)
				break
			}
		}
	}
}

func TestSynthClampsAmplitude(t *testing.T) {
	s := NewSynth(DefaultSampleRate, 0.5)
	s.SetAmplitude(1.5)
	if s.Amplitude() != 1 {
		t.Errorf("expected amplitude 1, got %f", s.Amplitude())
	}
	s.SetAmplitude(-0.2)
	if s.Amplitude() != 0 {
		t.Errorf("expected amplitude 0, got %f", s.Amplitude())
	}
}

func TestSynthPhaseContinuousAcrossBuffers(t *testing.T) {
	whole := NewSynth(DefaultSampleRate, 0.7)
	whole.Begin(523.25)
	want := make([]int16, 3000)
	whole.Fill(want)

	chunked := NewSynth(DefaultSampleRate, 0.7)
	chunked.Begin(523.25)
	var got []int16
	for _, n := range []int{7, 100, 1024, 1, 868, 1000} {
		buf := make([]int16, n)
		chunked.Fill(buf)
		got = append(got, buf...)
	}

	if !slices.Equal(got, want) {
		t.Error("a sustained note split across buffers differs from one continuous buffer")
	}
}

func TestSynthNewNoteResetsPhaseAtBufferBoundary(t *testing.T) {
	s := NewSynth(DefaultSampleRate, 1)
	s.Begin(440)
	s.Fill(make([]int16, 37))

	// Same frequency, but a new note: the waveform starts over.
	s.Begin(440)
	got := make([]int16, 200)
	s.Fill(got)

	fresh := NewSynth(DefaultSampleRate, 1)
	fresh.Begin(440)
	want := make([]int16, 200)
	fresh.Fill(want)

	if !slices.Equal(got, want) {
		t.Error("expected the new note to restart at phase zero")
	}
}

func TestSynthFrequencyChangeStartsNewWaveform(t *testing.T) {
	s := NewSynth(DefaultSampleRate, 1)
	s.Begin(440)
	s.Fill(make([]int16, 500))

	s.Begin(880)
	got := make([]int16, 300)
	s.Fill(got)

	fresh := NewSynth(DefaultSampleRate, 1)
	fresh.Begin(880)
	want := make([]int16, 300)
	fresh.Fill(want)

	if !slices.Equal(got, want) {
		t.Error("expected the 880 Hz note to start at phase zero of its own waveform")
	}
	if s.Frequency() != 880 {
		t.Errorf("expected frequency 880, got %f", s.Frequency())
	}
}

func TestSynthHaltKeepsSettings(t *testing.T) {
	s := NewSynth(DefaultSampleRate, 0.4)
	s.Begin(330)
	s.Halt()
	s.Halt()

	if s.Running() {
		t.Error("expected synth to be stopped")
	}
	if s.Frequency() != 330 || s.Amplitude() != 0.4 {
		t.Errorf("expected 330 Hz at 0.4, got %f Hz at %f", s.Frequency(), s.Amplitude())
	}

	buf := make([]int16, 64)
	s.Fill(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("sample %d: expected silence after halt, got %d", i, v)
		}
	}
}

func TestSynthNonPositiveFrequencyIsSilent(t *testing.T) {
	for _, f := range []float64{0, -440} {
		s := NewSynth(DefaultSampleRate, 1)
		s.Begin(f)
		buf := make([]int16, 128)
		s.Fill(buf)
		for i, v := range buf {
			if v != 0 {
				t.Errorf("%f Hz sample %d: expected silence, got %d", f, i, v)
				break
			}
		}
	}
}

func TestSynthReadWritesLittleEndianSamples(t *testing.T) {
	s := NewSynth(DefaultSampleRate, 0.6)
	s.Begin(262)
	p := make([]byte, 2*1500+1) // odd tail byte is left alone
	n, err := s.Read(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 3000 {
		t.Fatalf("expected 3000 bytes, got %d", n)
	}

	twin := NewSynth(DefaultSampleRate, 0.6)
	twin.Begin(262)
	want := make([]int16, 1500)
	twin.Fill(want)

	for i, w := range want {
		if got := int16(binary.LittleEndian.Uint16(p[2*i:])); got != w {
			t.Fatalf("sample %d: expected %d, got %d", i, w, got)
		}
	}
}

func TestSynthFillDoesNotAllocate(t *testing.T) {
	s := NewSynth(DefaultSampleRate, 1)
	s.Begin(440)
	buf := make([]int16, 1024)
	p := make([]byte, 2048)

	if allocs := testing.AllocsPerRun(100, func() { s.Fill(buf) }); allocs != 0 {
		t.Errorf("expected Fill not to allocate, got %.1f allocations", allocs)
	}
	if allocs := testing.AllocsPerRun(100, func() { s.Read(p) }); allocs != 0 {
		t.Errorf("expected Read not to allocate, got %.1f allocations", allocs)
	}
}
