package main

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/QEStudios/tonedriver/output/beepout"
	"github.com/QEStudios/tonedriver/output/headless"
	"github.com/QEStudios/tonedriver/output/otoout"
	"github.com/QEStudios/tonedriver/sn76489"
	"github.com/QEStudios/tonedriver/tone"
)

// player is what the demo commands drive. Both tone.Engine and
// sn76489.Driver provide it.
type player interface {
	tone.Driver
	Amplitude() float64
	Frequency() float64
	Running() bool
	Close() error
}

const chipBackend = "sn76489"

// devices holds the audio backends built into this binary.
var devices = map[string]func() tone.Device{
	"oto":  func() tone.Device { return otoout.New() },
	"beep": func() tone.Device { return beepout.New() },
	"null": func() tone.Device { return headless.New(headless.Realtime()) },
}

func backendNames() []string {
	names := []string{chipBackend}
	for name := range devices {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func openPlayer(opts options, cfg *tone.Config) (player, error) {
	if opts.backend == chipBackend {
		return openChip(opts, cfg)
	}

	newDevice, ok := devices[opts.backend]
	if !ok {
		return nil, fmt.Errorf("unknown backend %q, expected one of %s", opts.backend, strings.Join(backendNames(), ", "))
	}

	e, err := tone.NewEngine(newDevice(), cfg)
	if err != nil && opts.fallbackHeadless {
		logger.Printf("falling back to silent output")
		e, err = tone.NewEngine(headless.New(headless.Realtime()), cfg)
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func openChip(opts options, cfg *tone.Config) (player, error) {
	if opts.chipOut == "" {
		return nil, fmt.Errorf("the %s backend needs --chip-out", chipBackend)
	}
	file, err := os.OpenFile(opts.chipOut, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("cannot open chip output: %w", err)
	}

	d, err := sn76489.NewDriver(file, &sn76489.Options{
		ClockDiv: opts.chipClockDiv,
		Channel:  opts.chipChannel,
		Trace:    opts.chipTrace,
	}, cfg)
	if err != nil {
		file.Close()
		return nil, err
	}

	lo, hi := sn76489.FrequencyRange(d.ClockRate())
	logger.Printf("sn76489 at %.0f Hz plays %.2f to %.2f Hz", d.ClockRate(), lo, hi)
	return d, nil
}
