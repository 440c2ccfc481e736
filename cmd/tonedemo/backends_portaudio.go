//go:build portaudio

package main

import (
	"github.com/QEStudios/tonedriver/output/paout"
	"github.com/QEStudios/tonedriver/tone"
)

func init() {
	devices["portaudio"] = func() tone.Device { return paout.New() }
}
