//go:build !cgo

package main

import "errors"

func runMIDI(p player, args []string) error {
	return errors.New("MIDI input needs a build with cgo enabled")
}
