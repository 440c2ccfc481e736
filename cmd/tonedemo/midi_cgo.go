//go:build cgo

package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

func runMIDI(p player, args []string) error {
	fs := newFlagSet("midi")
	port := fs.StringP("port", "p", "", "input port name prefix (default: first port)")
	list := fs.BoolP("list", "l", false, "list input ports and exit")
	if help, err := parseFlags(fs, args); help || err != nil {
		return err
	}

	drv, err := rtmididrv.New()
	if err != nil {
		return fmt.Errorf("cannot open MIDI driver: %w", err)
	}
	defer drv.Close()

	ins, err := drv.Ins()
	if err != nil {
		return fmt.Errorf("cannot list MIDI inputs: %w", err)
	}
	if *list {
		for i, in := range ins {
			fmt.Printf("%d: %s\n", i, in)
		}
		return nil
	}

	in, err := findInput(ins, *port)
	if err != nil {
		return err
	}
	if err := in.Open(); err != nil {
		return fmt.Errorf("opening MIDI input failed: %w", err)
	}
	defer in.Close()

	voice := newMonoVoice(p)
	stop, err := midi.ListenTo(in, func(msg midi.Message, timestampms int32) {
		var channel, key, velocity uint8
		switch {
		case msg.GetNoteStart(&channel, &key, &velocity):
			voice.noteOn(int(key))
		case msg.GetNoteEnd(&channel, &key):
			voice.noteOff(int(key))
		}
	}, midi.HandleError(func(err error) {
		logger.Printf("MIDI error: %v", err)
	}))
	if err != nil {
		return fmt.Errorf("cannot listen to %s: %w", in, err)
	}
	defer stop()

	logger.Printf("Listening to %s, press Ctrl-C to quit", in)
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	<-interrupt
	voice.allOff()
	return nil
}

func findInput(ins []drivers.In, prefix string) (drivers.In, error) {
	for _, in := range ins {
		if prefix == "" || strings.HasPrefix(in.String(), prefix) {
			return in, nil
		}
	}
	if prefix == "" {
		return nil, fmt.Errorf("could not find any MIDI input")
	}
	return nil, fmt.Errorf("could not find a MIDI input starting with %q", prefix)
}
