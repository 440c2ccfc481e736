package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/pflag"
	"github.com/sqweek/dialog"

	"github.com/QEStudios/tonedriver/tone"
)

var logger *log.Logger

// options are the global flags shared by every command.
type options struct {
	backend          string
	configPath       string
	amplitude        float64
	sampleRate       int
	bufferSamples    int
	chipOut          string
	chipClockDiv     bool
	chipChannel      uint8
	chipTrace        bool
	dump             bool
	showDialog       bool
	fallbackHeadless bool
}

type command struct {
	name  string
	usage string
	run   func(p player, args []string) error
}

var commands = []command{
	{"tone", "play a single frequency", runTone},
	{"notes", "play every note in a range", runNotes},
	{"scales", "play the 12 major scales up and down", runScales},
	{"table", "play notes from the precomputed frequency table", runTable},
	{"sweep", "sweep through a range of frequencies", runSweep},
	{"chord", "play a chord given as note names", runChord},
	{"arpeggio", "play an arpeggio given as note names", runArpeggio},
	{"keyboard", "play notes from the computer keyboard", runKeyboard},
	{"midi", "play notes from a MIDI input", runMIDI},
}

func main() {
	logger = log.New(os.Stdout, "", log.Ldate|log.Ltime)

	var opts options
	addGlobalFlags(pflag.CommandLine, &opts)
	pflag.Usage = usage
	pflag.CommandLine.SetInterspersed(false)
	pflag.Parse()

	args := pflag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}
	cmd, ok := findCommand(args[0])
	if !ok {
		logger.Printf("unknown command %q", args[0])
		usage()
		os.Exit(2)
	}

	cfg, err := loadConfig(opts, pflag.CommandLine.Changed)
	if err != nil {
		logger.Fatalf("config error: %v", err)
	}
	if opts.dump {
		fmt.Print(spew.Sdump(opts, cfg))
	}

	p, err := openPlayer(opts, cfg)
	if err != nil {
		if opts.showDialog {
			showError(err)
		}
		logger.Fatalf("cannot start %s backend: %v", opts.backend, err)
	}

	err = cmd.run(p, args[1:])
	if opts.dump {
		fmt.Print(spew.Sdump(map[string]any{
			"frequency": p.Frequency(),
			"amplitude": p.Amplitude(),
			"running":   p.Running(),
		}))
	}
	if cerr := p.Close(); cerr != nil {
		logger.Printf("close error: %v", cerr)
	}
	if err != nil {
		logger.Fatalf("%s: %v", cmd.name, err)
	}
}

func findCommand(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [flags] <command> [command flags]\n\nCommands:\n", os.Args[0])
	for _, c := range commands {
		fmt.Fprintf(os.Stderr, "  %-10s %s\n", c.name, c.usage)
	}
	fmt.Fprintf(os.Stderr, "\nFlags:\n")
	pflag.PrintDefaults()
}

// addGlobalFlags registers the flags shared by every command.
func addGlobalFlags(fs *pflag.FlagSet, opts *options) {
	fs.StringVarP(&opts.backend, "backend", "b", "oto", "audio backend: "+strings.Join(backendNames(), ", "))
	fs.StringVarP(&opts.configPath, "config", "c", "", "YAML config file")
	fs.Float64VarP(&opts.amplitude, "amplitude", "a", tone.DefaultAmplitude, "output amplitude (0.0-1.0)")
	fs.IntVar(&opts.sampleRate, "sample-rate", tone.DefaultSampleRate, "sample rate in Hz")
	fs.IntVar(&opts.bufferSamples, "buffer", tone.DefaultBufferSamples, "samples per audio buffer")
	fs.StringVar(&opts.chipOut, "chip-out", "", "file or serial device the sn76489 backend writes to")
	fs.BoolVar(&opts.chipClockDiv, "chip-clock-div", false, "the sn76489 runs from a halved clock")
	fs.Uint8Var(&opts.chipChannel, "chip-channel", 0, "sn76489 square channel (0-2)")
	fs.BoolVar(&opts.chipTrace, "chip-trace", false, "log every frame written to the sn76489")
	fs.BoolVar(&opts.dump, "dump", false, "dump the configuration and final driver state")
	fs.BoolVar(&opts.showDialog, "dialog", false, "show a dialog box when the audio device cannot be opened")
	fs.BoolVar(&opts.fallbackHeadless, "fallback-headless", false, "keep running silently when the audio device cannot be opened")
}

// loadConfig reads the config file, if any, then applies the flags on top.
// With a config file, only flags given explicitly override it.
func loadConfig(opts options, changed func(flag string) bool) (*tone.Config, error) {
	cfg := tone.DefaultConfig()
	if opts.configPath != "" {
		file, err := os.Open(opts.configPath)
		if err != nil {
			return nil, fmt.Errorf("cannot open config: %w", err)
		}
		defer file.Close()

		cfg, err = tone.LoadConfig(file)
		if err != nil {
			return nil, err
		}
	}

	fromFlags := opts.configPath == ""
	if fromFlags || changed("amplitude") {
		cfg.Amplitude = opts.amplitude
	}
	if fromFlags || changed("sample-rate") {
		cfg.SampleRate = opts.sampleRate
	}
	if fromFlags || changed("buffer") {
		cfg.BufferSamples = opts.bufferSamples
	}
	if cfg.SampleRate <= 0 || cfg.BufferSamples <= 0 {
		return nil, fmt.Errorf("sample rate and buffer size must be positive")
	}
	cfg.Logger = logger
	return cfg, nil
}

// showError reports a startup failure in a native message box.
func showError(err error) {
	dialog.Message("The audio output could not be started:\n\n%v", err).Title("tonedemo").Error()
}

// errUsage marks a command line the command could not make sense of.
var errUsage = errors.New("invalid arguments")
