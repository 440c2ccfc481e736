package sn76489

import (
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"sync/atomic"

	"github.com/QEStudios/tonedriver/tone"
)

var ErrOutOfRange = errors.New("frequency out of range")

// Options selects how the chip is wired up.
type Options struct {
	ClockDiv bool  // The chip runs from the halved clock.
	Channel  uint8 // Square channel used for tones, 0-2.
	Trace    bool  // Log every frame written to the chip.
}

// Driver plays tones on one square channel of an SN76489. The other channels
// are muted when the driver is created.
type Driver struct {
	*tone.Player
	chip *chip
}

// NewDriver mutes every channel of the chip behind w and returns a driver
// for it. A nil opts uses channel 0 at the full clock rate.
func NewDriver(w io.Writer, opts *Options, cfg *tone.Config) (*Driver, error) {
	if opts == nil {
		opts = &Options{}
	}
	if opts.Channel > 2 {
		return nil, fmt.Errorf("square channel must be 0-2, got %d", opts.Channel)
	}

	logger := log.Default()
	if cfg != nil && cfg.Logger != nil {
		logger = cfg.Logger
	}

	c := &chip{
		w:         w,
		clockRate: ClockRate,
		channel:   opts.Channel,
		trace:     opts.Trace,
		logger:    logger,
	}
	if opts.ClockDiv {
		c.clockRate = HalfClockRate
	}

	var f Frame
	for ch := range uint8(NumChannels) {
		f.SetAttenuation(ch, maxAttenuation)
	}
	c.mu.Lock()
	err := c.write(&f)
	c.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("cannot reset chip: %w", err)
	}

	return &Driver{
		Player: tone.NewPlayer(c, cfg),
		chip:   c,
	}, nil
}

// ClockRate returns the chip clock the periods are computed from.
func (d *Driver) ClockRate() float64 {
	return d.chip.clockRate
}

// Close mutes the chip and closes the writer if it is an io.Closer.
func (d *Driver) Close() error {
	d.Stop()
	if c, ok := d.chip.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// chip is the tone.Voice for a single square channel.
type chip struct {
	w         io.Writer
	clockRate float64
	channel   uint8
	trace     bool
	logger    *log.Logger

	mu          sync.Mutex // serializes writes and running changes
	attenuation atomic.Uint32
	running     atomic.Bool
}

func (c *chip) Start(freq float64) error {
	lowest, highest := FrequencyRange(c.clockRate)
	if !(freq >= lowest && freq <= highest) {
		return fmt.Errorf("%w: %.2f Hz, the chip plays %.2f to %.2f Hz", ErrOutOfRange, freq, lowest, highest)
	}

	var f Frame
	if err := f.SetSquarePeriod(c.channel, CalculateSquarePeriod(freq, c.clockRate)); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	f.SetAttenuation(c.channel, uint8(c.attenuation.Load()))
	if err := c.write(&f); err != nil {
		return err
	}
	c.running.Store(true)
	return nil
}

func (c *chip) Stop() error {
	var f Frame
	f.SetAttenuation(c.channel, maxAttenuation)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.write(&f); err != nil {
		return err
	}
	c.running.Store(false)
	return nil
}

// SetAmplitude takes effect immediately on a sounding channel.
func (c *chip) SetAmplitude(amp float64) error {
	att := CalculateAttenuation(amp)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.attenuation.Store(uint32(att))
	if !c.running.Load() {
		return nil
	}
	var f Frame
	f.SetAttenuation(c.channel, att)
	return c.write(&f)
}

func (c *chip) Running() bool {
	return c.running.Load()
}

// write must be called with mu held.
func (c *chip) write(f *Frame) error {
	if c.trace {
		c.logger.Printf("chip frame:\n%s", f)
	}
	if _, err := c.w.Write(f.Bytes()); err != nil {
		return fmt.Errorf("cannot write to chip: %w", err)
	}
	return nil
}
