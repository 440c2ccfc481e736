// Package sn76489 drives a Texas Instruments SN76489 sound chip by writing its
// register latch bytes to an io.Writer, such as a serial link to the chip's
// data bus or a log file.
package sn76489

import (
	"fmt"
	"strings"
)

const maxSquarePeriod = (1 << 10) - 1
const maxAttenuation = (1 << 4) - 1

// NumChannels counts the three square channels and the noise channel.
const NumChannels = 4

type CommandType int

const (
	SetSquarePeriodCommand CommandType = iota // Set the period of a square channel.
	SetAttenuationCommand                     // Set the attenuation of a channel (including noise).
)

// A batch of register writes sent to the chip in one Write call.
type Frame struct {
	commands []command
}

// An SN76489 command.
type command struct {
	commandType CommandType

	channel     uint8  // The channel to which this command applies (2-bit).
	period      uint16 // For SetSquarePeriod: the 10-bit tone period.
	attenuation uint8  // For SetAttenuation: the 4-bit attenuation.
}

func (c *command) String() string {
	switch c.commandType {
	case SetSquarePeriodCommand:
		return fmt.Sprintf("Set period to %d", c.period)
	case SetAttenuationCommand:
		if c.attenuation == maxAttenuation {
			return "Mute"
		}
		return fmt.Sprintf("Set atten. to %d", c.attenuation)
	default:
		return ""
	}
}

// toBytes returns the latch bytes for the command, as laid out in the SN76489
// application manual.
func (c *command) toBytes() []byte {
	switch c.commandType {
	case SetSquarePeriodCommand:
		// Period commands are 2 bytes long: a latch byte and a data byte.
		output := []byte{0, 0}

		output[0] = 0b10000000                     // MSB=1
		output[0] |= (c.channel & 0b00000011) << 5 // Next 2 bits are the channel.
		output[0] |= byte(c.period & 0b00001111)   // Lowest 4 bits are the 4 LSB of the period.

		output[1] = byte((c.period >> 4) & 0b00111111)

		return output

	case SetAttenuationCommand:
		output := []byte{0}

		output[0] = 0b10010000                     // MSB=1, type bit set.
		output[0] |= (c.channel & 0b00000011) << 5 // Next 2 bits are the channel.
		output[0] |= c.attenuation & 0b00001111

		return output

	default:
		panic(fmt.Sprintf("unhandled command type %d", c.commandType))
	}
}

// commandAlreadyExists returns whether a command setting a specific value already exists.
func (f *Frame) commandAlreadyExists(commandType CommandType, channel uint8) bool {
	for _, cmd := range f.commands {
		if cmd.commandType == commandType && cmd.channel == channel {
			return true
		}
	}
	return false
}

// SetSquarePeriod adds a command to the frame setting the period of a square wave channel.
// Multiple calls setting the period of the same channel in the same frame will return an error.
func (f *Frame) SetSquarePeriod(channel uint8, period uint16) error {
	if channel > 2 {
		return fmt.Errorf("square channel must be 0-2, got %d", channel)
	}
	if period > maxSquarePeriod {
		return fmt.Errorf("square period must be 0-%d, got %d", maxSquarePeriod, period)
	}
	if f.commandAlreadyExists(SetSquarePeriodCommand, channel) {
		return fmt.Errorf("square period already set for channel %d in this frame", channel)
	}

	f.commands = append(f.commands, command{
		commandType: SetSquarePeriodCommand,
		channel:     channel,
		period:      period,
	})
	return nil
}

// SetAttenuation adds a command to the frame setting the attenuation of a channel (including noise).
// Attenuation is the inverse of volume: 0xf is silent and 0x0 is full volume.
func (f *Frame) SetAttenuation(channel uint8, attenuation uint8) error {
	if channel >= NumChannels {
		return fmt.Errorf("channel must be 0-%d, got %d", NumChannels-1, channel)
	}
	if attenuation > maxAttenuation {
		return fmt.Errorf("attenuation must be 0-%d, got %d", maxAttenuation, attenuation)
	}
	if f.commandAlreadyExists(SetAttenuationCommand, channel) {
		return fmt.Errorf("attenuation already set for channel %d in this frame", channel)
	}

	f.commands = append(f.commands, command{
		commandType: SetAttenuationCommand,
		channel:     channel,
		attenuation: attenuation,
	})
	return nil
}

// Bytes returns the frame's commands encoded back to back.
func (f *Frame) Bytes() []byte {
	var out []byte
	for _, cmd := range f.commands {
		out = append(out, cmd.toBytes()...)
	}
	return out
}

// Len returns the number of commands in the frame.
func (f *Frame) Len() int {
	return len(f.commands)
}

var channelNames = [NumChannels]string{"Square 1", "Square 2", "Square 3", "Noise"}

// String formats the frame as a table with one column per channel.
func (f *Frame) String() string {
	cols := make([][]command, NumChannels)
	for _, c := range f.commands {
		cols[c.channel] = append(cols[c.channel], c)
	}

	maxRows := 0
	widths := make([]int, NumChannels)
	for i, col := range cols {
		maxRows = max(maxRows, len(col))
		widths[i] = len(channelNames[i])
		for _, cmd := range col {
			widths[i] = max(widths[i], len(cmd.String()))
		}
		widths[i] = max(widths[i], 16)
	}

	padRight := func(s string, w int) string {
		if len(s) >= w {
			return s
		}
		return s + strings.Repeat(" ", w-len(s))
	}
	separator := func(b *strings.Builder) {
		for i := range NumChannels {
			b.WriteString("+")
			b.WriteString(strings.Repeat("-", widths[i]+2)) // +2 for the space padding either side
		}
		b.WriteString("+\n")
	}
	row := func(b *strings.Builder, cell func(channel int) string) {
		for channel := range NumChannels {
			b.WriteString("| ")
			b.WriteString(padRight(cell(channel), widths[channel]))
			b.WriteString(" ")
		}
		b.WriteString("|\n")
	}

	var b strings.Builder
	separator(&b)
	row(&b, func(channel int) string { return channelNames[channel] })
	separator(&b)
	for r := range maxRows {
		row(&b, func(channel int) string {
			if r < len(cols[channel]) {
				return cols[channel][r].String()
			}
			return ""
		})
	}
	separator(&b)
	return b.String()
}
