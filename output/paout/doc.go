// Package paout plays a tone.Source through PortAudio. It needs cgo and the
// PortAudio library, so the device is only built with the portaudio tag.
package paout
