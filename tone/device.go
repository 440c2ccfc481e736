package tone

// Source is the pull side of the audio boundary, implemented by Synth.
// Both methods are called from the device's real-time callback.
type Source interface {
	Fill(buf []int16)
	Read(p []byte) (int, error)
}

// Device is a mono, signed 16-bit PCM output that pulls samples from a Source.
type Device interface {
	// Open prepares the output at sampleRate. Playback starts paused.
	Open(sampleRate, bufferSamples int, src Source) error
	// Resume starts or continues pulling samples.
	Resume() error
	// Pause stops pulling samples.
	Pause() error
	// Close releases the device. It must be safe to call more than once.
	Close() error
}
