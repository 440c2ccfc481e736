package sn76489

import "math"

const (
	// ClockRate is the chip's input clock in Hz.
	ClockRate = 4_000_000
	// HalfClockRate is used when the clock is divided by two, lowering every
	// note by an octave and extending the playable range downwards.
	HalfClockRate = ClockRate / 2

	// AttenuationStep is the attenuation of one register step in decibels.
	AttenuationStep = 2.0
)

// CalculateSquarePeriod computes the (rounded) period of a square channel from a given frequency and clock rate.
func CalculateSquarePeriod(freq float64, clockRate float64) uint16 {
	return uint16(math.RoundToEven(clockRate / (32 * freq)))
}

// PeriodFrequency is the frequency a square channel produces for period.
func PeriodFrequency(period uint16, clockRate float64) float64 {
	if period == 0 {
		return 0
	}
	return clockRate / (32 * float64(period))
}

// FrequencyRange returns the lowest and highest frequencies a square channel
// can produce at clockRate.
func FrequencyRange(clockRate float64) (lowest, highest float64) {
	return PeriodFrequency(maxSquarePeriod, clockRate), PeriodFrequency(1, clockRate)
}

// CalculateAttenuation converts a linear amplitude in [0,1] to the nearest
// attenuation register value. An amplitude of 0 mutes the channel.
func CalculateAttenuation(amp float64) uint8 {
	if amp <= 0 || math.IsNaN(amp) {
		return maxAttenuation
	}
	db := -20 * math.Log10(min(amp, 1))
	steps := math.Round(db / AttenuationStep)
	if steps >= maxAttenuation {
		return maxAttenuation
	}
	return uint8(steps)
}
