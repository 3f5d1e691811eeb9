package tnc

/*------------------------------------------------------------------
 *
 * Purpose:	Sine-wave direct digital synthesizer used by the FSK
 *		modulator (and by calibration tone generation).
 *
 *---------------------------------------------------------------*/

import "math"

// Synth is a phase-accumulating sine oscillator. Phase carries over
// across frequency changes so tone transitions stay phase-continuous.
type Synth struct {
	sampleRate float64
	phase      float64 // radians, [0, 2*pi)
}

// NewSynth builds a synthesizer for the given sample rate.
func NewSynth(sampleRate float64) *Synth {
	return &Synth{sampleRate: sampleRate}
}

// Next advances the oscillator by one sample at freq Hz and returns
// sin(phase), wrapping phase modulo 2*pi.
func (s *Synth) Next(freq float64) float32 {
	v := math.Sin(s.phase)
	s.phase += 2 * math.Pi * freq / s.sampleRate
	if s.phase >= 2*math.Pi {
		s.phase -= 2 * math.Pi
	}
	return float32(v)
}

// Phase returns the current phase in radians, for tests.
func (s *Synth) Phase() float64 { return s.phase }
