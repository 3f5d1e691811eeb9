package tnc

/*------------------------------------------------------------------
 *
 * Purpose:	Single-bin Goertzel power estimator, the DSP workhorse
 *		behind the Goertzel-optimistic and Goertzel-pessimistic
 *		demodulators.
 *
 *---------------------------------------------------------------*/

import "math"

// Goertzel is a one-bin sliding-window power estimator.
type Goertzel struct {
	window int
	coeff  float64
	q1, q2 float64
}

// NewGoertzel builds a Goertzel estimator for targetFreq, quantized to
// the nearest integer bin of a window-sample, sampleRate-Hz window.
func NewGoertzel(window int, targetFreq, sampleRate float64) *Goertzel {
	bin := math.Round(float64(window) * targetFreq / sampleRate)
	coeff := 2 * math.Cos(2*math.Pi*bin/float64(window))
	return &Goertzel{window: window, coeff: coeff}
}

// Process feeds the newest sample and the sample leaving the sliding
// window, returning the updated power magnitude.
func (g *Goertzel) Process(newest, oldest float32) float32 {
	// Sliding DFT update: remove the contribution of the outgoing
	// sample before running the recurrence forward with the new one.
	q0 := g.coeff*g.q1 - g.q2 + float64(newest) - float64(oldest)
	g.q2 = g.q1
	g.q1 = q0

	power := (g.q1*g.q1 + g.q2*g.q2 - g.q1*g.q2*g.coeff) / (float64(g.window) / 2)
	return float32(power)
}
