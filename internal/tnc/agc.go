package tnc

/*------------------------------------------------------------------
 *
 * Purpose:	Automatic gain control for demodulator envelopes.
 *
 * Description:	Two variants. AGC tracks a single envelope of |x| with
 *		separate attack/release time constants and normalizes by
 *		it. TwoSidedAGC tracks independent upper/lower envelopes from
 *		positive/negative excursions and normalizes the signal
 *		into roughly [-1, 1] around their midpoint.
 *
 *---------------------------------------------------------------*/

import "math"

const agcEnvelopeFloor = 1e-3

// agcCoeff converts a time constant in milliseconds to a per-sample
// exponential smoothing coefficient at the given sample rate.
func agcCoeff(timeMS, sampleRate float64) float64 {
	return 1 - math.Exp(-1000/(timeMS*sampleRate))
}

// AGC is the single-envelope automatic gain control.
type AGC struct {
	attack   float64
	release  float64
	envelope float64
}

// NewAGC builds a single-envelope AGC with the given attack/release
// time constants (ms) at sampleRate.
func NewAGC(attackMS, releaseMS, sampleRate float64) *AGC {
	return &AGC{
		attack:  agcCoeff(attackMS, sampleRate),
		release: agcCoeff(releaseMS, sampleRate),
	}
}

// Process normalizes one sample by the tracked envelope.
func (a *AGC) Process(x float32) float32 {
	mag := math.Abs(float64(x))
	if mag > a.envelope {
		a.envelope += a.attack * (mag - a.envelope)
	} else {
		a.envelope += a.release * (mag - a.envelope)
	}
	if a.envelope < agcEnvelopeFloor {
		a.envelope = agcEnvelopeFloor
	}
	return float32(float64(x) / a.envelope)
}

// TwoSidedAGC tracks independent upper and lower envelopes.
type TwoSidedAGC struct {
	attack      float64
	release     float64
	upper       float64
	lower       float64
}

// NewTwoSidedAGC builds a two-envelope AGC. The lower envelope starts
// at -0.0 (see DESIGN.md for why this is kept despite being inert).
func NewTwoSidedAGC(attackMS, releaseMS, sampleRate float64) *TwoSidedAGC {
	return &TwoSidedAGC{
		attack:  agcCoeff(attackMS, sampleRate),
		release: agcCoeff(releaseMS, sampleRate),
		lower:   math.Copysign(0, -1),
	}
}

// Process normalizes one sample into roughly [-1, 1].
func (a *TwoSidedAGC) Process(x float32) float32 {
	xf := float64(x)
	if xf > 0 {
		if xf > a.upper {
			a.upper += a.attack * (xf - a.upper)
		} else {
			a.upper += a.release * (xf - a.upper)
		}
	} else {
		if xf < a.lower {
			a.lower += a.attack * (xf - a.lower)
		} else {
			a.lower += a.release * (xf - a.lower)
		}
	}
	span := a.upper - a.lower
	if span < agcEnvelopeFloor {
		span = agcEnvelopeFloor
	}
	return float32(2*(xf-a.lower)/span - 1)
}
