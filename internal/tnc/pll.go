package tnc

/*------------------------------------------------------------------
 *
 * Purpose:	Bit-clock recovery: a phase-locked loop that samples the
 *		soft-symbol stream at the bit rate and tracks drift by
 *		nudging phase toward the fractional zero-crossing.
 *
 *---------------------------------------------------------------*/

import "math/bits"

const (
	pllInertiaLocked   = 0.75
	pllInertiaSearching = 0.50
	pllLockOnThreshold  = 28
	pllLockOffThreshold = 12
)

// PLL is the bit-clock recovery state machine.
type PLL struct {
	tick     float64
	phase    float64 // in [-1, 1)
	lastSoft float32

	goodHist uint32
	badHist  uint32
	score    uint32
	locked   bool
}

// NewPLL builds a PLL for the given sample rate and bit rate.
func NewPLL(sampleRate, baudRate float64) *PLL {
	return &PLL{tick: 2 * baudRate / sampleRate}
}

// Locked reports whether the PLL currently considers itself synced.
func (p *PLL) Locked() bool { return p.locked }

// Phase returns the current phase accumulator value, for tests and
// invariant checks ("-1 <= p < 1").
func (p *PLL) Phase() float64 { return p.phase }

func wrapPhase(p float64) float64 {
	for p >= 1 {
		p -= 2
	}
	for p < -1 {
		p += 2
	}
	return p
}

// BitResult is the outcome of feeding one soft symbol to the PLL.
type BitResult struct {
	HaveBit bool
	Bit     int
}

// Detect advances the PLL by one sample of softBit and reports whether
// this sample landed on a bit-sampling instant.
func (p *PLL) Detect(softBit float32) BitResult {
	prevPhase := p.phase
	p.phase = wrapPhase(p.phase + p.tick)

	var result BitResult
	if prevPhase > 0 && p.phase <= 0 {
		result.HaveBit = true
		if softBit > 0 {
			result.Bit = 1
		}
	}

	// Lock detection: a sign change close to phase 0 counts as good.
	if float64(p.lastSoft)*float64(softBit) < 0 {
		p.goodHist <<= 1
		p.badHist <<= 1
		if p.phase < 0.10 && p.phase > -0.10 {
			p.goodHist |= 1
		} else {
			p.badHist |= 1
		}
		p.score <<= 1
		goodBits := bits.OnesCount32(p.goodHist)
		badBits := bits.OnesCount32(p.badHist)
		if goodBits-badBits >= 2 {
			p.score |= 1
		}

		s := bits.OnesCount32(p.score)
		if !p.locked && s >= pllLockOnThreshold {
			p.locked = true
		} else if p.locked && s <= pllLockOffThreshold {
			p.locked = false
		}
	}

	if float64(p.lastSoft)*float64(softBit) < 0 {
		denom := float64(softBit) - float64(p.lastSoft)
		if denom > 1e-6 || denom < -1e-6 {
			fraction := -float64(p.lastSoft) / denom
			target := p.tick * fraction

			inertia := pllInertiaSearching
			if p.locked {
				inertia = pllInertiaLocked
			}
			p.phase = wrapPhase(inertia*p.phase + (1-inertia)*target)
		}
	}

	p.lastSoft = softBit
	return result
}
