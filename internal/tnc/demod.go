package tnc

/*------------------------------------------------------------------
 *
 * Purpose:	Common demodulator parameters and the Demodulator
 *		capability every variant implements.
 *
 *---------------------------------------------------------------*/

// ToneParams describes the Bell-202-style FSK tone pair a demodulator
// is tuned to.
type ToneParams struct {
	MarkFreq   float64
	SpaceFreq  float64
	BaudRate   float64
	SampleRate float64
}

// DefaultBell202 returns the 1200/2200 Hz, 1200 baud tone parameters
// this TNC uses by default, at the given sample rate.
func DefaultBell202(sampleRate float64) ToneParams {
	return ToneParams{MarkFreq: 1200, SpaceFreq: 2200, BaudRate: 1200, SampleRate: sampleRate}
}

// Demodulator converts one audio sample into one real-valued soft
// symbol, roughly in [-1, 1], positive meaning mark.
type Demodulator interface {
	Process(sample float32) float32
}

// Variant identifies one of the demodulator implementations that can
// run inside a Bank.
type Variant int

const (
	VariantGoertzelOptimistic Variant = iota
	VariantGoertzelPessimistic
	VariantQuadrature
	variantCount
)

// VariantSet is a bit-set of enabled Variant values.
type VariantSet uint8

// With returns the set with v added.
func (s VariantSet) With(v Variant) VariantSet { return s | (1 << uint(v)) }

// Has reports whether v is enabled.
func (s VariantSet) Has(v Variant) bool { return s&(1<<uint(v)) != 0 }

// AllVariants enables every known demodulator variant.
func AllVariants() VariantSet {
	var s VariantSet
	for v := Variant(0); v < variantCount; v++ {
		s = s.With(v)
	}
	return s
}

// newVariant constructs the demodulator for one enabled bit.
func newVariant(v Variant, tones ToneParams) Demodulator {
	switch v {
	case VariantGoertzelOptimistic:
		return newGoertzelDemod(tones, goertzelOptimisticTuning)
	case VariantGoertzelPessimistic:
		return newGoertzelDemod(tones, goertzelPessimisticTuning)
	case VariantQuadrature:
		return NewQuadratureDemod(tones)
	default:
		panic("tnc: unknown demodulator variant")
	}
}
