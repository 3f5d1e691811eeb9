package tnc

/*------------------------------------------------------------------
 *
 * Purpose:	FM-discriminator ("quadrature") AFSK demodulator.
 *
 * Description:	Mix the input down with a local oscillator at the
 *		center frequency, low-pass the I/Q arms, take the phase
 *		derivative, and scale it so pure mark/space tones map to
 *		approximately +-1.
 *
 *---------------------------------------------------------------*/

import "math"

const (
	quadIQCutoffMultiplier   = 0.544
	quadPostLPFOrder         = 4
	quadPostLPFCutoffXBaud   = 0.575
)

// QuadratureDemod is the FM-discriminator demodulator variant.
type QuadratureDemod struct {
	sampleRate   float64
	phaseInc     float64 // radians/sample for the local oscillator at center freq
	loPhase      float64
	iLPF, qLPF   *Filter
	postLPF      *Filter
	prevPhase    float64
	scale        float64
}

// NewQuadratureDemod builds the quadrature demodulator for the given
// tone pair.
func NewQuadratureDemod(tones ToneParams) *QuadratureDemod {
	center := (tones.MarkFreq + tones.SpaceFreq) / 2
	deviation := math.Abs(tones.MarkFreq-tones.SpaceFreq) / 2
	iqCutoff := quadIQCutoffMultiplier * math.Abs(tones.MarkFreq-tones.SpaceFreq)

	return &QuadratureDemod{
		sampleRate: tones.SampleRate,
		phaseInc:   2 * math.Pi * center / tones.SampleRate,
		iLPF:       LowPass(2, iqCutoff, tones.SampleRate),
		qLPF:       LowPass(2, iqCutoff, tones.SampleRate),
		postLPF:    LowPass(quadPostLPFOrder, quadPostLPFCutoffXBaud*tones.BaudRate, tones.SampleRate),
		scale:      tones.SampleRate / (2 * math.Pi * deviation),
	}
}

func (d *QuadratureDemod) Process(sample float32) float32 {
	loCos := math.Cos(d.loPhase)
	loSin := math.Sin(d.loPhase)
	d.loPhase += d.phaseInc
	if d.loPhase >= 2*math.Pi {
		d.loPhase -= 2 * math.Pi
	}

	iIn := float64(sample) * loCos
	qIn := float64(sample) * loSin

	i := float64(d.iLPF.Process(float32(iIn)))
	q := float64(d.qLPF.Process(float32(qIn)))

	phase := math.Atan2(q, i)
	delta := phase - d.prevPhase
	d.prevPhase = phase
	// Wrap delta into (-pi, pi].
	for delta > math.Pi {
		delta -= 2 * math.Pi
	}
	for delta <= -math.Pi {
		delta += 2 * math.Pi
	}

	symbol := delta * d.scale
	return d.postLPF.Process(float32(symbol))
}
