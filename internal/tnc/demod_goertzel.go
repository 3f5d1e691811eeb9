package tnc

/*------------------------------------------------------------------
 *
 * Purpose:	Goertzel-based AFSK demodulator, in optimistic and
 *		pessimistic tunings.
 *
 * Description:	Per sample: shift into the sliding-window ring, run
 *		mark/space Goertzel power estimators, AGC each branch
 *		independently, subtract space from mark, clip and
 *		normalize, then smooth with a post low-pass filter.
 *
 *---------------------------------------------------------------*/

// goertzelTuning holds the per-variant constants from spec.md §4.6.1.
type goertzelTuning struct {
	windowMultiplier float64
	agcAttackMS      float64
	agcReleaseMS     float64
	symbolClip       float64
	postLPFOrder     int
	postLPFCutoffXBd float64
}

var goertzelOptimisticTuning = goertzelTuning{
	windowMultiplier: 1.08,
	agcAttackMS:      0.01,
	agcReleaseMS:     83.45,
	symbolClip:       0.488,
	postLPFOrder:     6,
	postLPFCutoffXBd: 0.854,
}

var goertzelPessimisticTuning = goertzelTuning{
	windowMultiplier: 1.05,
	agcAttackMS:      0.02,
	agcReleaseMS:     27.33,
	symbolClip:       0.894,
	postLPFOrder:     4,
	postLPFCutoffXBd: 1.200,
}

// goertzelDemod implements both the optimistic and pessimistic variants;
// they differ only in the tuning constants passed to newGoertzelDemod.
type goertzelDemod struct {
	history    *RingHistory
	markBin    *Goertzel
	spaceBin   *Goertzel
	markAGC    *AGC
	spaceAGC   *AGC
	symbolClip float64
	postLPF    *Filter
}

func newGoertzelDemod(tones ToneParams, tuning goertzelTuning) *goertzelDemod {
	window := int(tuning.windowMultiplier * tones.SampleRate / tones.BaudRate)
	if window < 1 {
		window = 1
	}
	return &goertzelDemod{
		history:    NewRingHistory(window),
		markBin:    NewGoertzel(window, tones.MarkFreq, tones.SampleRate),
		spaceBin:   NewGoertzel(window, tones.SpaceFreq, tones.SampleRate),
		markAGC:    NewAGC(tuning.agcAttackMS, tuning.agcReleaseMS, tones.SampleRate),
		spaceAGC:   NewAGC(tuning.agcAttackMS, tuning.agcReleaseMS, tones.SampleRate),
		symbolClip: tuning.symbolClip,
		postLPF:    LowPass(tuning.postLPFOrder, tuning.postLPFCutoffXBd*tones.BaudRate, tones.SampleRate),
	}
}

func (d *goertzelDemod) Process(sample float32) float32 {
	oldest := d.history.Shift1(sample)

	markPower := d.markBin.Process(sample, oldest)
	spacePower := d.spaceBin.Process(sample, oldest)

	markPower = d.markAGC.Process(markPower)
	spacePower = d.spaceAGC.Process(spacePower)

	symbol := float64(markPower - spacePower)
	if symbol > d.symbolClip {
		symbol = d.symbolClip
	} else if symbol < -d.symbolClip {
		symbol = -d.symbolClip
	}
	symbol /= d.symbolClip

	return d.postLPF.Process(float32(symbol))
}
