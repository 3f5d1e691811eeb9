package tnc

/*------------------------------------------------------------------
 *
 * Purpose:	FSK modulator: turns a line-bit stream (as produced by
 *		HDLCFramer) into audio samples at mark or space frequency.
 *
 *---------------------------------------------------------------*/

// Modulator is the Bell-202-style FSK modulator.
type Modulator struct {
	tones           ToneParams
	synth           *Synth
	samplesPerBit   int
}

// NewModulator builds a modulator for the given tone parameters.
func NewModulator(tones ToneParams) *Modulator {
	return &Modulator{
		tones:         tones,
		synth:         NewSynth(tones.SampleRate),
		samplesPerBit: 1 + int(tones.SampleRate/tones.BaudRate),
	}
}

// ModulateBit emits the samples for one line bit (1 = mark, 0 = space)
// into out.
func (m *Modulator) ModulateBit(bit int, out *SampleBuffer) bool {
	freq := m.tones.SpaceFreq
	if bit == 1 {
		freq = m.tones.MarkFreq
	}
	for i := 0; i < m.samplesPerBit; i++ {
		if !out.Append(m.synth.Next(freq)) {
			return false
		}
	}
	return true
}

// ModulateBits emits samples for a whole bit stream (each input byte
// holding a single 0/1 bit value, as HDLCFramer.Frame produces).
func (m *Modulator) ModulateBits(bits []byte, out *SampleBuffer) bool {
	for _, b := range bits {
		if !m.ModulateBit(int(b), out) {
			return false
		}
	}
	return true
}
