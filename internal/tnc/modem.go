package tnc

/*------------------------------------------------------------------
 *
 * Purpose:	Modem facade: ties the RX demodulator bank and the TX
 *		HDLC-framer/FSK-modulator pipeline together, and
 *		self-suppresses a transmitted frame's echo in the RX
 *		dedup cache for the dedup expiration window.
 *
 *---------------------------------------------------------------*/

import "errors"

var errTXBufferTooSmall = errors.New("tnc: tx buffer too small for frame")

// Modem composes one receiver (a Bank) and one transmitter on a
// shared sample rate and tone configuration.
type Modem struct {
	tones     ToneParams
	bank      *Bank
	framer    *HDLCFramer
	modulator *Modulator
	now       func() int64
}

// Config configures a new Modem.
type Config struct {
	SampleRate   float64
	Variants     VariantSet
	TXDelayMS    float64
	TXTailMS     float64
	MinFrameSize int // 0 selects the AX.25 default of 18
	Now          func() int64
}

// NewModem builds a modem from sample_rate, the enabled demodulator
// variants, and TX delay/tail timing, per spec.md §6.
func NewModem(cfg Config) *Modem {
	tones := DefaultBell202(cfg.SampleRate)
	now := cfg.Now
	if now == nil {
		now = func() int64 { return 0 }
	}
	headFlags, tailFlags := FramerTiming(cfg.TXDelayMS, cfg.TXTailMS, tones.BaudRate)
	return &Modem{
		tones:     tones,
		bank:      NewBank(cfg.Variants, tones, cfg.MinFrameSize, now),
		framer:    NewHDLCFramer(headFlags, tailFlags),
		modulator: NewModulator(tones),
		now:       now,
	}
}

// Demodulate feeds samples through the receiver bank and returns at
// most one fresh (non-duplicate) decoded frame.
func (m *Modem) Demodulate(samples []float32) (frame []byte, ok bool) {
	for _, s := range samples {
		if f, got := m.bank.ProcessSample(s); got && !ok {
			frame = f
			ok = true
		}
	}
	return frame, ok
}

// Modulate encodes frameBytes into HDLC-framed, FSK-modulated audio
// samples, and records the frame's CRC in the RX dedup cache so a
// self-heard transmission does not surface again as a received frame.
func (m *Modem) Modulate(frameBytes []byte) ([]float32, error) {
	bits := NewByteBuffer((len(frameBytes)+4)*8*2 + (m.framer.headFlags+m.framer.tailFlags)*8)
	if !m.framer.Frame(frameBytes, bits) {
		return nil, errTXBufferTooSmall
	}

	samples := NewSampleBuffer(bits.Size * (1 + int(m.tones.SampleRate/m.tones.BaudRate)))
	if !m.modulator.ModulateBits(bits.Bytes(), samples) {
		return nil, errTXBufferTooSmall
	}

	crc := CRCCCITT(frameBytes)
	m.bank.dedup.Push(crc, m.now())

	return samples.Samples(), nil
}
