package tnc

/*------------------------------------------------------------------
 *
 * Purpose:	Receiver fusion: run every enabled demodulator variant
 *		on the same audio stream, through its own PLL and HDLC
 *		deframer, and surface at most one fresh frame per call,
 *		suppressing duplicates with a shared dedup cache.
 *
 *---------------------------------------------------------------*/

const bankDedupExpirationSeconds = 2

type pipeline struct {
	demod    Demodulator
	pll      *PLL
	deframer *HDLCDeframer
	scratch  *ByteBuffer
}

// Bank runs up to three parallel demodulator pipelines (one per
// Variant) over the same sample stream and fuses their output.
type Bank struct {
	pipelines []pipeline
	dedup     *Dedup
	now       func() int64
}

// NewBank builds a demodulator bank for the enabled variant bit-set.
// now supplies the current time in unix seconds for dedup bookkeeping
// (tests may inject a deterministic clock).
func NewBank(variants VariantSet, tones ToneParams, minFrameSize int, now func() int64) *Bank {
	b := &Bank{
		dedup: NewDedup(bankDedupExpirationSeconds),
		now:   now,
	}
	for v := Variant(0); v < variantCount; v++ {
		if !variants.Has(v) {
			continue
		}
		b.pipelines = append(b.pipelines, pipeline{
			demod:    newVariant(v, tones),
			pll:      NewPLL(tones.SampleRate, tones.BaudRate),
			deframer: NewHDLCDeframer(minFrameSize),
			scratch:  NewByteBuffer(1024),
		})
	}
	return b
}

// ProcessSample feeds one audio sample to every pipeline. If one or
// more pipelines complete a frame on this sample, the first (in
// pipeline/bit-set order) non-duplicate frame is returned; the rest
// still advance their state but their output is discarded.
func (b *Bank) ProcessSample(sample float32) (frame []byte, ok bool) {
	for i := range b.pipelines {
		p := &b.pipelines[i]
		symbol := p.demod.Process(sample)
		bit := p.pll.Detect(symbol)
		if !bit.HaveBit {
			continue
		}
		status, crc := p.deframer.ProcessBit(bit.Bit, p.scratch)
		if status != DeframeOK {
			continue
		}
		if ok {
			continue // a frame already won this call
		}
		if b.dedup.Push(crc, b.now()) {
			continue // duplicate, suppressed
		}
		frame = append([]byte(nil), p.scratch.Bytes()...)
		ok = true
	}
	return frame, ok
}
