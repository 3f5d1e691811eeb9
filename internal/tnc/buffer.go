// Package tnc implements the soundcard-driven AX.25 TNC core: demodulation,
// bit-clock recovery, HDLC framing, AX.25 and TNC2 encoding, KISS framing,
// and the FSK modulator. It has no knowledge of sound cards, sockets, or
// command-line arguments -- those are the host's job.
package tnc

/*------------------------------------------------------------------
 *
 * Purpose:	Byte and sample buffers shared by every pipeline stage.
 *
 * Description:	A []byte or []float32 slice already carries a capacity
 *		and a length, so these types exist only to give output
 *		buffers with a caller-owned backing array a place to
 *		record how many bytes/samples were actually produced,
 *		matching the "size <= capacity" invariant the rest of
 *		the pipeline assumes.
 *
 *---------------------------------------------------------------*/

// ByteBuffer is a caller-owned byte slice plus a count of how many of
// its bytes are currently valid. Size never exceeds len(Data).
type ByteBuffer struct {
	Data []byte
	Size int
}

// NewByteBuffer wraps a freshly allocated buffer of the given capacity.
func NewByteBuffer(capacity int) *ByteBuffer {
	return &ByteBuffer{Data: make([]byte, capacity)}
}

// Capacity returns how many bytes the buffer can hold.
func (b *ByteBuffer) Capacity() int { return len(b.Data) }

// Bytes returns the valid prefix of the buffer.
func (b *ByteBuffer) Bytes() []byte { return b.Data[:b.Size] }

// Reset sets the buffer back to empty without releasing storage.
func (b *ByteBuffer) Reset() { b.Size = 0 }

// Append copies p onto the end of the buffer, returning false (and
// leaving the buffer unchanged) if it would not fit.
func (b *ByteBuffer) Append(p ...byte) bool {
	if b.Size+len(p) > len(b.Data) {
		return false
	}
	copy(b.Data[b.Size:], p)
	b.Size += len(p)
	return true
}

// SampleBuffer is the float32 analogue of ByteBuffer, used for audio
// sample runs produced by the modulator.
type SampleBuffer struct {
	Data []float32
	Size int
}

// NewSampleBuffer wraps a freshly allocated buffer of the given capacity.
func NewSampleBuffer(capacity int) *SampleBuffer {
	return &SampleBuffer{Data: make([]float32, capacity)}
}

// Capacity returns how many samples the buffer can hold.
func (s *SampleBuffer) Capacity() int { return len(s.Data) }

// Samples returns the valid prefix of the buffer.
func (s *SampleBuffer) Samples() []float32 { return s.Data[:s.Size] }

// Reset sets the buffer back to empty without releasing storage.
func (s *SampleBuffer) Reset() { s.Size = 0 }

// Append copies p onto the end of the buffer, returning false (and
// leaving the buffer unchanged) if it would not fit.
func (s *SampleBuffer) Append(p ...float32) bool {
	if s.Size+len(p) > len(s.Data) {
		return false
	}
	copy(s.Data[s.Size:], p)
	s.Size += len(p)
	return true
}
