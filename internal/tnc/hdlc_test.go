package tnc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nrziDecodeAll decodes an HDLCFramer bit-stream straight back through
// NRZI, without going through the deframer, to inspect raw stuffing.
func nrziDecodeAll(lineBits []byte) []int {
	var dec NRZIDecoder
	out := make([]int, len(lineBits))
	for i, b := range lineBits {
		out[i] = dec.Decode(int(b))
	}
	return out
}

func TestHDLCFramer_EmitsFlagsAndStuffsOnes(t *testing.T) {
	framer := NewHDLCFramer(2, 2)
	out := NewByteBuffer(4096)
	ok := framer.Frame([]byte{0xFF}, out)
	require.True(t, ok)

	decoded := nrziDecodeAll(out.Bytes())

	// After the two head flags (0x7E = 01111110 LSB-first -> 0,1,1,1,1,1,1,0
	// per byte), the payload byte 0xFF (LSB-first: 1,1,1,1,1,1,1,1) must
	// appear with exactly one stuffed 0 inserted after the 5th one.
	payloadStart := 16 // two 8-bit flags
	run := decoded[payloadStart : payloadStart+9]
	assert.Equal(t, []int{1, 1, 1, 1, 1, 0, 1, 1, 1}, run)
}

func TestHDLCDeframer_RoundTripsFrame(t *testing.T) {
	payload := make([]byte, 20)
	for i := range payload {
		payload[i] = byte(i)
	}

	framer := NewHDLCFramer(1, 1)
	lineBits := NewByteBuffer(8192)
	require.True(t, framer.Frame(payload, lineBits))

	deframer := NewHDLCDeframer(18)
	out := NewByteBuffer(512)

	var gotStatus DeframeStatus
	var gotCRC uint16
	for _, b := range lineBits.Bytes() {
		status, crc := deframer.ProcessBit(int(b), out)
		if status != DeframeNone {
			gotStatus = status
			gotCRC = crc
		}
	}

	require.Equal(t, DeframeOK, gotStatus)
	assert.Equal(t, payload, out.Bytes())
	assert.Equal(t, CRCCCITT(payload), gotCRC)
}

func TestHDLCDeframer_TooSmallFrameDropped(t *testing.T) {
	payload := []byte{1, 2, 3}

	framer := NewHDLCFramer(1, 1)
	lineBits := NewByteBuffer(4096)
	require.True(t, framer.Frame(payload, lineBits))

	deframer := NewHDLCDeframer(18)
	out := NewByteBuffer(512)

	sawTooSmall := false
	for _, b := range lineBits.Bytes() {
		status, _ := deframer.ProcessBit(int(b), out)
		if status == DeframeTooSmall {
			sawTooSmall = true
		}
	}
	assert.True(t, sawTooSmall)
}

func TestHDLCDeframer_InvalidFCSDetected(t *testing.T) {
	payload := make([]byte, 20)

	framer := NewHDLCFramer(1, 1)
	lineBits := NewByteBuffer(8192)
	require.True(t, framer.Frame(payload, lineBits))

	// Corrupt one payload bit deep enough in the stream to flip the FCS check.
	lineBits.Data[20] ^= 1

	deframer := NewHDLCDeframer(18)
	out := NewByteBuffer(512)

	sawInvalid := false
	for _, b := range lineBits.Bytes() {
		status, _ := deframer.ProcessBit(int(b), out)
		if status == DeframeInvalidFCS {
			sawInvalid = true
		}
	}
	assert.True(t, sawInvalid)
}

func TestHDLCDeframer_ResetsOnFlag(t *testing.T) {
	d := NewHDLCDeframer(18)
	out := NewByteBuffer(512)

	var enc NRZIEncoder
	for i := 0; i < 5; i++ {
		d.ProcessBit(enc.Encode(1), out)
	}
	require.Greater(t, d.ones, 0)

	for _, bit := range []int{0, 1, 1, 1, 1, 1, 1, 0} { // 0x7E, LSB-first
		d.ProcessBit(enc.Encode(bit), out)
	}
	assert.Equal(t, 0, d.ones)
	assert.Equal(t, 0, len(d.accum))
}
