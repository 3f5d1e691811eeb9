package tnc

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func aprsLikePacket() *Packet {
	return &Packet{
		Dest:    Address{Callsign: "APN001"},
		Source:  Address{Callsign: "XX0TST", SSID: 7},
		Path:    []Address{{Callsign: "WIDE2", SSID: 2}},
		Control: DefaultControl,
		Proto:   DefaultProtocol,
		Info:    []byte("!5221.20N/02043.85E# TEST"),
	}
}

func newTestModem(sampleRate float64, variants VariantSet) *Modem {
	return NewModem(Config{
		SampleRate: sampleRate,
		Variants:   variants,
		TXDelayMS:  50,
		TXTailMS:   20,
		Now:        func() int64 { return 0 },
	})
}

// TestModem_APRSLikeRoundTrip is end-to-end scenario 1 from spec.md §8:
// pack, modulate, demodulate, unpack, bit-exact equality.
func TestModem_APRSLikeRoundTrip(t *testing.T) {
	const sampleRate = 22050.0
	m := newTestModem(sampleRate, AllVariants())

	p := aprsLikePacket()
	frameBytes, err := Pack(p)
	require.NoError(t, err)

	samples, err := m.Modulate(frameBytes)
	require.NoError(t, err)

	rx := newTestModem(sampleRate, AllVariants())
	got, ok := rx.Demodulate(samples)
	require.True(t, ok, "expected the modulated frame to decode")
	assert.Equal(t, frameBytes, got)

	gotPacket, err := Unpack(got)
	require.NoError(t, err)
	assert.Equal(t, p.Source.Callsign, gotPacket.Source.Callsign)
	assert.Equal(t, p.Info, gotPacket.Info)
}

// TestModem_NoiseAroundPacket is scenario 2: noise padding plus a
// scaled-down packet amplitude should still decode.
func TestModem_NoiseAroundPacket(t *testing.T) {
	const sampleRate = 22050.0
	m := newTestModem(sampleRate, AllVariants())

	p := aprsLikePacket()
	frameBytes, err := Pack(p)
	require.NoError(t, err)

	samples, err := m.Modulate(frameBytes)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(42))
	noise := func(n int) []float32 {
		out := make([]float32, n)
		for i := range out {
			out[i] = float32(rng.NormFloat64() * 0.577)
		}
		return out
	}

	scaled := make([]float32, len(samples))
	for i, s := range samples {
		scaled[i] = s * 0.333
	}

	padLen := int(0.1 * sampleRate)
	stream := append(noise(padLen), scaled...)
	stream = append(stream, noise(padLen)...)

	rx := newTestModem(sampleRate, AllVariants())
	_, ok := rx.Demodulate(stream)
	assert.True(t, ok, "expected the packet to decode despite surrounding noise")
}

// TestModem_TwoPacketsInOrder is scenario 3: two distinct packets,
// streamed in small chunks, both decode in order.
func TestModem_TwoPacketsInOrder(t *testing.T) {
	const sampleRate = 22050.0
	tx := newTestModem(sampleRate, AllVariants())

	p1 := aprsLikePacket()
	p1.Info = []byte("first")
	p2 := aprsLikePacket()
	p2.Info = []byte("second")

	f1, _ := Pack(p1)
	f2, _ := Pack(p2)
	s1, err := tx.Modulate(f1)
	require.NoError(t, err)
	s2, err := tx.Modulate(f2)
	require.NoError(t, err)

	silence := make([]float32, int(0.1*sampleRate))
	stream := append(append(append([]float32{}, s1...), silence...), s2...)

	rx := newTestModem(sampleRate, AllVariants())
	var decoded [][]byte
	chunk := 128
	for i := 0; i < len(stream); i += chunk {
		end := i + chunk
		if end > len(stream) {
			end = len(stream)
		}
		if frame, ok := rx.Demodulate(stream[i:end]); ok {
			decoded = append(decoded, frame)
		}
	}

	require.GreaterOrEqual(t, len(decoded), 2)
	got1, _ := Unpack(decoded[0])
	got2, _ := Unpack(decoded[1])
	assert.Equal(t, p1.Info, got1.Info)
	assert.Equal(t, p2.Info, got2.Info)
}

// TestModem_DedupSuppressionAcrossVariants is scenario 4: a bank of
// two variants decoding the same clean packet must surface exactly
// one frame.
func TestModem_DedupSuppressionAcrossVariants(t *testing.T) {
	const sampleRate = 22050.0
	variants := VariantSet(0).With(VariantGoertzelOptimistic).With(VariantQuadrature)

	tx := newTestModem(sampleRate, AllVariants())
	p := aprsLikePacket()
	frameBytes, _ := Pack(p)
	samples, err := tx.Modulate(frameBytes)
	require.NoError(t, err)

	rx := newTestModem(sampleRate, variants)
	count := 0
	chunk := 128
	for i := 0; i < len(samples); i += chunk {
		end := i + chunk
		if end > len(samples) {
			end = len(samples)
		}
		if _, ok := rx.Demodulate(samples[i:end]); ok {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestModem_SelfLoopSuppressed(t *testing.T) {
	const sampleRate = 22050.0
	m := newTestModem(sampleRate, AllVariants())

	p := aprsLikePacket()
	frameBytes, _ := Pack(p)
	samples, err := m.Modulate(frameBytes)
	require.NoError(t, err)

	_, ok := m.Demodulate(samples)
	assert.False(t, ok, "the modem's own transmission should be suppressed by the self-loop dedup entry")
}

func TestModulator_BoundedOutput(t *testing.T) {
	mod := NewModulator(DefaultBell202(8000))
	out := NewSampleBuffer(10000)
	require.True(t, mod.ModulateBits([]byte{1, 0, 1, 1, 0}, out))
	for _, s := range out.Samples() {
		assert.LessOrEqual(t, math.Abs(float64(s)), 1.0001)
	}
}
