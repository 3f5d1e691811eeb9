package tnc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPLL_PhaseStaysInRange(t *testing.T) {
	p := NewPLL(8000, 1200)
	for i := 0; i < 10000; i++ {
		sign := float32(1)
		if (i/6)%2 == 0 {
			sign = -1
		}
		p.Detect(sign)
		assert.GreaterOrEqual(t, p.Phase(), -1.0)
		assert.Less(t, p.Phase(), 1.0)
	}
}

func TestPLL_LocksOnRegularTransitions(t *testing.T) {
	p := NewPLL(8000, 1200)
	samplesPerBit := 8000.0 / 1200.0
	for i := 0; i < 20000; i++ {
		phase := float64(i) / samplesPerBit
		sign := float32(1)
		if int(phase)%2 == 0 {
			sign = -1
		}
		p.Detect(sign)
	}
	assert.True(t, p.Locked())
}

// A long run of same-polarity soft bits has no sign changes at all, but
// the PLL still samples once per bit period and must keep shifting its
// lock-detection history during the gap, not just on transitions.
func TestPLL_HistoryAdvancesWithoutSignChanges(t *testing.T) {
	p := NewPLL(8000, 1200)
	samplesPerBit := 8000.0 / 1200.0
	for i := 0; i < 20000; i++ {
		phase := float64(i) / samplesPerBit
		sign := float32(1)
		if int(phase)%2 == 0 {
			sign = -1
		}
		p.Detect(sign)
	}
	require.True(t, p.Locked())

	bitPeriods := 0
	for i := 0; i < int(40*samplesPerBit); i++ {
		r := p.Detect(1)
		if r.HaveBit {
			bitPeriods++
		}
	}

	assert.GreaterOrEqual(t, bitPeriods, 35)
	assert.Equal(t, uint32(0xFFFFFFFF), p.goodHist)
	assert.True(t, p.Locked())
}
