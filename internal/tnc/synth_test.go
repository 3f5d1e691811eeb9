package tnc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSynth_ProducesBoundedSineWave(t *testing.T) {
	s := NewSynth(8000)
	for i := 0; i < 1000; i++ {
		v := s.Next(1200)
		assert.LessOrEqual(t, math.Abs(float64(v)), 1.0001)
	}
}

func TestSynth_PhaseWraps(t *testing.T) {
	s := NewSynth(100)
	for i := 0; i < 1000; i++ {
		s.Next(10)
		assert.GreaterOrEqual(t, s.Phase(), 0.0)
		assert.Less(t, s.Phase(), 2*math.Pi)
	}
}
