package tnc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRingHistory_ShiftReturnsZeroBeforeWrap(t *testing.T) {
	r := NewRingHistory(3)
	assert.Equal(t, float32(0), r.Shift1(1))
	assert.Equal(t, float32(0), r.Shift1(2))
	assert.Equal(t, float32(0), r.Shift1(3))
}

func TestRingHistory_ShiftReturnsDisplacedValueAfterWrap(t *testing.T) {
	r := NewRingHistory(3)
	r.Shift1(1)
	r.Shift1(2)
	r.Shift1(3)
	assert.Equal(t, float32(1), r.Shift1(4))
	assert.Equal(t, float32(2), r.Shift1(5))
}
