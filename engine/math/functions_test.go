package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec3Arithmetic(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, 5, 6)

	assert.Equal(t, NewVec3(5, 7, 9), a.Add(b))
	assert.Equal(t, NewVec3(-3, -3, -3), a.Sub(b))
	assert.Equal(t, NewVec3(2, 4, 6), a.Scale(2))
}

func TestVec3Cross(t *testing.T) {
	x := NewVec3(1, 0, 0)
	y := NewVec3(0, 1, 0)

	assert.Equal(t, NewVec3(0, 0, 1), x.Cross(y))
	assert.Equal(t, NewVec3(0, 0, -1), y.Cross(x))
}

func TestVec3LengthAndNormalized(t *testing.T) {
	v := NewVec3(3, 4, 0)
	assert.InDelta(t, 5.0, v.Length(), 1e-6)

	n := v.Normalized()
	assert.InDelta(t, 1.0, n.Length(), 1e-6)
	assert.InDelta(t, 0.6, n.X, 1e-6)
	assert.InDelta(t, 0.8, n.Y, 1e-6)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 3, Clamp(1, 3, 5))
	assert.Equal(t, 5, Clamp(9, 3, 5))
	assert.Equal(t, 4, Clamp(4, 3, 5))
	assert.Equal(t, uint32(3), Clamp(uint32(0), uint32(3), uint32(512)))
	assert.Equal(t, float32(1.5), Clamp(float32(1.5), float32(0), float32(2)))
}
