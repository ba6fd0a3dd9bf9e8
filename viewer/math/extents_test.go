package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewExtentsEmpty(t *testing.T) {
	e := NewExtentsEmpty()
	assert.True(t, e.IsEmpty())
}

func TestExpandPoint(t *testing.T) {
	e := NewExtentsEmpty()
	e = e.ExpandPoint(Vec3{X: 1, Y: -2, Z: 3})
	e = e.ExpandPoint(Vec3{X: -1, Y: 2, Z: 0})

	assert.False(t, e.IsEmpty())
	assert.Equal(t, Vec3{X: -1, Y: -2, Z: 0}, e.Min)
	assert.Equal(t, Vec3{X: 1, Y: 2, Z: 3}, e.Max)
}

func TestUnion(t *testing.T) {
	a := Extents3D{Min: Vec3{X: -1, Y: -1, Z: -1}, Max: Vec3{X: 1, Y: 1, Z: 1}}
	b := Extents3D{Min: Vec3{X: 0, Y: 0, Z: 0}, Max: Vec3{X: 3, Y: 2, Z: 1}}

	u := a.Union(b)
	assert.Equal(t, Vec3{X: -1, Y: -1, Z: -1}, u.Min)
	assert.Equal(t, Vec3{X: 3, Y: 2, Z: 1}, u.Max)

	// Union with an empty extents is the identity.
	assert.Equal(t, a, a.Union(NewExtentsEmpty()))
	assert.Equal(t, a, NewExtentsEmpty().Union(a))
}

func TestCenterAndDiagonal(t *testing.T) {
	e := Extents3D{Min: Vec3{X: -2, Y: 0, Z: 2}, Max: Vec3{X: 2, Y: 4, Z: 4}}
	assert.Equal(t, Vec3{X: 0, Y: 2, Z: 3}, e.Center())
	assert.InDelta(t, 6.0, float64(e.Diagonal()), 1e-5)
}

func TestTransformedIdentity(t *testing.T) {
	e := Extents3D{Min: Vec3{X: -1, Y: -1, Z: -1}, Max: Vec3{X: 1, Y: 1, Z: 1}}
	assert.Equal(t, e, e.Transformed(NewMat4Identity()))
}

func TestTransformedTranslation(t *testing.T) {
	e := Extents3D{Min: Vec3{X: 0, Y: 0, Z: 0}, Max: Vec3{X: 1, Y: 1, Z: 1}}
	moved := e.Transformed(NewMat4Translation(Vec3{X: 5, Y: 0, Z: 0}))
	assert.InDelta(t, 5.0, float64(moved.Min.X), 1e-5)
	assert.InDelta(t, 6.0, float64(moved.Max.X), 1e-5)
}
