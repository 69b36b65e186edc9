package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoint2Distance(t *testing.T) {
	a := NewPoint2(0, 0)
	b := NewPoint2(3, 4)
	assert.InDelta(t, 5.0, a.Distance(b), 1e-12)
	assert.InDelta(t, 7.0, a.ManhattanDistance(b), 1e-12)
}

func TestPoint2Cross(t *testing.T) {
	a := NewPoint2(1, 0)
	b := NewPoint2(0, 1)
	assert.InDelta(t, 1.0, a.Cross(b), 1e-12)
	assert.InDelta(t, -1.0, b.Cross(a), 1e-12)
}

func TestDet3Volume(t *testing.T) {
	// unit tetrahedron at the origin has volume 1/6, so Det3 == 1
	a := NewPoint3(0, 0, 0)
	b := NewPoint3(1, 0, 0)
	c := NewPoint3(0, 1, 0)
	d := NewPoint3(0, 0, 1)
	assert.InDelta(t, 1.0, Det3(a, b, c, d), 1e-12)
}

func TestNormalizeZeroVector(t *testing.T) {
	z := Point2{}
	assert.Equal(t, z, z.Normalize())
}

func TestPoint3Norm(t *testing.T) {
	p := NewPoint3(1, 2, 2)
	assert.InDelta(t, 3.0, p.Norm(), 1e-12)
	assert.InDelta(t, 1.0, p.Normalize().Norm(), 1e-9)
}

func TestPoint2EqualTolerance(t *testing.T) {
	a := NewPoint2(1, 1)
	b := NewPoint2(1+1e-10, 1)
	assert.True(t, a.Equal(b, Tol))
	c := NewPoint2(1.1, 1)
	assert.False(t, a.Equal(c, Tol))
}

func TestPoint2DotIsSymmetric(t *testing.T) {
	a := NewPoint2(2, 3)
	b := NewPoint2(-1, 4)
	assert.InDelta(t, a.Dot(b), b.Dot(a), 1e-12)
}

func TestManhattanVsEuclidean(t *testing.T) {
	a := NewPoint2(0, 0)
	b := NewPoint2(1, 1)
	assert.True(t, a.ManhattanDistance(b) >= a.Distance(b))
}

func TestPoint3CrossOrthogonal(t *testing.T) {
	x := NewPoint3(1, 0, 0)
	y := NewPoint3(0, 1, 0)
	z := x.Cross(y)
	assert.InDelta(t, 0.0, z.Dot(x), 1e-12)
	assert.InDelta(t, 0.0, z.Dot(y), 1e-12)
	assert.InDelta(t, 1.0, z.Norm(), 1e-12)
}

func TestPoint2NormMatchesMath(t *testing.T) {
	p := NewPoint2(3, 4)
	assert.InDelta(t, math.Hypot(3, 4), p.Norm(), 1e-12)
}
