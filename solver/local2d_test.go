package solver

import (
	"math"
	"testing"

	"github.com/gophysics/traveltime/geometry"
	"github.com/gophysics/traveltime/mesh"
	"github.com/stretchr/testify/assert"
)

func buildUnitSquare(numWorkers int) *mesh.Grid2D {
	coords := []geometry.Point2{
		geometry.NewPoint2(0, 0),
		geometry.NewPoint2(1, 0),
		geometry.NewPoint2(1, 1),
		geometry.NewPoint2(0, 1),
	}
	tris := [][3]int{
		{0, 1, 2},
		{0, 2, 3},
	}
	g := mesh.NewGrid2D(coords, tris, numWorkers)
	g.SetSlownessScalar(1.0)
	return g
}

func TestLocalSolve2DStraightLine(t *testing.T) {
	g := buildUnitSquare(1)
	g.Store.SetTT(0, 0, 0.0) // A at origin, t0=0
	g.Store.SetTT(1, 0, 1.0) // B at (1,0), straight-line time 1
	updated := LocalSolve2D(g, 2, 0)
	assert.True(t, updated)
	assert.InDelta(t, math.Sqrt2, g.Store.TT(2, 0), 1e-9)
}

func TestLocalSolve2DDoesNotWorsen(t *testing.T) {
	g := buildUnitSquare(1)
	g.Store.SetTT(0, 0, 0.0)
	g.Store.SetTT(1, 0, 1.0)
	g.Store.SetTT(2, 0, 0.1) // already better than any candidate
	updated := LocalSolve2D(g, 2, 0)
	assert.False(t, updated)
	assert.Equal(t, 0.1, g.Store.TT(2, 0))
}

func TestLocalSolve3DFaceUpdate(t *testing.T) {
	coords := []geometry.Point3{
		geometry.NewPoint3(0, 0, 0),
		geometry.NewPoint3(1, 0, 0),
		geometry.NewPoint3(0, 1, 0),
		geometry.NewPoint3(0, 0, 1),
	}
	tets := [][4]int{{0, 1, 2, 3}}
	g := mesh.NewGrid3D(coords, tets, 1)
	g.SetSlownessScalar(1.0)
	g.Store.SetTT(0, 0, 0.0)
	g.Store.SetTT(1, 0, 1.0)
	g.Store.SetTT(2, 0, 1.0)
	updated := LocalSolve3D(g, 3, 0)
	assert.True(t, updated)
	assert.True(t, g.Store.TT(3, 0) < math.Inf(1))
	assert.True(t, g.Store.TT(3, 0) >= 1.0) // cannot arrive before its neighbours by causality in this configuration
}
