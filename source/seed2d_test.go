package source

import (
	"math"
	"testing"

	"github.com/gophysics/traveltime/geometry"
	"github.com/gophysics/traveltime/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitSquare(numWorkers int) *mesh.Grid2D {
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

func TestSeed2DVertexCoincident(t *testing.T) {
	g := unitSquare(1)
	tx := []geometry.Point2{geometry.NewPoint2(0, 0)}
	t0 := []float64{0.0}

	frozen, err := Seed2D(g, tx, t0, 0, 0, false)
	require.NoError(t, err)
	assert.True(t, frozen[0])
	assert.Equal(t, 0.0, g.Store.TT(0, 0))

	// one-hop neighbours (1, 3) should have been relaxed but not frozen
	assert.InDelta(t, 1.0, g.Store.TT(1, 0), 1e-9)
	assert.InDelta(t, 1.0, g.Store.TT(3, 0), 1e-9)
	assert.False(t, frozen[1])
	assert.False(t, frozen[3])
}

func TestSeed2DFreezeNeighboursForFastMarching(t *testing.T) {
	g := unitSquare(1)
	tx := []geometry.Point2{geometry.NewPoint2(0, 0)}
	t0 := []float64{0.0}

	frozen, err := Seed2D(g, tx, t0, 0, 0, true)
	require.NoError(t, err)
	assert.True(t, frozen[1])
	assert.True(t, frozen[3])
}

func TestSeed2DCellInterior(t *testing.T) {
	g := unitSquare(1)
	tx := []geometry.Point2{geometry.NewPoint2(0.5, 0.25)} // interior to triangle {0,1,2}
	t0 := []float64{2.0}

	frozen, err := Seed2D(g, tx, t0, 0, 0, false)
	require.NoError(t, err)
	for _, v := range []int{0, 1, 2} {
		assert.True(t, frozen[v])
		assert.True(t, g.Store.TT(v, 0) >= t0[0])
	}
}

func TestSeed2DRadiusNoNodesFound(t *testing.T) {
	g := unitSquare(1)
	tx := []geometry.Point2{geometry.NewPoint2(5, 5)} // far outside, radius too small
	t0 := []float64{0.0}

	_, err := Seed2D(g, tx, t0, 0, 1e-6, false)
	assert.ErrorIs(t, err, ErrNoSourceNodes)
}

func TestSeed2DRadiusFindsNodes(t *testing.T) {
	g := unitSquare(1)
	tx := []geometry.Point2{geometry.NewPoint2(0.9, 0.9)} // interior, no vertex/cell hit forced
	t0 := []float64{0.0}

	frozen, err := Seed2D(g, tx, t0, 0, math.Sqrt(0.02)+1e-6, false)
	require.NoError(t, err)
	assert.True(t, frozen[2]) // vertex (1,1) within radius of (0.9,0.9)
}
