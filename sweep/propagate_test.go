package sweep

import (
	"math"
	"testing"

	"github.com/gophysics/traveltime/geometry"
	"github.com/gophysics/traveltime/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unitSquare builds the two-triangle mesh used throughout the solver and
// mesh test suites: corners of the unit square, split along the (0,2)
// diagonal, uniform slowness 1.
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

func TestPropagateConvergesOnUnitSquare(t *testing.T) {
	g := unitSquare(1)
	refPts := []geometry.Point2{
		geometry.NewPoint2(0, 0),
		geometry.NewPoint2(1, 1),
	}
	sorted := InitOrdering(g, refPts, MetricL2)

	tx := []geometry.Point2{geometry.NewPoint2(0, 0)}
	t0 := []float64{0.0}
	rx := []geometry.Point2{geometry.NewPoint2(1, 1)}

	iters, finalErr, err := Propagate(g, sorted, tx, rx, t0, 0, Params{Epsilon: 1e-9, NIterMax: 50})
	require.NoError(t, err)
	assert.Greater(t, iters, 0)
	assert.Less(t, finalErr, 1e-9)

	// (0,0) itself is fixed at 0, and the diagonal-adjacent vertices are
	// exactly a Euclidean straight line away under uniform slowness.
	assert.Equal(t, 0.0, g.Store.TT(0, 0))
	assert.InDelta(t, 1.0, g.Store.TT(1, 0), 1e-9)
	assert.InDelta(t, 1.0, g.Store.TT(3, 0), 1e-9)
	assert.InDelta(t, math.Sqrt2, g.Store.TT(2, 0), 1e-9)
}

func TestPropagateOrderingInvariance(t *testing.T) {
	tx := []geometry.Point2{geometry.NewPoint2(0, 0)}
	t0 := []float64{0.0}
	rx := []geometry.Point2{geometry.NewPoint2(1, 1)}

	g1 := unitSquare(1)
	sorted1 := InitOrdering(g1, []geometry.Point2{geometry.NewPoint2(0, 0)}, MetricL2)
	_, _, err := Propagate(g1, sorted1, tx, rx, t0, 0, Params{Epsilon: 1e-9, NIterMax: 50})
	require.NoError(t, err)

	g2 := unitSquare(1)
	sorted2 := InitOrdering(g2, []geometry.Point2{geometry.NewPoint2(1, 1)}, MetricL1)
	_, _, err = Propagate(g2, sorted2, tx, rx, t0, 0, Params{Epsilon: 1e-9, NIterMax: 50})
	require.NoError(t, err)

	for v := 0; v < len(g1.Vertices); v++ {
		assert.InDelta(t, g1.Store.TT(v, 0), g2.Store.TT(v, 0), 1e-6)
	}
}

func TestPropagateNonConvergence(t *testing.T) {
	// A 3x1 strip of unit squares with the source at (0,0) and the only
	// reference point at the far corner (3,1). Vertex 7 at (3,1) comes
	// first in the ascending sweep while its neighbours 2, 3 and 6 are
	// still +Inf, so it only gets a time in the descending sweep: the
	// field is still changing at the end of the first sweep set.
	coords := []geometry.Point2{
		geometry.NewPoint2(0, 0), geometry.NewPoint2(1, 0), geometry.NewPoint2(2, 0), geometry.NewPoint2(3, 0),
		geometry.NewPoint2(0, 1), geometry.NewPoint2(1, 1), geometry.NewPoint2(2, 1), geometry.NewPoint2(3, 1),
	}
	tris := [][3]int{
		{0, 1, 5}, {0, 5, 4},
		{1, 2, 6}, {1, 6, 5},
		{2, 3, 7}, {2, 7, 6},
	}
	g := mesh.NewGrid2D(coords, tris, 1)
	g.SetSlownessScalar(1.0)
	sorted := InitOrdering(g, []geometry.Point2{geometry.NewPoint2(3, 1)}, MetricL2)
	tx := []geometry.Point2{geometry.NewPoint2(0, 0)}
	t0 := []float64{0.0}
	rx := []geometry.Point2{geometry.NewPoint2(3, 1)}

	_, _, err := Propagate(g, sorted, tx, rx, t0, 0, Params{Epsilon: 1e-15, NIterMax: 1})
	require.Error(t, err)
	var nc *NonConvergence
	assert.ErrorAs(t, err, &nc)
}

func TestPropagateRejectsPointOutsideMesh(t *testing.T) {
	g := unitSquare(1)
	sorted := InitOrdering(g, []geometry.Point2{geometry.NewPoint2(0, 0)}, MetricL2)
	tx := []geometry.Point2{geometry.NewPoint2(0, 0)}
	t0 := []float64{0.0}
	rx := []geometry.Point2{geometry.NewPoint2(5, 5)}

	_, _, err := Propagate(g, sorted, tx, rx, t0, 0, Params{Epsilon: 1e-9, NIterMax: 50})
	require.Error(t, err)
	var poe *mesh.PointOutsideMesh
	assert.ErrorAs(t, err, &poe)
}
