package raypath

import (
	"testing"

	"github.com/gophysics/traveltime/geometry"
	"github.com/gophysics/traveltime/mesh"
	"github.com/gophysics/traveltime/sweep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unitSquare mirrors the S1 scenario mesh used throughout the solver and
// sweep suites: uniform slowness, diagonally split unit square.
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

func TestTrace2DStraightLineToSource(t *testing.T) {
	g := unitSquare(1)
	refPts := []geometry.Point2{geometry.NewPoint2(0, 0), geometry.NewPoint2(1, 1)}
	sorted := sweep.InitOrdering(g, refPts, sweep.MetricL2)

	tx := []geometry.Point2{geometry.NewPoint2(0, 0)}
	t0 := []float64{0.0}
	rx := []geometry.Point2{geometry.NewPoint2(1, 1)}

	_, _, err := sweep.Propagate(g, sorted, tx, rx, t0, 0, sweep.Params{Epsilon: 1e-9, NIterMax: 50})
	require.NoError(t, err)

	path, err := Trace2D(g, rx[0], tx, 0, Options{Tol: 1e-6, MaxSteps: 50})
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(path), 2)
	assert.True(t, path[0].Equal(rx[0], 1e-9))
	assert.True(t, path[len(path)-1].Equal(tx[0], 1e-6))
}

func TestTrace2DTerminatesAtSourceInteriorToCell(t *testing.T) {
	g := unitSquare(1)
	// Tx sits at the centroid of triangle {0,1,2}: (0,0),(1,0),(1,1) --
	// interior to the cell, coincident with neither a vertex nor an edge.
	tx := []geometry.Point2{geometry.NewPoint2(2.0/3.0, 1.0/3.0)}
	rx := geometry.NewPoint2(0.5, 0.2) // also interior to the same cell

	path, err := Trace2D(g, rx, tx, 0, Options{Tol: 1e-6, MaxSteps: 50})
	require.NoError(t, err)
	require.Len(t, path, 2)
	assert.True(t, path[0].Equal(rx, 1e-9))
	assert.True(t, path[1].Equal(tx[0], 1e-9))
}

func TestTrace2DHigherOrderVariantReachesSource(t *testing.T) {
	g := unitSquare(1)
	refPts := []geometry.Point2{geometry.NewPoint2(0, 0)}
	sorted := sweep.InitOrdering(g, refPts, sweep.MetricL2)

	tx := []geometry.Point2{geometry.NewPoint2(0, 0)}
	t0 := []float64{0.0}
	rx := []geometry.Point2{geometry.NewPoint2(1, 1)}

	_, _, err := sweep.Propagate(g, sorted, tx, rx, t0, 0, sweep.Params{Epsilon: 1e-9, NIterMax: 50})
	require.NoError(t, err)

	path, err := Trace2D(g, rx[0], tx, 0, Options{HigherOrder: true, Tol: 1e-6, MaxSteps: 50})
	require.NoError(t, err)
	assert.True(t, path[len(path)-1].Equal(tx[0], 1e-6))
}
