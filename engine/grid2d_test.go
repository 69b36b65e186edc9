package engine

import (
	"math"
	"sync"
	"testing"

	"github.com/gophysics/traveltime/geometry"
	"github.com/gophysics/traveltime/mesh"
	"github.com/gophysics/traveltime/raypath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitSquare2D(numWorkers int) *Grid2D {
	coords := []geometry.Point2{
		geometry.NewPoint2(0, 0),
		geometry.NewPoint2(1, 0),
		geometry.NewPoint2(1, 1),
		geometry.NewPoint2(0, 1),
	}
	tris := [][3]int{{0, 1, 2}, {0, 2, 3}}
	g := NewGrid2D(coords, tris, numWorkers)
	g.SetSlownessScalar(1.0)
	return g
}

func TestGrid2DRaytraceTimesOnly(t *testing.T) {
	g := unitSquare2D(1)
	tx := []geometry.Point2{geometry.NewPoint2(0, 0)}
	t0 := []float64{0.0}
	rx := []geometry.Point2{geometry.NewPoint2(1, 1), geometry.NewPoint2(1, 0)}

	tt, err := g.Raytrace(tx, t0, rx, 0)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt2, tt[0], 1e-6)
	assert.InDelta(t, 1.0, tt[1], 1e-6)
}

func TestGrid2DRaytraceWithPaths(t *testing.T) {
	g := unitSquare2D(1)
	tx := []geometry.Point2{geometry.NewPoint2(0, 0)}
	t0 := []float64{0.0}
	rx := []geometry.Point2{geometry.NewPoint2(1, 1)}

	tt, paths, err := g.RaytraceWithPaths(tx, t0, rx, 0, raypath.Options{Tol: 1e-6, MaxSteps: 50})
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt2, tt[0], 1e-6)
	require.Len(t, paths, 1)
	assert.True(t, paths[0][len(paths[0])-1].Equal(tx[0], 1e-6))
}

func TestGrid2DRaytraceRejectsPointOutsideMesh(t *testing.T) {
	g := unitSquare2D(1)
	tx := []geometry.Point2{geometry.NewPoint2(0, 0)}
	t0 := []float64{0.0}
	rx := []geometry.Point2{geometry.NewPoint2(5, 5)}

	_, err := g.Raytrace(tx, t0, rx, 0)
	require.Error(t, err)
	var poe *mesh.PointOutsideMesh
	assert.ErrorAs(t, err, &poe)
}

func TestGrid2DRaytraceBatchDistributesAcrossWorkers(t *testing.T) {
	g := unitSquare2D(2)
	tx := []geometry.Point2{geometry.NewPoint2(0, 0)}
	t0 := []float64{0.0}
	rxBatches := [][]geometry.Point2{
		{geometry.NewPoint2(1, 0)},
		{geometry.NewPoint2(0, 1)},
	}

	tts, errs := g.RaytraceBatch(tx, t0, rxBatches)
	for _, err := range errs {
		require.NoError(t, err)
	}
	assert.InDelta(t, 1.0, tts[0][0], 1e-6)
	assert.InDelta(t, 1.0, tts[1][0], 1e-6)
}

// TestGrid2DWorkerIsolation is the S6 testable property: two goroutines
// call Raytrace concurrently with distinct worker ids and different Tx;
// each must match the serial single-worker result for its own Tx.
func TestGrid2DWorkerIsolation(t *testing.T) {
	g := unitSquare2D(2)
	tx0 := []geometry.Point2{geometry.NewPoint2(0, 0)}
	tx1 := []geometry.Point2{geometry.NewPoint2(1, 0)}
	t0 := []float64{0.0}
	rx := []geometry.Point2{geometry.NewPoint2(1, 1)}

	var tt0, tt1 []float64
	var err0, err1 error
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		tt0, err0 = g.Raytrace(tx0, t0, rx, 0)
	}()
	go func() {
		defer wg.Done()
		tt1, err1 = g.Raytrace(tx1, t0, rx, 1)
	}()
	wg.Wait()
	require.NoError(t, err0)
	require.NoError(t, err1)

	expect0, err := g.Raytrace(tx0, t0, rx, 0)
	require.NoError(t, err)
	expect1, err := g.Raytrace(tx1, t0, rx, 0)
	require.NoError(t, err)

	assert.InDelta(t, expect0[0], tt0[0], 1e-9)
	assert.InDelta(t, expect1[0], tt1[0], 1e-9)
}
