package engine

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gophysics/traveltime/geometry"
	"github.com/gophysics/traveltime/mesh"
	"github.com/gophysics/traveltime/raypath"
	"github.com/gophysics/traveltime/receiver"
	"github.com/gophysics/traveltime/sweep"
)

// Grid2D is the external-interface Grid for the triangular
// mesh / Fast Sweeping path: it owns the mesh, the precomputed reference
// orderings, and the convergence parameters shared by every raytrace call.
type Grid2D struct {
	Mesh   *mesh.Grid2D
	Sorted [][]int
	Params sweep.Params
}

// DefaultParams2D matches Grid2Duifs's usual defaults: a tight convergence
// threshold and a generous iteration cap, with source-radius seeding
// disabled.
var DefaultParams2D = sweep.Params{Epsilon: 1e-9, NIterMax: 500, SourceRadius: 0}

// NewGrid2D constructs the mesh ("new Grid(vertices, cells,
// numWorkers)") with default convergence parameters; callers needing
// custom parameters set g.Params directly.
func NewGrid2D(coords []geometry.Point2, triangles [][3]int, numWorkers int) *Grid2D {
	return &Grid2D{
		Mesh:   mesh.NewGrid2D(coords, triangles, numWorkers),
		Params: DefaultParams2D,
	}
}

// SetSlowness assigns one slowness value per cell.
func (g *Grid2D) SetSlowness(per []float64) error {
	return g.Mesh.SetSlowness(per)
}

// SetSlownessScalar broadcasts a single slowness value to every cell.
func (g *Grid2D) SetSlownessScalar(s float64) {
	g.Mesh.SetSlownessScalar(s)
}

// InitOrdering precomputes the Fast Sweeping reference-point orderings
// ("initOrdering(refPts, order)"), reused by every subsequent
// Raytrace call on this Grid.
func (g *Grid2D) InitOrdering(refPts []geometry.Point2, metric sweep.Metric) {
	g.Sorted = sweep.InitOrdering(g.Mesh, refPts, metric)
}

// CheckPts validates that every point lies inside the mesh or coincides
// with a vertex.
func (g *Grid2D) CheckPts(pts []geometry.Point2) error {
	return g.Mesh.CheckPts(pts)
}

// NumWorkers returns the number of independent worker slots configured
// for this grid.
func (g *Grid2D) NumWorkers() int {
	return g.Mesh.NumWorkers()
}

func (g *Grid2D) orderingFor(tx []geometry.Point2) [][]int {
	if len(g.Sorted) > 0 {
		return g.Sorted
	}
	// No initOrdering call yet: fall back to the sources themselves as
	// reference points, matching Grid2Duifs's behaviour of accepting Tx
	// as a usable default ordering basis when none was precomputed.
	return sweep.InitOrdering(g.Mesh, tx, sweep.MetricL2)
}

// Raytrace runs the single-Rx-batch, times-only overload: a
// full Fast Sweeping raytrace call on worker w followed by receiver
// interpolation at every point in rx. A *sweep.NonConvergence is returned
// alongside valid travel times, informational only: the caller decides
// whether to accept them. Any other error is fatal and aborts before
// returning times.
func (g *Grid2D) Raytrace(tx []geometry.Point2, t0 []float64, rx []geometry.Point2, w int) ([]float64, error) {
	sorted := g.orderingFor(tx)
	_, _, err := sweep.Propagate(g.Mesh, sorted, tx, rx, t0, w, g.Params)

	var nonConv *sweep.NonConvergence
	if err != nil && !errors.As(err, &nonConv) {
		return nil, err
	}

	tt := make([]float64, len(rx))
	for i, r := range rx {
		res, rerr := receiver.Interpolate2D(g.Mesh, r, w)
		if rerr != nil {
			return nil, rerr
		}
		tt[i] = res.TT
	}

	if nonConv != nil {
		fmt.Printf("engine: worker %d did not converge: %v\n", w, nonConv)
		return tt, nonConv
	}
	return tt, nil
}

// RaytraceWithPaths is the single-Rx-batch, times-and-raypaths overload:
// as Raytrace, then a ray back-propagation per receiver. A per-receiver
// *raypath.RayTraceDivergence is logged and recovered: that
// receiver's path becomes the single-point [Rx] and every other receiver
// is unaffected.
func (g *Grid2D) RaytraceWithPaths(tx []geometry.Point2, t0 []float64, rx []geometry.Point2, w int, opt raypath.Options) ([]float64, [][]geometry.Point2, error) {
	tt, err := g.Raytrace(tx, t0, rx, w)
	var nonConv *sweep.NonConvergence
	if err != nil && !errors.As(err, &nonConv) {
		return nil, nil, err
	}

	paths := make([][]geometry.Point2, len(rx))
	for i, r := range rx {
		path, perr := raypath.Trace2D(g.Mesh, r, tx, w, opt)
		if perr != nil {
			fmt.Printf("engine: worker %d receiver %d: %v\n", w, i, perr)
		}
		paths[i] = path
	}
	return tt, paths, err
}

// RaytraceBatch is the multiple-Rx-batch, times-only overload: each
// element of rxBatches is an independent full raytrace call against the
// same Tx/t0, fanned out across up to NumWorkers goroutines using one
// worker id per goroutine (a worker-isolation contract), grounded
// on model_problems/Euler2D/euler.go's sync.WaitGroup + go func(np int)
// dispatch pattern.
func (g *Grid2D) RaytraceBatch(tx []geometry.Point2, t0 []float64, rxBatches [][]geometry.Point2) ([][]float64, []error) {
	n := len(rxBatches)
	tts := make([][]float64, n)
	errs := make([]error, n)
	if n == 0 {
		return tts, errs
	}

	numWorkers := g.NumWorkers()
	if numWorkers > n {
		numWorkers = n
	}
	ranges := partition(n, numWorkers)

	var wg sync.WaitGroup
	for wid := 0; wid < numWorkers; wid++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			lo, hi := ranges[w][0], ranges[w][1]
			for i := lo; i < hi; i++ {
				tts[i], errs[i] = g.Raytrace(tx, t0, rxBatches[i], w)
			}
		}(wid)
	}
	wg.Wait()
	return tts, errs
}

// RaytraceBatchWithPaths is the multiple-Rx-batch, times-and-raypaths
// overload, parallelised the same way as RaytraceBatch.
func (g *Grid2D) RaytraceBatchWithPaths(tx []geometry.Point2, t0 []float64, rxBatches [][]geometry.Point2, opt raypath.Options) ([][]float64, [][][]geometry.Point2, []error) {
	n := len(rxBatches)
	tts := make([][]float64, n)
	paths := make([][][]geometry.Point2, n)
	errs := make([]error, n)
	if n == 0 {
		return tts, paths, errs
	}

	numWorkers := g.NumWorkers()
	if numWorkers > n {
		numWorkers = n
	}
	ranges := partition(n, numWorkers)

	var wg sync.WaitGroup
	for wid := 0; wid < numWorkers; wid++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			lo, hi := ranges[w][0], ranges[w][1]
			for i := lo; i < hi; i++ {
				tts[i], paths[i], errs[i] = g.RaytraceWithPaths(tx, t0, rxBatches[i], w, opt)
			}
		}(wid)
	}
	wg.Wait()
	return tts, paths, errs
}
