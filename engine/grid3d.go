package engine

import (
	"fmt"
	"sync"

	"github.com/gophysics/traveltime/geometry"
	"github.com/gophysics/traveltime/march"
	"github.com/gophysics/traveltime/mesh"
	"github.com/gophysics/traveltime/raypath"
	"github.com/gophysics/traveltime/receiver"
)

// Grid3D is the external-interface Grid for the tetrahedral
// mesh / Fast Marching path. Fast Marching has no reference-point
// ordering to precompute, so it carries no InitOrdering counterpart.
type Grid3D struct {
	Mesh         *mesh.Grid3D
	SourceRadius float64
}

// NewGrid3D constructs the mesh with source-radius seeding disabled by
// default; callers needing radius seeding set g.SourceRadius directly.
func NewGrid3D(coords []geometry.Point3, tets [][4]int, numWorkers int) *Grid3D {
	return &Grid3D{Mesh: mesh.NewGrid3D(coords, tets, numWorkers)}
}

// SetSlowness assigns one slowness value per cell.
func (g *Grid3D) SetSlowness(per []float64) error {
	return g.Mesh.SetSlowness(per)
}

// SetSlownessScalar broadcasts a single slowness value to every cell.
func (g *Grid3D) SetSlownessScalar(s float64) {
	g.Mesh.SetSlownessScalar(s)
}

// CheckPts validates that every point lies inside the mesh or coincides
// with a vertex.
func (g *Grid3D) CheckPts(pts []geometry.Point3) error {
	return g.Mesh.CheckPts(pts)
}

// NumWorkers returns the number of independent worker slots configured
// for this grid.
func (g *Grid3D) NumWorkers() int {
	return g.Mesh.NumWorkers()
}

// Raytrace runs the single-Rx-batch, times-only overload: a full Fast
// Marching raytrace call on worker w followed by receiver interpolation
// at every point in rx. Fast Marching is a single-pass solver, so unlike
// Grid2D.Raytrace there is no NonConvergence case to surface.
func (g *Grid3D) Raytrace(tx []geometry.Point3, t0 []float64, rx []geometry.Point3, w int) ([]float64, error) {
	if err := march.Propagate(g.Mesh, tx, rx, t0, w, g.SourceRadius); err != nil {
		return nil, err
	}

	tt := make([]float64, len(rx))
	for i, r := range rx {
		res, err := receiver.Interpolate3D(g.Mesh, r, w)
		if err != nil {
			return nil, err
		}
		tt[i] = res.TT
	}
	return tt, nil
}

// RaytraceWithPaths is the single-Rx-batch, times-and-raypaths overload.
// A per-receiver *raypath.RayTraceDivergence is logged and recovered:
// that receiver's path becomes the single-point [Rx].
func (g *Grid3D) RaytraceWithPaths(tx []geometry.Point3, t0 []float64, rx []geometry.Point3, w int, opt raypath.Options) ([]float64, [][]geometry.Point3, error) {
	tt, err := g.Raytrace(tx, t0, rx, w)
	if err != nil {
		return nil, nil, err
	}

	paths := make([][]geometry.Point3, len(rx))
	for i, r := range rx {
		path, perr := raypath.Trace3D(g.Mesh, r, tx, w, opt)
		if perr != nil {
			fmt.Printf("engine: worker %d receiver %d: %v\n", w, i, perr)
		}
		paths[i] = path
	}
	return tt, paths, nil
}

// RaytraceBatch is the multiple-Rx-batch, times-only overload, fanned out
// across up to NumWorkers goroutines exactly as Grid2D.RaytraceBatch.
func (g *Grid3D) RaytraceBatch(tx []geometry.Point3, t0 []float64, rxBatches [][]geometry.Point3) ([][]float64, []error) {
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
// overload.
func (g *Grid3D) RaytraceBatchWithPaths(tx []geometry.Point3, t0 []float64, rxBatches [][]geometry.Point3, opt raypath.Options) ([][]float64, [][][]geometry.Point3, []error) {
	n := len(rxBatches)
	tts := make([][]float64, n)
	paths := make([][][]geometry.Point3, n)
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
