package sweep

import (
	"github.com/gophysics/traveltime/geometry"
	"github.com/gophysics/traveltime/mesh"
	"github.com/gophysics/traveltime/solver"
	"github.com/gophysics/traveltime/source"
	"gonum.org/v1/gonum/floats"
)

// Params bounds a single raytrace call: Epsilon is the convergence
// threshold on the global update norm, NIterMax bounds the sweep-set
// count, SourceRadius configures the radius-seeding case for sources
// that don't land exactly on a vertex.
type Params struct {
	Epsilon      float64
	NIterMax     int
	SourceRadius float64
}

// Propagate runs a single Fast Sweeping raytrace call on
// worker w: validates Tx/Rx against the mesh, resets the worker's node
// slots, seeds the sources, then alternates ascending/descending sweeps
// over every precomputed reference ordering until the error norm falls
// below Params.Epsilon or the iteration cap is reached.
//
// Returns the number of sweep-set iterations performed and the final
// error norm. A *NonConvergence error is returned (travel times are
// still valid) if the cap is hit first.
func Propagate(g *mesh.Grid2D, sorted [][]int, tx, rx []geometry.Point2, t0 []float64, w int, p Params) (iterations int, finalError float64, err error) {
	if err := g.CheckPts(tx); err != nil {
		return 0, 0, err
	}
	if err := g.CheckPts(rx); err != nil {
		return 0, 0, err
	}

	g.Store.Reset(w)
	frozen, err := source.Seed2D(g, tx, t0, w, p.SourceRadius, false)
	if err != nil {
		return 0, 0, err
	}

	times := snapshot(g, w)
	iter := 0

	for {
		for _, order := range sorted {
			sweepOnce(g, order, frozen, w, true)
			finalError = updateError(g, w, times)
			if finalError < p.Epsilon {
				return iter + 1, finalError, nil
			}

			sweepOnce(g, order, frozen, w, false)
			finalError = updateError(g, w, times)
			if finalError < p.Epsilon {
				return iter + 1, finalError, nil
			}
		}
		iter++
		if iter >= p.NIterMax {
			return iter, finalError, &NonConvergence{Iterations: iter, ErrNorm: finalError, Epsilon: p.Epsilon}
		}
	}
}

// sweepOnce applies the local solver to every non-frozen vertex in order,
// forward if ascending, reversed otherwise.
func sweepOnce(g *mesh.Grid2D, order []int, frozen []bool, w int, ascending bool) {
	n := len(order)
	for i := 0; i < n; i++ {
		idx := i
		if !ascending {
			idx = n - 1 - i
		}
		v := order[idx]
		if frozen[v] {
			continue
		}
		solver.LocalSolve2D(g, v, w)
	}
}

func snapshot(g *mesh.Grid2D, w int) []float64 {
	times := make([]float64, len(g.Vertices))
	for v := range times {
		times[v] = g.Store.TT(v, w)
	}
	return times
}

// updateError computes Σ|times[n] − TT[n,w]| and refreshes times in place
// to the current field, matching Grid2Duifs::raytrace's error recomputation
// step.
func updateError(g *mesh.Grid2D, w int, times []float64) float64 {
	delta := make([]float64, len(times))
	for v := range times {
		cur := g.Store.TT(v, w)
		delta[v] = cur - times[v]
		times[v] = cur
	}
	return floats.Norm(delta, 1)
}
