package raypath

import (
	"math"

	"github.com/gophysics/traveltime/geometry"
	"github.com/gophysics/traveltime/mesh"
	"gonum.org/v1/gonum/mat"
)

// gradientFunc computes the travel-time gradient for a cell: the plain
// per-cell least-squares fit, or the `_ho` neighbourhood variant.
type gradientFunc func(g *mesh.Grid2D, cellIdx, w int) (geometry.Point2, bool)

// planeGradient solves the least-squares plane t(x,y) = a*x + b*y + c
// through the given (point, time) samples and returns (a,b), the
// gradient. For exactly three samples this is an exact fit (a triangle's
// three vertices always determine a unique plane); for more it is a true
// least-squares fit, used by the `_ho` variant.
func planeGradient(pts []geometry.Point2, times []float64) (geometry.Point2, bool) {
	n := len(pts)
	if n < 3 {
		return geometry.Point2{}, false
	}
	a := mat.NewDense(n, 3, nil)
	b := mat.NewVecDense(n, nil)
	for i, p := range pts {
		if math.IsInf(times[i], 0) {
			return geometry.Point2{}, false
		}
		a.SetRow(i, []float64{p.X[0], p.X[1], 1})
		b.SetVec(i, times[i])
	}
	var x mat.VecDense
	if err := x.SolveVec(a, b); err != nil {
		return geometry.Point2{}, false
	}
	return geometry.NewPoint2(x.AtVec(0), x.AtVec(1)), true
}

// CellGradient2D fits the exact plane through a triangle's three vertex
// times and returns the walking direction "g" used throughout the walker:
// the negative of the travel-time gradient, i.e. the direction of
// decreasing time, since the back-propagator walks from receiver to
// source against the field's increasing-time direction.
func CellGradient2D(g *mesh.Grid2D, cellIdx, w int) (geometry.Point2, bool) {
	cell := &g.Cells[cellIdx]
	pts := make([]geometry.Point2, 3)
	times := make([]float64, 3)
	for i, v := range cell.V {
		pts[i] = g.Vertices[v].P
		times[i] = g.Store.TT(v, w)
	}
	grad, ok := planeGradient(pts, times)
	if !ok {
		return geometry.Point2{}, false
	}
	return grad.Scale(-1), true
}

// NeighbourhoodGradient2D is the `_ho` (higher-order) gradient estimator:
// a least-squares plane fit over the union of vertex sets of every cell
// that shares at least one vertex with cellIdx (a 1-ring extension,
// deduplicated), giving a smoother, less cell-biased gradient than
// CellGradient2D.
func NeighbourhoodGradient2D(g *mesh.Grid2D, cellIdx, w int) (geometry.Point2, bool) {
	seed := make(map[int]bool, 3)
	for _, v := range g.Cells[cellIdx].V {
		seed[v] = true
	}

	ring := make(map[int]bool)
	for ci := range g.Cells {
		shares := false
		for _, v := range g.Cells[ci].V {
			if seed[v] {
				shares = true
				break
			}
		}
		if !shares {
			continue
		}
		for _, v := range g.Cells[ci].V {
			ring[v] = true
		}
	}

	pts := make([]geometry.Point2, 0, len(ring))
	times := make([]float64, 0, len(ring))
	for v := range ring {
		pts = append(pts, g.Vertices[v].P)
		times = append(times, g.Store.TT(v, w))
	}
	grad, ok := planeGradient(pts, times)
	if !ok {
		return geometry.Point2{}, false
	}
	return grad.Scale(-1), true
}
