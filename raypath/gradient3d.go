package raypath

import (
	"math"

	"github.com/gophysics/traveltime/geometry"
	"github.com/gophysics/traveltime/mesh"
	"gonum.org/v1/gonum/mat"
)

// gradientFunc3D is the 3D analogue of gradientFunc.
type gradientFunc3D func(g *mesh.Grid3D, cellIdx, w int) (geometry.Point3, bool)

// planeGradient3D solves the least-squares plane t(x,y,z) = a*x+b*y+c*z+d
// through the given samples and returns (a,b,c). For exactly four samples
// (a tetrahedron's vertices) this is an exact fit; for more, as used by
// the `_ho` variant, it is a true least-squares fit.
func planeGradient3D(pts []geometry.Point3, times []float64) (geometry.Point3, bool) {
	n := len(pts)
	if n < 4 {
		return geometry.Point3{}, false
	}
	a := mat.NewDense(n, 4, nil)
	b := mat.NewVecDense(n, nil)
	for i, p := range pts {
		if math.IsInf(times[i], 0) {
			return geometry.Point3{}, false
		}
		a.SetRow(i, []float64{p.X[0], p.X[1], p.X[2], 1})
		b.SetVec(i, times[i])
	}
	var x mat.VecDense
	if err := x.SolveVec(a, b); err != nil {
		return geometry.Point3{}, false
	}
	return geometry.NewPoint3(x.AtVec(0), x.AtVec(1), x.AtVec(2)), true
}

// CellGradient3D fits the exact plane through a tetrahedron's four vertex
// times and returns the walking direction "g" (the negative of the
// travel-time gradient, per the same convention as CellGradient2D).
func CellGradient3D(g *mesh.Grid3D, cellIdx, w int) (geometry.Point3, bool) {
	cell := &g.Cells[cellIdx]
	pts := make([]geometry.Point3, 4)
	times := make([]float64, 4)
	for i, v := range cell.V {
		pts[i] = g.Vertices[v].P
		times[i] = g.Store.TT(v, w)
	}
	grad, ok := planeGradient3D(pts, times)
	if !ok {
		return geometry.Point3{}, false
	}
	return grad.Scale(-1), true
}

// NeighbourhoodGradient3D is the `_ho` gradient estimator over the union
// of vertex sets of every tetrahedron sharing at least one vertex with
// cellIdx.
func NeighbourhoodGradient3D(g *mesh.Grid3D, cellIdx, w int) (geometry.Point3, bool) {
	seed := make(map[int]bool, 4)
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

	pts := make([]geometry.Point3, 0, len(ring))
	times := make([]float64, 0, len(ring))
	for v := range ring {
		pts = append(pts, g.Vertices[v].P)
		times = append(times, g.Store.TT(v, w))
	}
	grad, ok := planeGradient3D(pts, times)
	if !ok {
		return geometry.Point3{}, false
	}
	return grad.Scale(-1), true
}
