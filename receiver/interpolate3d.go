package receiver

import (
	"github.com/gophysics/traveltime/geometry"
	"github.com/gophysics/traveltime/mesh"
)

// Interpolate3D is the tetrahedral analogue of Interpolate2D.
func Interpolate3D(g *mesh.Grid3D, r geometry.Point3, w int) (Result, error) {
	if v := g.VertexAt(r); v >= 0 {
		return Result{TT: g.Store.TT(v, w), ArgminNode: v, Cell: NoCell}, nil
	}

	ci, _ := g.CellContaining(r)
	if ci < 0 {
		return Result{}, &mesh.PointOutsideMesh{Coord: []float64{r.X[0], r.X[1], r.X[2]}}
	}

	cell := &g.Cells[ci]
	best := Result{TT: -1, ArgminNode: -1, Cell: ci}
	for _, u := range cell.V {
		d := r.Distance(g.Vertices[u].P)
		candidate := g.Store.TT(u, w) + cell.Slowness*d
		if best.ArgminNode < 0 || candidate < best.TT {
			best.TT = candidate
			best.ArgminNode = u
		}
	}
	return best, nil
}
