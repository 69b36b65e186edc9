/*
Package receiver implements final-arrival interpolation at a receiver
point: a vertex-coincident receiver reads its slot directly,
otherwise the minimum straight-line extrapolation from its containing
cell's vertices wins, and the winning vertex and cell are recorded as the
starting point for ray back-propagation.
*/
package receiver

import (
	"github.com/gophysics/traveltime/geometry"
	"github.com/gophysics/traveltime/mesh"
)

// Result carries a receiver's interpolated travel time and the vertex/cell
// that produced it, the entry point for the raypath package's back
// propagation.
type Result struct {
	TT         float64
	ArgminNode int // NoCell's owner vertex, or the winning cell vertex
	Cell       int // owning cell, or NoCell if r coincides with a vertex
}

// NoCell marks a Result produced directly from a vertex slot, with no
// interpolating cell.
const NoCell = -1

// Interpolate2D implements receiver interpolation for a triangular mesh.
func Interpolate2D(g *mesh.Grid2D, r geometry.Point2, w int) (Result, error) {
	if v := g.VertexAt(r); v >= 0 {
		return Result{TT: g.Store.TT(v, w), ArgminNode: v, Cell: NoCell}, nil
	}

	ci, _ := g.CellContaining(r)
	if ci < 0 {
		return Result{}, &mesh.PointOutsideMesh{Coord: []float64{r.X[0], r.X[1]}}
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
