/*
Package source implements source seeding: fixing the travel
time at each source point and its immediate neighbourhood as frozen,
before the Fast Sweeping or Fast Marching driver relaxes the rest of the
field.
*/
package source

import (
	"github.com/gophysics/traveltime/geometry"
	"github.com/gophysics/traveltime/mesh"
)

// Seed2D applies source seeding to a 2D grid: for each (Tx[i], t0[i]) pair, one
// of three cases fires depending on whether Tx[i] coincides with a
// vertex, falls within a configured source radius (single source only),
// or lies interior to a cell. freezeNeighbors controls whether the
// one-hop neighbour cone seeded around a vertex-coincident source is also
// frozen: Fast Marching freezes it immediately (it enters the narrow band
// already known), Fast Sweeping leaves it open for further relaxation.
//
// Returns the frozen-vertex flags (scratch, owned by the caller for the
// duration of one raytrace call) and ErrNoSourceNodes if a configured
// radius contains no nodes.
func Seed2D(g *mesh.Grid2D, tx []geometry.Point2, t0 []float64, w int, sourceRadius float64, freezeNeighbors bool) ([]bool, error) {
	frozen := make([]bool, len(g.Vertices))

	for i, txPt := range tx {
		if v := g.VertexAt(txPt); v >= 0 {
			g.Store.SetTT(v, w, t0[i])
			frozen[v] = true

			for _, cellIdx := range g.Vertices[v].Owners {
				cell := &g.Cells[cellIdx]
				for _, u := range cell.V {
					if u == v {
						continue
					}
					dt := cell.Slowness * g.Vertices[v].Distance(&g.Vertices[u])
					candidate := t0[i] + dt
					if candidate < g.Store.TT(u, w) {
						g.Store.Relax(u, w, candidate, v, cellIdx)
						if freezeNeighbors {
							frozen[u] = true
						}
					}
				}
			}
			continue
		}

		if sourceRadius > 0 && len(tx) == 1 {
			found := 0
			for vi := range g.Vertices {
				d := txPt.Distance(g.Vertices[vi].P)
				if d > sourceRadius {
					continue
				}
				s := averageSlowness2D(g, vi)
				candidate := t0[i] + s*d
				if candidate < g.Store.TT(vi, w) {
					g.Store.Relax(vi, w, candidate, -1, -1)
					frozen[vi] = true
					found++
				}
			}
			if found == 0 {
				return frozen, ErrNoSourceNodes
			}
			continue
		}

		ci, _ := g.CellContaining(txPt)
		if ci < 0 {
			continue // checkPts is expected to have already rejected this Tx
		}
		s := g.Cells[ci].Slowness
		for _, u := range g.Cells[ci].V {
			d := txPt.Distance(g.Vertices[u].P)
			g.Store.SetTT(u, w, t0[i]+s*d)
			frozen[u] = true
		}
	}
	return frozen, nil
}

// averageSlowness2D approximates a per-vertex slowness (needed for the
// radius-seeding case, which has no single owning cell) as the mean
// slowness of the vertex's owner cells.
func averageSlowness2D(g *mesh.Grid2D, v int) float64 {
	owners := g.Vertices[v].Owners
	if len(owners) == 0 {
		return 0
	}
	var sum float64
	for _, c := range owners {
		sum += g.Cells[c].Slowness
	}
	return sum / float64(len(owners))
}
