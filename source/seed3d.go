package source

import (
	"github.com/gophysics/traveltime/geometry"
	"github.com/gophysics/traveltime/mesh"
)

// Seed3D is the tetrahedral analogue of Seed2D. The same three cases
// apply; the one-hop neighbour cone is built from a source vertex's
// owner tetrahedra instead of owner triangles.
func Seed3D(g *mesh.Grid3D, tx []geometry.Point3, t0 []float64, w int, sourceRadius float64, freezeNeighbors bool) ([]bool, error) {
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
				s := averageSlowness3D(g, vi)
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

func averageSlowness3D(g *mesh.Grid3D, v int) float64 {
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
