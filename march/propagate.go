/*
Package march implements the Fast Marching driver: a
min-priority frontier over travel time that repeatedly freezes the
minimum node and relaxes its still-open neighbours.
*/
package march

import (
	"container/heap"

	"github.com/gophysics/traveltime/geometry"
	"github.com/gophysics/traveltime/mesh"
	"github.com/gophysics/traveltime/solver"
	"github.com/gophysics/traveltime/source"
)

// Propagate runs a single Fast Marching raytrace call on worker w:
// validates Tx/Rx against the mesh, resets the worker's node slots, seeds
// the sources and their one-hop neighbourhood into the narrow band, then
// repeatedly extracts the minimum, freezes it, and relaxes its still-open
// neighbours until the band empties.
//
// Seeded one-hop neighbours are frozen immediately, as in the source
// package's Fast-Marching mode: they are still expanded exactly once when
// they reach the top of the band (frozen only blocks further incoming
// relaxation, it does not block a node's own outward expansion), matching
// Grid3Dunfm.h's initBand/propagate pair.
func Propagate(g *mesh.Grid3D, tx, rx []geometry.Point3, t0 []float64, w int, sourceRadius float64) error {
	if err := g.CheckPts(tx); err != nil {
		return err
	}
	if err := g.CheckPts(rx); err != nil {
		return err
	}

	g.Store.Reset(w)
	frozen, err := source.Seed3D(g, tx, t0, w, sourceRadius, true)
	if err != nil {
		return err
	}

	inBand := make([]bool, len(g.Vertices))
	pq := &priorityQueue{}
	heap.Init(pq)
	for v, f := range frozen {
		if f {
			heap.Push(pq, &item{vertex: v, tt: g.Store.TT(v, w)})
			inBand[v] = true
		}
	}

	for pq.Len() > 0 {
		next := heap.Pop(pq).(*item)
		v := next.vertex
		inBand[v] = false
		frozen[v] = true

		for _, cellIdx := range g.Vertices[v].Owners {
			cell := &g.Cells[cellIdx]
			for _, u := range cell.V {
				if u == v || frozen[u] {
					continue
				}
				solver.LocalSolve3D(g, u, w)
				if !inBand[u] {
					heap.Push(pq, &item{vertex: u, tt: g.Store.TT(u, w)})
					inBand[u] = true
				}
			}
		}
	}
	return nil
}
