package solver

import "github.com/gophysics/traveltime/mesh"

// LocalSolve3D relaxes the travel time of vertex target under worker w
// using the tetrahedral analogue of the planar update: a
// tetrahedron's three faces incident to the target vertex are each planar
// triangles in their own right, so PlanarUpdate applies to each face
// unchanged, with the face's edge lengths and angles computed on the fly
// via the law of cosines rather than precomputed. The minimum
// candidate over all incident faces of all owner cells wins, exactly as
// the minimum over owner triangles wins in LocalSolve2D.
func LocalSolve3D(g *mesh.Grid3D, target, w int) bool {
	updated := false
	for _, cellIdx := range g.Vertices[target].Owners {
		tet := &g.Cells[cellIdx]
		i0 := tet.LocalIndex(target)
		if i0 < 0 {
			continue
		}

		others := make([]int, 0, 3)
		for i := 0; i < 4; i++ {
			if i != i0 {
				others = append(others, i)
			}
		}

		for pi := 0; pi < len(others); pi++ {
			for pj := pi + 1; pj < len(others); pj++ {
				vertexA := tet.V[others[pi]]
				vertexB := tet.V[others[pj]]

				pc := g.Vertices[target].P
				pa := g.Vertices[vertexA].P
				pb := g.Vertices[vertexB].P

				a := pc.Distance(pb) // opposite vertexA
				b := pc.Distance(pa) // opposite vertexB
				c := pa.Distance(pb) // opposite C

				_, angA, angB := mesh.AnglesFromEdges(c, a, b)
				alpha := angB // angle at vertexB
				beta := angA  // angle at vertexA

				ta := g.Store.TT(vertexA, w)
				tb := g.Store.TT(vertexB, w)
				candidate := PlanarUpdate(a, b, c, alpha, beta, ta, tb, tet.Slowness)
				parent := vertexB
				if ta <= tb {
					parent = vertexA
				}
				if g.Store.Relax(target, w, candidate, parent, cellIdx) {
					updated = true
				}
			}
		}
	}
	return updated
}
