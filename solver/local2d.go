package solver

import (
	"math"

	"github.com/gophysics/traveltime/mesh"
)

const halfPi = math.Pi / 2

// LocalSolve2D relaxes the travel time of vertex target under worker w by
// applying PlanarUpdate over every triangle that owns target, substituting
// the obtuse virtual triangle when the cell's angle at target exceeds
// pi/2. It returns whether any owner cell improved target's
// travel time.
func LocalSolve2D(g *mesh.Grid2D, target, w int) bool {
	updated := false
	for _, cellIdx := range g.Vertices[target].Owners {
		tri := &g.Cells[cellIdx]
		i0 := tri.LocalIndex(target)
		if i0 < 0 {
			continue
		}

		var vertexA, vertexB int
		var a, b, c, alpha, beta float64

		vn, hasVirtual := g.Virtual[cellIdx]
		if tri.A[i0] > halfPi && hasVirtual {
			vertexA, vertexB = vn.A, vn.B
			c, a, b = vn.L[0], vn.L[1], vn.L[2]
			alpha, beta = vn.Ang[1], vn.Ang[0]
		} else {
			vertexA, vertexB, a, b, c, alpha, beta = triangleGeometry(tri, i0)
		}

		ta := g.Store.TT(vertexA, w)
		tb := g.Store.TT(vertexB, w)
		candidate := PlanarUpdate(a, b, c, alpha, beta, ta, tb, tri.Slowness)
		parent := vertexB
		if ta <= tb {
			parent = vertexA
		}
		if g.Store.Relax(target, w, candidate, parent, cellIdx) {
			updated = true
		}
	}
	return updated
}

// triangleGeometry extracts the canonical (vertexA, vertexB, a, b, c,
// alpha, beta) tuple straight from a triangle's precomputed edges and
// angles, with i0 the local index of the target vertex C: vertexA/vertexB
// are C's other two local vertices, a=dist(C,vertexB), b=dist(C,vertexA),
// c=dist(vertexA,vertexB), alpha=angle at vertexB, beta=angle at vertexA.
func triangleGeometry(tri *mesh.Triangle, i0 int) (vertexA, vertexB int, a, b, c, alpha, beta float64) {
	i1 := (i0 + 1) % 3
	i2 := (i0 + 2) % 3
	vertexA = tri.V[i1]
	vertexB = tri.V[i2]
	a = tri.L[i1] // opposite vertexA => edge C-vertexB
	b = tri.L[i2] // opposite vertexB => edge C-vertexA
	c = tri.L[i0] // opposite C => edge vertexA-vertexB
	alpha = tri.A[i2]
	beta = tri.A[i1]
	return vertexA, vertexB, a, b, c, alpha, beta
}
