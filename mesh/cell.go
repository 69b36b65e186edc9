package mesh

import "math"

// Triangle is a 2D mesh cell: three vertex indices, the opposite-edge
// length and interior angle at each of the three local vertices (indexed
// so L[i]/A[i] belong to the edge/angle opposite local vertex i), and a
// scalar slowness.
type Triangle struct {
	V        [3]int
	L        [3]float64 // L[i]: length of the edge opposite local vertex i
	A        [3]float64 // A[i]: interior angle at local vertex i
	Slowness float64
}

// LocalIndex returns the local position (0,1,2) of vertex index vi within
// the triangle, or -1 if vi is not one of its vertices.
func (t *Triangle) LocalIndex(vi int) int {
	for i, v := range t.V {
		if v == vi {
			return i
		}
	}
	return -1
}

// Tetrahedron is a 3D mesh cell: four vertex indices and a scalar
// slowness. Tetrahedral edge/angle bookkeeping is computed on demand by
// the 3D local solver rather than precomputed, since a tetrahedron has
// six edges and four triangular faces rather than the fixed three of a
// triangle.
type Tetrahedron struct {
	V        [4]int
	Slowness float64
}

func (t *Tetrahedron) LocalIndex(vi int) int {
	for i, v := range t.V {
		if v == vi {
			return i
		}
	}
	return -1
}

// VirtualNode is the obtuse-angle preprocessor's output for one triangle:
// a surrogate triangle (A', B', C) drawn from the neighbouring cell across
// C's opposite edge, replacing an obtuse geometry with a well-conditioned
// one for the local solver.
type VirtualNode struct {
	A, B int        // virtual vertex indices A', B' (C is the owning triangle's obtuse vertex)
	L    [3]float64 // edge lengths of (A',B',C): L[0]=A'B', L[1]=B'C, L[2]=A'C
	Ang  [3]float64 // angles of (A',B',C) at A'(0), B'(1), C(2)
}

// AnglesFromEdges applies the law of cosines to a planar triangle with
// edge lengths (l0,l1,l2), where li is the edge opposite local vertex i,
// returning the interior angle at each vertex. Used both to precompute a
// 2D triangle's angles at grid-construction time and, in the 3D local
// solver, to compute a tetrahedron face's angles on the fly.
func AnglesFromEdges(l0, l1, l2 float64) (a0, a1, a2 float64) {
	clamp := func(x float64) float64 {
		if x > 1 {
			return 1
		}
		if x < -1 {
			return -1
		}
		return x
	}
	a0 = math.Acos(clamp((l1*l1 + l2*l2 - l0*l0) / (2 * l1 * l2)))
	a1 = math.Acos(clamp((l2*l2 + l0*l0 - l1*l1) / (2 * l2 * l0)))
	a2 = math.Acos(clamp((l0*l0 + l1*l1 - l2*l2) / (2 * l0 * l1)))
	return a0, a1, a2
}
