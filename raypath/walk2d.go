package raypath

import (
	"math"

	"github.com/gophysics/traveltime/geometry"
	"github.com/gophysics/traveltime/mesh"
)

// Options bounds a single Trace2D call.
type Options struct {
	HigherOrder bool    // use NeighbourhoodGradient2D instead of CellGradient2D
	Tol         float64 // coincidence / segment tolerance
	MaxSteps    int     // divergence bound on total edge/vertex crossings
}

type walkState int

const (
	stateInCell walkState = iota
	stateOnVertex
)

// Trace2D walks backward from rx along the reverse travel-time gradient
// until it reaches within Tol of a source point, lands on a source vertex,
// enters a cell that contains a source in its interior, or diverges.
// On divergence the single-point path [rx] is returned alongside a
// *RayTraceDivergence; the caller's travel time remains valid regardless.
func Trace2D(g *mesh.Grid2D, rx geometry.Point2, sources []geometry.Point2, w int, opt Options) ([]geometry.Point2, error) {
	gradFn := CellGradient2D
	if opt.HigherOrder {
		gradFn = NeighbourhoodGradient2D
	}

	sourceVertex := make(map[int]bool)
	sourceCell := make(map[int]int)
	for si, sp := range sources {
		if v := g.VertexAt(sp); v >= 0 {
			sourceVertex[v] = true
			continue
		}
		if ci, _ := g.CellContaining(sp); ci >= 0 {
			sourceCell[ci] = si
		}
	}

	path := []geometry.Point2{rx}
	curr := rx
	state := stateInCell
	cell, vertex := -1, -1

	if v := g.VertexAt(rx); v >= 0 {
		state = stateOnVertex
		vertex = v
	} else {
		ci, _ := g.CellContaining(rx)
		if ci < 0 {
			return path, &RayTraceDivergence{Reason: "receiver not inside mesh"}
		}
		cell = ci
	}

	fail := func(reason string) ([]geometry.Point2, error) {
		return []geometry.Point2{rx}, &RayTraceDivergence{Reason: reason}
	}

	for step := 0; ; step++ {
		if si := nearestSource(curr, sources, opt.Tol); si >= 0 {
			if !curr.Equal(sources[si], opt.Tol) {
				path = append(path, sources[si])
			}
			return path, nil
		}
		if state == stateOnVertex && sourceVertex[vertex] {
			return path, nil
		}
		if state == stateInCell {
			if si, ok := sourceCell[cell]; ok {
				if !curr.Equal(sources[si], opt.Tol) {
					path = append(path, sources[si])
				}
				return path, nil
			}
		}
		if step >= opt.MaxSteps {
			return fail("exceeded maximum step bound")
		}

		switch state {
		case stateInCell:
			grad, ok := gradFn(g, cell, w)
			if !ok {
				return fail("degenerate cell gradient")
			}
			gn := grad.Normalize()
			if gn.Norm() == 0 {
				return fail("zero gradient")
			}

			pt, ea, eb, hitVertex, ok := exitEdge(g, cell, curr, gn, opt.Tol)
			if !ok {
				bv := bestAlignedVertex(g, cell, curr, gn)
				path = append(path, g.Vertices[bv].P)
				curr = g.Vertices[bv].P
				state, vertex = stateOnVertex, bv
				continue
			}

			path = append(path, pt)
			curr = pt
			if hitVertex >= 0 {
				state, vertex = stateOnVertex, hitVertex
				continue
			}
			next := g.SharedCell(ea, eb, cell)
			if next < 0 {
				return fail("exited mesh boundary")
			}
			cell, state = next, stateInCell

		case stateOnVertex:
			accepted, grad, ok := acceptedCellAtVertex(g, vertex, w, gradFn)
			if !ok {
				avg, ok2 := averageRejectedGradients(g, vertex, w, gradFn)
				if ok2 {
					accepted, ok = acceptedCellAtVertexWithGrad(g, vertex, avg)
					grad = avg
				}
				if !ok {
					return fail("no accepting cell at vertex")
				}
			}
			gn := grad.Normalize()
			if gn.Norm() == 0 {
				return fail("zero gradient at vertex")
			}
			vp := g.Vertices[vertex].P
			pt, ea, eb, hitVertex, ok := exitEdge(g, accepted, vp, gn, opt.Tol)
			if !ok {
				return fail("vertex exit-edge search failed")
			}
			path = append(path, pt)
			curr = pt
			if hitVertex >= 0 {
				state, vertex = stateOnVertex, hitVertex
				continue
			}
			next := g.SharedCell(ea, eb, accepted)
			if next < 0 {
				return fail("exited mesh boundary")
			}
			cell, state = next, stateInCell
		}
	}
}

func nearestSource(p geometry.Point2, sources []geometry.Point2, tol float64) int {
	for i, sp := range sources {
		if p.Distance(sp) <= tol {
			return i
		}
	}
	return -1
}

// exitEdge finds the triangle edge that a ray from curr along direction gn
// exits through: the nearest forward intersection lying within an edge
// segment. hitVertex is set (and equal to one of ea/eb) when the
// intersection lands on an edge endpoint rather than its interior.
func exitEdge(g *mesh.Grid2D, cellIdx int, curr, gn geometry.Point2, tol float64) (pt geometry.Point2, ea, eb, hitVertex int, ok bool) {
	tri := &g.Cells[cellIdx]
	bestT := math.Inf(1)
	hitVertex = -1

	for local := 0; local < 3; local++ {
		va := tri.V[(local+1)%3]
		vb := tri.V[(local+2)%3]
		q0 := g.Vertices[va].P
		q1 := g.Vertices[vb].P

		ipt, t, u, ok2 := geometry.SegmentIntersection(curr, curr.Plus(gn), q0, q1, tol)
		if !ok2 || t <= tol || u < -tol || u > 1+tol {
			continue
		}
		if t < bestT {
			bestT, pt, ea, eb, ok = t, ipt, va, vb, true
		}
	}
	if !ok {
		return pt, 0, 0, -1, false
	}
	if pt.Equal(g.Vertices[ea].P, tol) {
		hitVertex = ea
	} else if pt.Equal(g.Vertices[eb].P, tol) {
		hitVertex = eb
	}
	return pt, ea, eb, hitVertex, true
}

// bestAlignedVertex picks the cell vertex whose direction from curr aligns
// best with gn, the fallback exit when no edge accepts the ray: a
// numerical edge case with the gradient pointing just outside every edge.
func bestAlignedVertex(g *mesh.Grid2D, cellIdx int, curr, gn geometry.Point2) int {
	tri := &g.Cells[cellIdx]
	best, bestDot := tri.V[0], math.Inf(-1)
	for _, v := range tri.V {
		d := g.Vertices[v].P.Minus(curr).Dot(gn)
		if d > bestDot {
			bestDot, best = d, v
		}
	}
	return best
}

// acceptedCellAtVertex implements the on-vertex acceptance test: for each
// cell owning vertex, compute its gradient and accept iff the gradient
// falls within the angular sector between the cell's other two edge
// vectors, with matching winding.
func acceptedCellAtVertex(g *mesh.Grid2D, vertex, w int, gradFn gradientFunc) (cellIdx int, grad geometry.Point2, ok bool) {
	for _, ci := range g.Vertices[vertex].Owners {
		g2, ok2 := gradFn(g, ci, w)
		if !ok2 {
			continue
		}
		if acceptsVertexSector(g, ci, vertex, g2) {
			return ci, g2, true
		}
	}
	return -1, geometry.Point2{}, false
}

// acceptedCellAtVertexWithGrad retries the sector test with a fixed
// (averaged) gradient, the fallback path for when no owning cell accepts
// its own gradient at this vertex.
func acceptedCellAtVertexWithGrad(g *mesh.Grid2D, vertex int, grad geometry.Point2) (int, bool) {
	for _, ci := range g.Vertices[vertex].Owners {
		if acceptsVertexSector(g, ci, vertex, grad) {
			return ci, true
		}
	}
	return -1, false
}

func acceptsVertexSector(g *mesh.Grid2D, cellIdx, vertex int, grad geometry.Point2) bool {
	tri := &g.Cells[cellIdx]
	i0 := tri.LocalIndex(vertex)
	if i0 < 0 {
		return false
	}
	n0 := tri.V[(i0+1)%3]
	n1 := tri.V[(i0+2)%3]
	vp := g.Vertices[vertex].P
	v0 := g.Vertices[n0].P.Minus(vp)
	v1 := g.Vertices[n1].P.Minus(vp)

	if v0.Norm() == 0 || v1.Norm() == 0 || grad.Norm() == 0 {
		return false
	}
	angV0G := angleBetween(v0, grad)
	angV0V1 := angleBetween(v0, v1)
	if angV0G > angV0V1+1e-9 {
		return false
	}
	return sign(v0.Cross(grad)) == sign(v0.Cross(v1))
}

func averageRejectedGradients(g *mesh.Grid2D, vertex, w int, gradFn gradientFunc) (geometry.Point2, bool) {
	sum := geometry.Point2{}
	n := 0
	for _, ci := range g.Vertices[vertex].Owners {
		g2, ok := gradFn(g, ci, w)
		if !ok {
			continue
		}
		sum = sum.Plus(g2)
		n++
	}
	if n == 0 {
		return geometry.Point2{}, false
	}
	return sum.Scale(1 / float64(n)), true
}

func angleBetween(a, b geometry.Point2) float64 {
	c := a.Dot(b) / (a.Norm() * b.Norm())
	if c > 1 {
		c = 1
	} else if c < -1 {
		c = -1
	}
	return math.Acos(c)
}

func sign(x float64) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
