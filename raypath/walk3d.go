package raypath

import (
	"math"

	"github.com/gophysics/traveltime/geometry"
	"github.com/gophysics/traveltime/mesh"
	"gonum.org/v1/gonum/mat"
)

// Trace3D is the tetrahedral analogue of Trace2D: it walks backward from
// rx along the reverse travel-time gradient, crossing tetrahedron faces
// instead of triangle edges, until it reaches within Tol of a source
// point, lands on a source vertex, enters a cell that contains a source
// in its interior, or diverges.
func Trace3D(g *mesh.Grid3D, rx geometry.Point3, sources []geometry.Point3, w int, opt Options) ([]geometry.Point3, error) {
	gradFn := CellGradient3D
	if opt.HigherOrder {
		gradFn = NeighbourhoodGradient3D
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

	path := []geometry.Point3{rx}
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

	fail := func(reason string) ([]geometry.Point3, error) {
		return []geometry.Point3{rx}, &RayTraceDivergence{Reason: reason}
	}

	for step := 0; ; step++ {
		if si := nearestSource3D(curr, sources, opt.Tol); si >= 0 {
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

			pt, fa, fb, fc, hitVertex, ok := exitFace(g, cell, curr, gn, opt.Tol)
			if !ok {
				bv := bestAlignedVertex3D(g, cell, curr, gn)
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
			next := g.SharedFaceCell(fa, fb, fc, cell)
			if next < 0 {
				return fail("exited mesh boundary")
			}
			cell, state = next, stateInCell

		case stateOnVertex:
			accepted, grad, ok := acceptedCellAtVertex3D(g, vertex, w, gradFn)
			if !ok {
				avg, ok2 := averageRejectedGradients3D(g, vertex, w, gradFn)
				if ok2 {
					accepted, ok = acceptedCellAtVertexWithGrad3D(g, vertex, avg)
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
			pt, fa, fb, fc, hitVertex, ok := exitFace(g, accepted, vp, gn, opt.Tol)
			if !ok {
				return fail("vertex exit-face search failed")
			}
			path = append(path, pt)
			curr = pt
			if hitVertex >= 0 {
				state, vertex = stateOnVertex, hitVertex
				continue
			}
			next := g.SharedFaceCell(fa, fb, fc, accepted)
			if next < 0 {
				return fail("exited mesh boundary")
			}
			cell, state = next, stateInCell
		}
	}
}

func nearestSource3D(p geometry.Point3, sources []geometry.Point3, tol float64) int {
	for i, sp := range sources {
		if p.Distance(sp) <= tol {
			return i
		}
	}
	return -1
}

// exitFace finds the tetrahedron face that a ray from curr along
// direction gn exits through: the nearest forward intersection lying
// within a face's triangle. hitVertex is set when the intersection lands
// on a face vertex rather than its interior.
func exitFace(g *mesh.Grid3D, cellIdx int, curr, gn geometry.Point3, tol float64) (pt geometry.Point3, fa, fb, fc, hitVertex int, ok bool) {
	tet := &g.Cells[cellIdx]
	bestT := math.Inf(1)
	hitVertex = -1

	for local := 0; local < 4; local++ {
		va := tet.V[(local+1)%4]
		vb := tet.V[(local+2)%4]
		vc := tet.V[(local+3)%4]
		pa := g.Vertices[va].P
		pb := g.Vertices[vb].P
		pc := g.Vertices[vc].P

		ipt, t, ok2 := geometry.RayPlaneIntersection(curr, gn, pa, pb, pc, tol)
		if !ok2 || t <= tol {
			continue
		}
		if inside, _ := geometry.TriangleInterior3(ipt, pa, pb, pc, tol); !inside {
			continue
		}
		if t < bestT {
			bestT, pt, fa, fb, fc, ok = t, ipt, va, vb, vc, true
		}
	}
	if !ok {
		return pt, 0, 0, 0, -1, false
	}
	switch {
	case pt.Equal(g.Vertices[fa].P, tol):
		hitVertex = fa
	case pt.Equal(g.Vertices[fb].P, tol):
		hitVertex = fb
	case pt.Equal(g.Vertices[fc].P, tol):
		hitVertex = fc
	}
	return pt, fa, fb, fc, hitVertex, true
}

func bestAlignedVertex3D(g *mesh.Grid3D, cellIdx int, curr, gn geometry.Point3) int {
	tet := &g.Cells[cellIdx]
	best, bestDot := tet.V[0], math.Inf(-1)
	for _, v := range tet.V {
		d := g.Vertices[v].P.Minus(curr).Dot(gn)
		if d > bestDot {
			bestDot, best = d, v
		}
	}
	return best
}

// acceptedCellAtVertex3D is the 3D analogue of acceptedCellAtVertex: a cell
// owning vertex is accepted when its gradient direction lies within the
// solid cone spanned by the vertex's three other edges in that cell, i.e.
// grad = a*v0 + b*v1 + c*v2 for a,b,c all non-negative.
func acceptedCellAtVertex3D(g *mesh.Grid3D, vertex, w int, gradFn gradientFunc3D) (cellIdx int, grad geometry.Point3, ok bool) {
	for _, ci := range g.Vertices[vertex].Owners {
		g2, ok2 := gradFn(g, ci, w)
		if !ok2 {
			continue
		}
		if acceptsVertexCone3D(g, ci, vertex, g2) {
			return ci, g2, true
		}
	}
	return -1, geometry.Point3{}, false
}

func acceptedCellAtVertexWithGrad3D(g *mesh.Grid3D, vertex int, grad geometry.Point3) (int, bool) {
	for _, ci := range g.Vertices[vertex].Owners {
		if acceptsVertexCone3D(g, ci, vertex, grad) {
			return ci, true
		}
	}
	return -1, false
}

func acceptsVertexCone3D(g *mesh.Grid3D, cellIdx, vertex int, grad geometry.Point3) bool {
	tet := &g.Cells[cellIdx]
	i0 := tet.LocalIndex(vertex)
	if i0 < 0 {
		return false
	}
	n0 := tet.V[(i0+1)%4]
	n1 := tet.V[(i0+2)%4]
	n2 := tet.V[(i0+3)%4]
	vp := g.Vertices[vertex].P
	v0 := g.Vertices[n0].P.Minus(vp)
	v1 := g.Vertices[n1].P.Minus(vp)
	v2 := g.Vertices[n2].P.Minus(vp)

	if grad.Norm() == 0 {
		return false
	}

	m := mat.NewDense(3, 3, []float64{
		v0.X[0], v1.X[0], v2.X[0],
		v0.X[1], v1.X[1], v2.X[1],
		v0.X[2], v1.X[2], v2.X[2],
	})
	rhs := mat.NewVecDense(3, []float64{grad.X[0], grad.X[1], grad.X[2]})
	var coef mat.VecDense
	if err := coef.SolveVec(m, rhs); err != nil {
		return false
	}
	const tol = 1e-9
	return coef.AtVec(0) >= -tol && coef.AtVec(1) >= -tol && coef.AtVec(2) >= -tol
}

func averageRejectedGradients3D(g *mesh.Grid3D, vertex, w int, gradFn gradientFunc3D) (geometry.Point3, bool) {
	sum := geometry.Point3{}
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
		return geometry.Point3{}, false
	}
	return sum.Scale(1 / float64(n)), true
}
