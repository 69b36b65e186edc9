package mesh

import (
	"math"

	"github.com/gophysics/traveltime/geometry"
	"github.com/gophysics/traveltime/node"
)

// nodeTol is the base coincidence tolerance, matching utils.NODETOL. It is
// never used bare: every grid scales it by its own mean edge length so a
// millimetre-scale mesh and a kilometre-scale mesh apply the same relative
// tolerance.
const nodeTol = 1e-12

// Grid2D is the triangular-mesh grid driven by the Fast Sweeping solver.
// It owns its vertices, triangles, and the obtuse-angle virtual-node
// table; all three are built once by NewGrid2D and never mutated
// afterward (data model "Lifecycle"). Per-vertex travel-time state lives
// in the embedded node.Store, one row per vertex, one column per worker.
type Grid2D struct {
	Vertices []Vertex2D
	Cells    []Triangle
	Virtual  map[int]VirtualNode // keyed by triangle index

	// Tol is the vertex-coincidence tolerance, nodeTol scaled by this
	// mesh's mean edge length.
	Tol float64

	Store *node.Store
}

// NewGrid2D builds a triangular mesh from a vertex coordinate list and a
// list of triangles given as 3-vertex-index triples. It computes owner
// lists, per-cell edge lengths and angles, and the obtuse-angle virtual
// node table, and allocates numWorkers independent travel-time slots per
// vertex.
func NewGrid2D(coords []geometry.Point2, triangles [][3]int, numWorkers int) *Grid2D {
	g := &Grid2D{
		Vertices: make([]Vertex2D, len(coords)),
		Cells:    make([]Triangle, len(triangles)),
	}
	for i, p := range coords {
		g.Vertices[i] = Vertex2D{Index: i, P: p}
	}
	for i, tri := range triangles {
		g.Cells[i] = Triangle{V: tri}
	}

	g.buildOwners()
	g.buildEdgesAndAngles()
	g.Tol = g.meanEdgeLength() * nodeTol
	g.buildVirtualNodes()

	g.Store = node.NewStore(len(g.Vertices), numWorkers)
	return g
}

// meanEdgeLength averages every cell's three edge lengths, giving a
// characteristic mesh spacing to scale nodeTol by. Falls back to 1 for an
// empty mesh so Tol degrades to nodeTol itself rather than zero.
func (g *Grid2D) meanEdgeLength() float64 {
	if len(g.Cells) == 0 {
		return 1
	}
	var sum float64
	for i := range g.Cells {
		sum += g.Cells[i].L[0] + g.Cells[i].L[1] + g.Cells[i].L[2]
	}
	return sum / float64(3*len(g.Cells))
}

func (g *Grid2D) buildOwners() {
	for ci := range g.Cells {
		for _, vi := range g.Cells[ci].V {
			g.Vertices[vi].Owners = append(g.Vertices[vi].Owners, ci)
		}
	}
}

// buildEdgesAndAngles precomputes each triangle's opposite-edge lengths
// and, via the law of cosines, its interior angles.
func (g *Grid2D) buildEdgesAndAngles() {
	for ci := range g.Cells {
		c := &g.Cells[ci]
		p0 := g.Vertices[c.V[0]].P
		p1 := g.Vertices[c.V[1]].P
		p2 := g.Vertices[c.V[2]].P
		c.L[0] = p1.Distance(p2) // opposite vertex 0
		c.L[1] = p2.Distance(p0) // opposite vertex 1
		c.L[2] = p0.Distance(p1) // opposite vertex 2
		c.A[0], c.A[1], c.A[2] = AnglesFromEdges(c.L[0], c.L[1], c.L[2])
	}
}

// buildVirtualNodes runs the obtuse-angle preprocessor over
// every triangle vertex.
func (g *Grid2D) buildVirtualNodes() {
	g.Virtual = make(map[int]VirtualNode)
	const halfPi = math.Pi / 2
	// angleTol keeps an exact right angle, which the law of cosines can
	// return an ulp above pi/2, from counting as obtuse.
	const angleTol = 1e-12

	for ti := range g.Cells {
		tri := &g.Cells[ti]
		for local := 0; local < 3; local++ {
			if tri.A[local] <= halfPi+angleTol {
				continue
			}
			c := tri.V[local]
			i1 := tri.V[(local+1)%3]
			i2 := tri.V[(local+2)%3]

			oppositeTriangle := g.findSharedTriangle(i1, i2, ti)
			if oppositeTriangle < 0 {
				continue // boundary edge, no neighbour to draw a virtual triangle from
			}

			other := &g.Cells[oppositeTriangle]
			var i3 int
			if other.V[0] != i1 && other.V[0] != i2 {
				i3 = other.V[0]
			} else if other.V[1] != i1 && other.V[1] != i2 {
				i3 = other.V[1]
			} else {
				// Open Question: the source tests the same
				// condition twice here; the apparent intent, and what we
				// implement, is the third vertex.
				i3 = other.V[2]
			}

			vn := g.tryVirtualTriangle(i1, i3, c)
			if vn.Ang[2] > halfPi+angleTol {
				// still obtuse at C: swap to (i3, i2, C)
				vn = g.tryVirtualTriangle(i3, i2, c)
			}
			g.Virtual[ti] = vn
		}
	}
}

// SharedCell returns the index of the triangle other than exclude that
// owns both vertices v1 and v2, or -1 if the edge is a mesh boundary. Used
// by the raypath package to find the next cell across a crossed edge.
func (g *Grid2D) SharedCell(v1, v2, exclude int) int {
	return g.findSharedTriangle(v1, v2, exclude)
}

// findSharedTriangle returns the index of the triangle other than exclude
// that owns both vertices i1 and i2, or -1 if there is no such triangle
// (i1-i2 is a boundary edge).
func (g *Grid2D) findSharedTriangle(i1, i2, exclude int) int {
	for _, ca := range g.Vertices[i1].Owners {
		if ca == exclude {
			continue
		}
		for _, cb := range g.Vertices[i2].Owners {
			if ca == cb {
				return ca
			}
		}
	}
	return -1
}

// tryVirtualTriangle builds the virtual-triangle geometry (a,b,c) for
// candidate vertices (a,b,c=C), matching Grid2Duc's virtual-node
// construction: c is the edge a-b's length, a is b-c's length ("A' side"),
// b is a-c's length ("B' side").
func (g *Grid2D) tryVirtualTriangle(a, b, c int) VirtualNode {
	pa := g.Vertices[a].P
	pb := g.Vertices[b].P
	pc := g.Vertices[c].P

	lc := pa.Distance(pb) // edge A'B'
	la := pb.Distance(pc) // edge B'C
	lb := pa.Distance(pc) // edge A'C

	angA, angB, angC := AnglesFromEdges(la, lb, lc)
	return VirtualNode{
		A: a, B: b,
		L:   [3]float64{lc, la, lb},
		Ang: [3]float64{angA, angB, angC},
	}
}

// SetSlowness assigns one slowness value per cell. Returns SizeMismatch if
// per is not exactly len(Cells) long.
func (g *Grid2D) SetSlowness(per []float64) error {
	if len(per) != len(g.Cells) {
		return &SizeMismatch{Have: len(per), Want: len(g.Cells)}
	}
	for i, s := range per {
		g.Cells[i].Slowness = s
	}
	return nil
}

// SetSlownessScalar broadcasts a single slowness value to every cell.
func (g *Grid2D) SetSlownessScalar(s float64) {
	for i := range g.Cells {
		g.Cells[i].Slowness = s
	}
}

// CellContaining performs a linear scan for the triangle containing pt,
// returning its index and barycentric coordinates, or -1 if none contains
// it (a linear scan is acceptable; the core does not mandate
// spatial indexing").
func (g *Grid2D) CellContaining(pt geometry.Point2) (cellIndex int, bary [3]float64) {
	for i := range g.Cells {
		tri := &g.Cells[i]
		p0 := g.Vertices[tri.V[0]].P
		p1 := g.Vertices[tri.V[1]].P
		p2 := g.Vertices[tri.V[2]].P
		if inside, b := geometry.TriangleInterior(pt, p0, p1, p2, g.Tol); inside {
			return i, b
		}
	}
	return -1, bary
}

// VertexAt returns the index of the vertex coincident with pt within
// g.Tol, or -1 if none.
func (g *Grid2D) VertexAt(pt geometry.Point2) int {
	for i := range g.Vertices {
		if g.Vertices[i].Equal(pt, g.Tol) {
			return i
		}
	}
	return -1
}

// CheckPts validates that every point either coincides with a vertex or
// lies inside some cell, matching Grid2Dui::check_pts's acceptance of
// both cases. It returns the first violation as a *PointOutsideMesh.
func (g *Grid2D) CheckPts(pts []geometry.Point2) error {
	for i, p := range pts {
		if g.VertexAt(p) >= 0 {
			continue
		}
		if ci, _ := g.CellContaining(p); ci >= 0 {
			continue
		}
		return &PointOutsideMesh{Index: i, Coord: []float64{p.X[0], p.X[1]}}
	}
	return nil
}

// NumWorkers returns the number of independent worker slots configured
// for this grid.
func (g *Grid2D) NumWorkers() int {
	return g.Store.NumWorkers
}
