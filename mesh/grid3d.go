package mesh

import (
	"github.com/gophysics/traveltime/geometry"
	"github.com/gophysics/traveltime/node"
)

// Grid3D is the tetrahedral-mesh grid driven by the Fast Marching solver.
// Unlike Grid2D it has no obtuse-angle virtual-node table: a tetrahedron's
// face geometry is computed on demand by the 3D local solver rather than
// precomputed at construction time.
type Grid3D struct {
	Vertices []Vertex3D
	Cells    []Tetrahedron

	// Tol is the vertex-coincidence tolerance, nodeTol scaled by this
	// mesh's mean edge length.
	Tol float64

	Store *node.Store
}

// NewGrid3D builds a tetrahedral mesh from a vertex coordinate list and a
// list of tetrahedra given as 4-vertex-index quadruples.
func NewGrid3D(coords []geometry.Point3, tets [][4]int, numWorkers int) *Grid3D {
	g := &Grid3D{
		Vertices: make([]Vertex3D, len(coords)),
		Cells:    make([]Tetrahedron, len(tets)),
	}
	for i, p := range coords {
		g.Vertices[i] = Vertex3D{Index: i, P: p}
	}
	for i, tet := range tets {
		g.Cells[i] = Tetrahedron{V: tet}
	}
	g.buildOwners()
	g.Tol = g.meanEdgeLength() * nodeTol
	g.Store = node.NewStore(len(g.Vertices), numWorkers)
	return g
}

// meanEdgeLength averages the six edge lengths of every tetrahedron,
// giving a characteristic mesh spacing to scale nodeTol by. Falls back to
// 1 for an empty mesh so Tol degrades to nodeTol itself rather than zero.
func (g *Grid3D) meanEdgeLength() float64 {
	if len(g.Cells) == 0 {
		return 1
	}
	var sum float64
	var n int
	for i := range g.Cells {
		v := g.Cells[i].V
		for a := 0; a < 4; a++ {
			for b := a + 1; b < 4; b++ {
				sum += g.Vertices[v[a]].P.Distance(g.Vertices[v[b]].P)
				n++
			}
		}
	}
	return sum / float64(n)
}

func (g *Grid3D) buildOwners() {
	for ci := range g.Cells {
		for _, vi := range g.Cells[ci].V {
			g.Vertices[vi].Owners = append(g.Vertices[vi].Owners, ci)
		}
	}
}

// SetSlowness assigns one slowness value per cell.
func (g *Grid3D) SetSlowness(per []float64) error {
	if len(per) != len(g.Cells) {
		return &SizeMismatch{Have: len(per), Want: len(g.Cells)}
	}
	for i, s := range per {
		g.Cells[i].Slowness = s
	}
	return nil
}

// SetSlownessScalar broadcasts a single slowness value to every cell.
func (g *Grid3D) SetSlownessScalar(s float64) {
	for i := range g.Cells {
		g.Cells[i].Slowness = s
	}
}

// CellContaining performs a linear scan for the tetrahedron containing pt.
func (g *Grid3D) CellContaining(pt geometry.Point3) (cellIndex int, bary [4]float64) {
	for i := range g.Cells {
		tet := &g.Cells[i]
		p0 := g.Vertices[tet.V[0]].P
		p1 := g.Vertices[tet.V[1]].P
		p2 := g.Vertices[tet.V[2]].P
		p3 := g.Vertices[tet.V[3]].P
		if inside, b := geometry.TetrahedronInterior(pt, p0, p1, p2, p3, g.Tol); inside {
			return i, b
		}
	}
	return -1, bary
}

// VertexAt returns the index of the vertex coincident with pt within
// g.Tol, or -1 if none.
func (g *Grid3D) VertexAt(pt geometry.Point3) int {
	for i := range g.Vertices {
		if g.Vertices[i].Equal(pt, g.Tol) {
			return i
		}
	}
	return -1
}

// CheckPts validates that every point either coincides with a vertex or
// lies inside some cell.
func (g *Grid3D) CheckPts(pts []geometry.Point3) error {
	for i, p := range pts {
		if g.VertexAt(p) >= 0 {
			continue
		}
		if ci, _ := g.CellContaining(p); ci >= 0 {
			continue
		}
		return &PointOutsideMesh{Index: i, Coord: []float64{p.X[0], p.X[1], p.X[2]}}
	}
	return nil
}

// NumWorkers returns the number of independent worker slots configured
// for this grid.
func (g *Grid3D) NumWorkers() int {
	return g.Store.NumWorkers
}

// SharedFaceCell returns the index of the tetrahedron other than exclude
// that owns all three of v0, v1, v2, or -1 if that face is a mesh
// boundary. The 3D analogue of Grid2D.SharedCell, used by the raypath
// package to find the next cell across a crossed face.
func (g *Grid3D) SharedFaceCell(v0, v1, v2, exclude int) int {
	for _, ca := range g.Vertices[v0].Owners {
		if ca == exclude {
			continue
		}
		hasB, hasC := false, false
		for _, cb := range g.Vertices[v1].Owners {
			if cb == ca {
				hasB = true
				break
			}
		}
		if !hasB {
			continue
		}
		for _, cc := range g.Vertices[v2].Owners {
			if cc == ca {
				hasC = true
				break
			}
		}
		if hasC {
			return ca
		}
	}
	return -1
}
