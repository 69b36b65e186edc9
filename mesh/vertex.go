package mesh

import "github.com/gophysics/traveltime/geometry"

// Vertex2D is an immutable mesh vertex in the (x,z) plane. Its coordinates
// and index never change after construction; Owners is filled in once
// during grid construction and never mutated afterward.
type Vertex2D struct {
	Index  int
	P      geometry.Point2
	Owners []int // indices of triangles that contain this vertex
}

// Distance returns the Euclidean distance from v to another vertex.
func (v *Vertex2D) Distance(other *Vertex2D) float64 {
	return v.P.Distance(other.P)
}

// Equal reports whether v coincides with the geometric point pt within tol.
func (v *Vertex2D) Equal(pt geometry.Point2, tol float64) bool {
	return v.P.Equal(pt, tol)
}

// Vertex3D is the tetrahedral-mesh analogue of Vertex2D.
type Vertex3D struct {
	Index  int
	P      geometry.Point3
	Owners []int // indices of tetrahedra that contain this vertex
}

func (v *Vertex3D) Distance(other *Vertex3D) float64 {
	return v.P.Distance(other.P)
}

func (v *Vertex3D) Equal(pt geometry.Point3, tol float64) bool {
	return v.P.Equal(pt, tol)
}
