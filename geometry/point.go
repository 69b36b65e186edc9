/*
Package geometry provides the vector and point primitives shared by the
mesh, solver, and ray-tracing packages: 2D and 3D points, dot/cross/det
products, distance, and the interior-containment predicates used to test
whether a source or receiver lies inside a mesh cell.

It carries no mesh or travel-time knowledge of its own.
*/
package geometry

import "math"

// Tol is the default coincidence tolerance used when comparing points for
// equality (mesh-vertex snapping, source/receiver coincidence tests).
const Tol = 1e-9

// Point2 is a point or vector in the (x,z) plane used by the 2D triangular
// mesh. Coordinates are stored densely so a Point2 can be copied by value.
type Point2 struct {
	X [2]float64
}

// NewPoint2 builds a Point2 from its two coordinates.
func NewPoint2(x, z float64) Point2 {
	return Point2{X: [2]float64{x, z}}
}

// Minus returns p - q.
func (p Point2) Minus(q Point2) Point2 {
	return Point2{X: [2]float64{p.X[0] - q.X[0], p.X[1] - q.X[1]}}
}

// Plus returns p + q.
func (p Point2) Plus(q Point2) Point2 {
	return Point2{X: [2]float64{p.X[0] + q.X[0], p.X[1] + q.X[1]}}
}

// Scale returns p scaled by s.
func (p Point2) Scale(s float64) Point2 {
	return Point2{X: [2]float64{p.X[0] * s, p.X[1] * s}}
}

// Dot returns the dot product p . q.
func (p Point2) Dot(q Point2) float64 {
	return p.X[0]*q.X[0] + p.X[1]*q.X[1]
}

// Cross returns the scalar z-component of the 3D cross product of p and q
// treated as vectors in the plane: p.x*q.z - p.z*q.x.
func (p Point2) Cross(q Point2) float64 {
	return p.X[0]*q.X[1] - p.X[1]*q.X[0]
}

// Norm returns the Euclidean length of p as a vector.
func (p Point2) Norm() float64 {
	return math.Sqrt(p.Dot(p))
}

// Normalize returns p scaled to unit length. The zero vector is returned
// unchanged.
func (p Point2) Normalize() Point2 {
	n := p.Norm()
	if n == 0 {
		return p
	}
	return p.Scale(1 / n)
}

// Distance returns the Euclidean distance between p and q.
func (p Point2) Distance(q Point2) float64 {
	return p.Minus(q).Norm()
}

// ManhattanDistance returns the L1 distance between p and q, used by the
// Fast Sweeping driver's order=1 reference-point metric.
func (p Point2) ManhattanDistance(q Point2) float64 {
	return math.Abs(p.X[0]-q.X[0]) + math.Abs(p.X[1]-q.X[1])
}

// Equal reports whether p and q coincide within tol.
func (p Point2) Equal(q Point2, tol float64) bool {
	return p.Distance(q) <= tol
}

// Det2 is the signed area (times 2) of the triangle (a,b,c):
// positive when a,b,c are wound counter-clockwise.
func Det2(a, b, c Point2) float64 {
	return b.Minus(a).Cross(c.Minus(a))
}

// Point3 is a point or vector in (x,y,z) used by the 3D tetrahedral mesh.
type Point3 struct {
	X [3]float64
}

// NewPoint3 builds a Point3 from its three coordinates.
func NewPoint3(x, y, z float64) Point3 {
	return Point3{X: [3]float64{x, y, z}}
}

func (p Point3) Minus(q Point3) Point3 {
	return Point3{X: [3]float64{p.X[0] - q.X[0], p.X[1] - q.X[1], p.X[2] - q.X[2]}}
}

func (p Point3) Plus(q Point3) Point3 {
	return Point3{X: [3]float64{p.X[0] + q.X[0], p.X[1] + q.X[1], p.X[2] + q.X[2]}}
}

func (p Point3) Scale(s float64) Point3 {
	return Point3{X: [3]float64{p.X[0] * s, p.X[1] * s, p.X[2] * s}}
}

func (p Point3) Dot(q Point3) float64 {
	return p.X[0]*q.X[0] + p.X[1]*q.X[1] + p.X[2]*q.X[2]
}

// Cross returns the 3D cross product p x q.
func (p Point3) Cross(q Point3) Point3 {
	return Point3{X: [3]float64{
		p.X[1]*q.X[2] - p.X[2]*q.X[1],
		p.X[2]*q.X[0] - p.X[0]*q.X[2],
		p.X[0]*q.X[1] - p.X[1]*q.X[0],
	}}
}

func (p Point3) Norm() float64 {
	return math.Sqrt(p.Dot(p))
}

func (p Point3) Normalize() Point3 {
	n := p.Norm()
	if n == 0 {
		return p
	}
	return p.Scale(1 / n)
}

func (p Point3) Distance(q Point3) float64 {
	return p.Minus(q).Norm()
}

func (p Point3) ManhattanDistance(q Point3) float64 {
	return math.Abs(p.X[0]-q.X[0]) + math.Abs(p.X[1]-q.X[1]) + math.Abs(p.X[2]-q.X[2])
}

func (p Point3) Equal(q Point3, tol float64) bool {
	return p.Distance(q) <= tol
}

// Det3 is six times the signed volume of the tetrahedron (a,b,c,d).
func Det3(a, b, c, d Point3) float64 {
	u := b.Minus(a)
	v := c.Minus(a)
	w := d.Minus(a)
	return u.Dot(v.Cross(w))
}
