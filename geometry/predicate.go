package geometry

// TriangleInterior implements the barycentric triangle-interior predicate
// from the glossary: solve p = A + a*(B-A) + b*(C-A) and accept when
// (a >= 0) && (b >= 0) && (a+b <= 1), each relaxed by tol to admit points
// that fall exactly on an edge or vertex.
func TriangleInterior(p, a, b, c Point2, tol float64) (inside bool, bary [3]float64) {
	v0 := b.Minus(a)
	v1 := c.Minus(a)
	v2 := p.Minus(a)

	d00 := v0.Dot(v0)
	d01 := v0.Dot(v1)
	d11 := v1.Dot(v1)
	d20 := v2.Dot(v0)
	d21 := v2.Dot(v1)

	denom := d00*d11 - d01*d01
	if denom == 0 {
		return false, bary
	}
	beta := (d11*d20 - d01*d21) / denom
	gamma := (d00*d21 - d01*d20) / denom
	alpha := 1 - beta - gamma

	bary = [3]float64{alpha, beta, gamma}
	inside = alpha >= -tol && beta >= -tol && gamma >= -tol
	return inside, bary
}

// TetrahedronInterior is the 3D analogue of TriangleInterior: it solves for
// the barycentric coordinates of p with respect to the tetrahedron
// (a,b,c,d) and accepts when all four are within tol of [0,1].
func TetrahedronInterior(p, a, b, c, d Point3, tol float64) (inside bool, bary [4]float64) {
	vTotal := Det3(a, b, c, d)
	if vTotal == 0 {
		return false, bary
	}
	bary[0] = Det3(p, b, c, d) / vTotal
	bary[1] = Det3(a, p, c, d) / vTotal
	bary[2] = Det3(a, b, p, d) / vTotal
	bary[3] = Det3(a, b, c, p) / vTotal

	inside = true
	for _, w := range bary {
		if w < -tol {
			inside = false
			break
		}
	}
	return inside, bary
}

// TriangleInterior3 is TriangleInterior's 3D analogue for a point already
// known to lie in the plane of (a,b,c): the barycentric solve only uses
// dot products of edge vectors, so the same two-equation system applies
// unchanged to points and edges in 3-space.
func TriangleInterior3(p, a, b, c Point3, tol float64) (inside bool, bary [3]float64) {
	v0 := b.Minus(a)
	v1 := c.Minus(a)
	v2 := p.Minus(a)

	d00 := v0.Dot(v0)
	d01 := v0.Dot(v1)
	d11 := v1.Dot(v1)
	d20 := v2.Dot(v0)
	d21 := v2.Dot(v1)

	denom := d00*d11 - d01*d01
	if denom == 0 {
		return false, bary
	}
	beta := (d11*d20 - d01*d21) / denom
	gamma := (d00*d21 - d01*d20) / denom
	alpha := 1 - beta - gamma

	bary = [3]float64{alpha, beta, gamma}
	inside = alpha >= -tol && beta >= -tol && gamma >= -tol
	return inside, bary
}

// RayPlaneIntersection finds the parametric position t where the ray
// p0 + t*d meets the plane through (a,b,c), returning the point and t. ok
// is false when d is parallel to the plane.
func RayPlaneIntersection(p0, d, a, b, c Point3, tol float64) (pt Point3, t float64, ok bool) {
	n := b.Minus(a).Cross(c.Minus(a))
	denom := d.Dot(n)
	if denom > -tol && denom < tol {
		return pt, 0, false
	}
	t = a.Minus(p0).Dot(n) / denom
	pt = p0.Plus(d.Scale(t))
	return pt, t, true
}

// SegmentIntersection finds the intersection of the infinite line through
// (p0,p1) with the infinite line through (q0,q1), returning the point and
// the parametric position t along p0->p1 and u along q0->q1. ok is false
// when the segments are parallel (denom ~ 0).
func SegmentIntersection(p0, p1, q0, q1 Point2, tol float64) (pt Point2, t, u float64, ok bool) {
	d1 := p1.Minus(p0)
	d2 := q1.Minus(q0)
	denom := d1.Cross(d2)
	if denom > -tol && denom < tol {
		return pt, 0, 0, false
	}
	diff := q0.Minus(p0)
	t = diff.Cross(d2) / denom
	u = diff.Cross(d1) / denom
	pt = p0.Plus(d1.Scale(t))
	return pt, t, u, true
}
