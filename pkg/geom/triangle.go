// Package geom holds the tolerant triangle and segment tests used when
// repairing overlapping coplanar geometry.
package geom

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/procmesh/pkg/math"
)

// Winding is the result of comparing the orientation of two triangles.
type Winding int

const (
	// WindingIndeterminate means the planes are not parallel enough to compare.
	WindingIndeterminate Winding = iota
	// WindingSame means both normals point the same way.
	WindingSame
	// WindingOpposite means the normals point in opposite directions.
	WindingOpposite
)

// String implements fmt.Stringer.
func (w Winding) String() string {
	switch w {
	case WindingSame:
		return "same"
	case WindingOpposite:
		return "opposite"
	default:
		return "indeterminate"
	}
}

// Triangle is a view over three positions. Nothing about it is cached.
type Triangle struct {
	A, B, C math.Vec3
}

// Tri is shorthand for Triangle{a, b, c}.
func Tri(a, b, c math.Vec3) Triangle {
	return Triangle{A: a, B: b, C: c}
}

// Normal returns the unnormalized normal (b-a)x(c-a).
func (t Triangle) Normal() math.Vec3 {
	return t.B.Sub(t.A).Cross(t.C.Sub(t.A))
}

// UnitNormal returns the normalized normal, or zero for a degenerate triangle.
func (t Triangle) UnitNormal() math.Vec3 {
	return t.Normal().Normalize()
}

// Area returns the surface area.
func (t Triangle) Area() float32 {
	return 0.5 * t.Normal().Length()
}

// Centroid returns the average of the three corners.
func (t Triangle) Centroid() math.Vec3 {
	return t.A.Add(t.B).Add(t.C).Scale(1.0 / 3.0)
}

// Vertices returns the corners in order.
func (t Triangle) Vertices() [3]math.Vec3 {
	return [3]math.Vec3{t.A, t.B, t.C}
}

// IsDegenerate reports whether the normal is shorter than tol.
func (t Triangle) IsDegenerate(tol float32) bool {
	return t.Normal().Length() < tol
}

// SameWinding compares the orientation of two roughly coplanar triangles.
func (t Triangle) SameWinding(other Triangle, tol float32) Winding {
	d := t.UnitNormal().Dot(other.UnitNormal())
	switch {
	case math32.Abs(d-1) < tol:
		return WindingSame
	case math32.Abs(d+1) < tol:
		return WindingOpposite
	default:
		return WindingIndeterminate
	}
}

// ContainsPoint runs a barycentric test with tol slack on both weights and
// their sum, so points on the boundary count as inside. Degenerate triangles
// contain nothing.
func (t Triangle) ContainsPoint(p math.Vec3, tol float32) bool {
	v0 := t.C.Sub(t.A)
	v1 := t.B.Sub(t.A)
	v2 := p.Sub(t.A)

	dot00 := v0.Dot(v0)
	dot01 := v0.Dot(v1)
	dot02 := v0.Dot(v2)
	dot11 := v1.Dot(v1)
	dot12 := v1.Dot(v2)

	denom := dot00*dot11 - dot01*dot01
	if denom == 0 {
		return false
	}
	inv := 1 / denom
	u := (dot11*dot02 - dot01*dot12) * inv
	v := (dot00*dot12 - dot01*dot02) * inv

	return u >= -tol && v >= -tol && u+v <= 1+tol
}

// ContainsTriangle reports whether all corners of other are inside t.
func (t Triangle) ContainsTriangle(other Triangle, tol float32) bool {
	return t.ContainsPoint(other.A, tol) &&
		t.ContainsPoint(other.B, tol) &&
		t.ContainsPoint(other.C, tol)
}

// IsCoplanar reports whether the corners of other satisfy the plane
// equation n·x + d of t within tol. n is unnormalized, so tol scales with
// the size of t.
func (t Triangle) IsCoplanar(other Triangle, tol float32) bool {
	n := t.Normal()
	d := -n.Dot(t.A)
	for _, v := range other.Vertices() {
		if math32.Abs(n.Dot(v)+d) > tol {
			return false
		}
	}
	return true
}
