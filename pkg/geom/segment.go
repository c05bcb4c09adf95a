package geom

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/procmesh/pkg/math"
)

// SegmentIntersection intersects segment a-b with segment c-d, both assumed
// to lie in a common plane. Segments whose direction cross product has a
// squared length below tol are treated as parallel and never intersect,
// collinear overlap included. The crossing is accepted when both parameters
// lie in [-tol2, 1+tol2]; a negative tol2 rejects crossings at endpoints.
func SegmentIntersection(a, b, c, d math.Vec3, tol, tol2 float32) (math.Vec3, bool) {
	r := b.Sub(a)
	s := d.Sub(c)
	rxs := r.Cross(s)
	denom := rxs.LengthSquared()
	if denom < tol {
		return math.Vec3{}, false
	}

	qp := c.Sub(a)
	t := qp.Cross(s).Dot(rxs) / denom
	u := qp.Cross(r).Dot(rxs) / denom

	if t < -tol2 || t > 1+tol2 || u < -tol2 || u > 1+tol2 {
		return math.Vec3{}, false
	}
	return a.Add(r.Scale(t)), true
}

// PointsCoplanar reports whether all points lie in the plane of the first
// three, measured as the parallelepiped volume. Fewer than four points are
// always coplanar.
func PointsCoplanar(points []math.Vec3, tol float32) bool {
	if len(points) < 4 {
		return true
	}
	baseA := points[1].Sub(points[0])
	baseB := points[2].Sub(points[0])
	for _, p := range points[3:] {
		if math32.Abs(baseA.Dot(baseB.Cross(p.Sub(points[0])))) > tol {
			return false
		}
	}
	return true
}
