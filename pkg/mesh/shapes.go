package mesh

import (
	"github.com/chewxy/math32"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/Faultbox/procmesh/pkg/math"
)

// FanUV controls the texture coordinates of Fan. Scale multiplies the
// distance from the center and Angle rotates the whole mapping.
type FanUV struct {
	Scale float32
	Angle float32
}

// Rect returns a w x h rectangle in the XY plane with its corner at the
// origin. UV equals the position.
func Rect[T Index](w, h float32) *Mesh[T] {
	return Build(
		[]math.Vec3{{0, 0, 0}, {w, 0, 0}, {w, h, 0}, {0, h, 0}},
		[]T{0, 1, 2, 0, 2, 3},
		[][2]float32{{0, 0}, {w, 0}, {w, h}, {0, h}},
	)
}

// RectCentered returns a w x h rectangle centered on the origin.
func RectCentered[T Index](w, h float32) *Mesh[T] {
	x, y := w*0.5, h*0.5
	return Build(
		[]math.Vec3{{-x, -y, 0}, {x, -y, 0}, {x, y, 0}, {-x, y, 0}},
		[]T{0, 1, 2, 0, 2, 3},
		[][2]float32{{0, 0}, {w, 0}, {w, h}, {0, h}},
	)
}

// TriangleShape returns the single triangle a, b, c.
func TriangleShape[T Index](a, b, c math.Vec3) *Mesh[T] {
	return Build(
		[]math.Vec3{a, b, c},
		[]T{0, 1, 2},
		[][2]float32{{0, 0}, {1, 0}, {0.5, 1}},
	)
}

// Fan triangulates points as a fan around the first one. Repeated points
// and trivial back-and-forth hops are removed first; if fewer than three
// points remain the result is an empty mesh. With uv set, texture
// coordinates follow the angle between consecutive spokes.
func Fan[T Index](points []math.Vec3, uv *FanUV) *Mesh[T] {
	points = simplifyOutline(points)
	if len(points) < 3 {
		return New[T]()
	}

	indices := make([]T, 0, 3*(len(points)-2))
	for i := 1; i < len(points)-1; i++ {
		indices = append(indices, 0, NewIndex[T](i), NewIndex[T](i+1))
	}

	var coords [][2]float32
	if uv != nil {
		coords = fanUV(points, *uv)
	}
	return Build(points, indices, coords)
}

// Polygon returns a regular polygon with the given circumradius centered on
// the origin.
func Polygon[T Index](radius float32, sides int) *Mesh[T] {
	return Fan[T](outline(sdf.Nagon(sides, float64(radius))), &FanUV{Scale: 1})
}

// RoundedRect returns a w x h rectangle centered on the origin whose corners
// are rounded with radius r using facets segments each.
func RoundedRect[T Index](w, h, r float32, facets int) *Mesh[T] {
	x, y := float64(w)/2, float64(h)/2
	p := sdf.NewPolygon()
	p.Add(-x, -y).Smooth(float64(r), facets)
	p.Add(x, -y).Smooth(float64(r), facets)
	p.Add(x, y).Smooth(float64(r), facets)
	p.Add(-x, y).Smooth(float64(r), facets)
	p.Close()
	return Fan[T](outline(p.Vertices()), &FanUV{Scale: 1})
}

func outline(vs []v2.Vec) []math.Vec3 {
	points := make([]math.Vec3, len(vs))
	for i, v := range vs {
		points[i] = math.V3(float32(v.X), float32(v.Y), 0)
	}
	return points
}

// simplifyOutline drops points equal to their predecessor, points that the
// outline immediately returns from, and closing points that repeat the
// start. Fewer than three survivors yield nil.
func simplifyOutline(in []math.Vec3) []math.Vec3 {
	const eps = 0.00001
	if len(in) == 0 {
		return nil
	}

	out := make([]math.Vec3, 0, len(in))
	out = append(out, in[0])
	for i := 1; i < len(in); i++ {
		last := out[len(out)-1]
		if in[i].Distance(last) < eps {
			continue
		}
		if i < len(in)-1 && in[i+1].Distance(last) < eps {
			continue
		}
		out = append(out, in[i])
	}

	for len(out) > 2 {
		last := out[len(out)-1]
		if out[0].Distance(last) < eps {
			out = out[:len(out)-1]
			continue
		}
		if out[1].Distance(last) < eps {
			out = out[:len(out)-2]
			continue
		}
		break
	}

	if len(out) <= 2 {
		return nil
	}
	return out
}

// fanUV lays the spokes out around the UV origin, advancing the angle by
// the law of cosines between consecutive spokes.
func fanUV(points []math.Vec3, opt FanUV) [][2]float32 {
	uv := make([][2]float32, 0, len(points))
	uv = append(uv, [2]float32{0, 0})

	alpha := opt.Angle
	l := points[1].Length()
	uv = append(uv, [2]float32{math32.Cos(alpha) * opt.Scale * l, math32.Sin(alpha) * opt.Scale * l})
	for i := 2; i < len(points); i++ {
		a := points[i-1].Length()
		b := points[i].Length()
		c := points[i].Sub(points[i-1]).Length()
		if a > 0 && b > 0 {
			cos := (a*a + b*b - c*c) / (2 * a * b)
			alpha += math32.Acos(max(-1, min(1, cos)))
		}
		uv = append(uv, [2]float32{math32.Cos(alpha) * opt.Scale * b, math32.Sin(alpha) * opt.Scale * b})
	}
	return uv
}
