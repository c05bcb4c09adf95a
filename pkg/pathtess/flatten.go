package pathtess

import (
	"iter"
	"slices"

	"honnef.co/go/curve"

	"github.com/Faultbox/procmesh/pkg/math"
)

func toPoint(p math.Vec2) curve.Point {
	return curve.Pt(float64(p.X), float64(p.Y))
}

func fromPoint(p curve.Point) math.Vec2 {
	return math.V2(float32(p.X), float32(p.Y))
}

// affine converts the builder's f32.Aff3 layout to curve's column order.
func (b *Builder) affine() curve.Affine {
	t := b.transform
	return curve.Affine{
		N0: float64(t[0]), N1: float64(t[3]),
		N2: float64(t[1]), N3: float64(t[4]),
		N4: float64(t[2]), N5: float64(t[5]),
	}
}

// flattenSegment appends the polyline approximating el when drawn from
// from, excluding from itself.
func flattenSegment(out []math.Vec2, from math.Vec2, el curve.PathElement, tol float32) []math.Vec2 {
	seq := slices.Values([]curve.PathElement{curve.MoveTo(toPoint(from)), el})
	for line := range curve.Flatten(seq, float64(tol)) {
		if line.Kind == curve.LineToKind {
			out = append(out, fromPoint(line.P0))
		}
	}
	return out
}

// rings flattens elements into one polyline per subpath. A closing point
// equal to the start is kept; cleanRing removes it.
func rings(elements iter.Seq[curve.PathElement], tol float32) [][]math.Vec2 {
	var out [][]math.Vec2
	var current []math.Vec2
	for el := range curve.Flatten(elements, float64(tol)) {
		switch el.Kind {
		case curve.MoveToKind:
			if len(current) > 0 {
				out = append(out, current)
			}
			current = []math.Vec2{fromPoint(el.P0)}
		case curve.LineToKind:
			current = append(current, fromPoint(el.P0))
		case curve.ClosePathKind:
			if len(current) > 0 {
				out = append(out, current)
			}
			current = nil
		}
	}
	if len(current) > 0 {
		out = append(out, current)
	}
	return out
}

// bezPath records a polyline as a curve path.
func bezPath(points []math.Vec2, closed bool) curve.BezPath {
	var p curve.BezPath
	for i, pt := range points {
		if i == 0 {
			p.MoveTo(toPoint(pt))
		} else {
			p.LineTo(toPoint(pt))
		}
	}
	if closed {
		p.ClosePath()
	}
	return p
}
