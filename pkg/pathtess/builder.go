// Package pathtess builds 2D paths under an affine transform stack and
// tessellates them into triangles that can be imported into a mesh.
package pathtess

import (
	"fmt"

	"github.com/chewxy/math32"
	"golang.org/x/image/math/f32"
	"honnef.co/go/curve"

	"github.com/Faultbox/procmesh/pkg/math"
)

// Winding is the orientation of the closed shapes added by AddRectangle,
// AddCircle and AddEllipse.
type Winding int

const (
	// Positive is counter-clockwise with Y up.
	Positive Winding = iota
	Negative
)

func (w Winding) String() string {
	if w == Negative {
		return "negative"
	}
	return "positive"
}

// Subpath is a flattened polyline. Closed subpaths do not repeat their
// first point.
type Subpath struct {
	Points []math.Vec2
	Closed bool
}

// Path is the output of a Builder.
type Path struct {
	Subpaths []Subpath
}

// identity is the f32.Aff3 layout [a b c d e f] mapping (x, y) to
// (a*x + b*y + c, d*x + e*y + f).
var identity = f32.Aff3{1, 0, 0, 0, 1, 0}

// Builder records subpaths. Every point is mapped through the current
// transform when it is added; curves are flattened with the builder's
// tolerance at the same time. Methods return the builder for chaining.
type Builder struct {
	tolerance float32
	transform f32.Aff3
	stack     []f32.Aff3

	path    Path
	current *Subpath
}

// NewBuilder returns a builder that flattens curves so no point of the
// polyline is farther than tolerance from the curve.
func NewBuilder(tolerance float32) *Builder {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	return &Builder{tolerance: tolerance, transform: identity}
}

// DefaultTolerance is the flattening tolerance used for non-positive input.
const DefaultTolerance = 0.01

// Push saves the current transform.
func (b *Builder) Push() *Builder {
	b.stack = append(b.stack, b.transform)
	return b
}

// Pop restores the last saved transform. It panics on an empty stack.
func (b *Builder) Pop() *Builder {
	if len(b.stack) == 0 {
		panic("pathtess: Pop on empty transform stack")
	}
	b.transform = b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	return b
}

// Transform applies t before the current transform.
func (b *Builder) Transform(t f32.Aff3) *Builder {
	b.transform = mul(b.transform, t)
	return b
}

// SetTransform replaces the current transform.
func (b *Builder) SetTransform(t f32.Aff3) *Builder {
	b.transform = t
	return b
}

// Rotate applies a rotation by angle radians to subsequent points.
func (b *Builder) Rotate(angle float32) *Builder {
	s, c := math32.Sincos(angle)
	return b.Transform(f32.Aff3{c, -s, 0, s, c, 0})
}

// Translate applies a translation to subsequent points.
func (b *Builder) Translate(t math.Vec2) *Builder {
	return b.Transform(f32.Aff3{1, 0, t.X, 0, 1, t.Y})
}

// Scale applies a per-axis scale to subsequent points.
func (b *Builder) Scale(s math.Vec2) *Builder {
	return b.Transform(f32.Aff3{s.X, 0, 0, 0, s.Y, 0})
}

// ScaleUniform scales both axes by s.
func (b *Builder) ScaleUniform(s float32) *Builder {
	return b.Scale(math.V2(s, s))
}

// Begin starts a subpath at p. A subpath must not be in progress.
func (b *Builder) Begin(p math.Vec2) *Builder {
	if b.current != nil {
		panic("pathtess: Begin while a subpath is in progress")
	}
	b.current = &Subpath{Points: []math.Vec2{b.apply(p)}}
	return b
}

// BeginHere starts a subpath at the origin of the current transform.
func (b *Builder) BeginHere() *Builder {
	return b.Begin(math.Vec2{})
}

// BeginTransPush saves the transform, translates by t and begins a subpath
// at the new origin. Pair it with ClosePop or EndPop.
func (b *Builder) BeginTransPush(t math.Vec2) *Builder {
	return b.Push().Translate(t).BeginHere()
}

// End finishes the current subpath, closing it when close is set.
func (b *Builder) End(close bool) *Builder {
	sp := b.mustCurrent("End")
	sp.Closed = close
	if close && len(sp.Points) > 1 && sp.Points[0] == sp.Points[len(sp.Points)-1] {
		sp.Points = sp.Points[:len(sp.Points)-1]
	}
	b.path.Subpaths = append(b.path.Subpaths, *sp)
	b.current = nil
	return b
}

// Close finishes and closes the current subpath.
func (b *Builder) Close() *Builder {
	return b.End(true)
}

// ClosePop closes the current subpath and restores the saved transform.
func (b *Builder) ClosePop() *Builder {
	return b.Close().Pop()
}

// EndPop ends the current subpath and restores the saved transform.
func (b *Builder) EndPop(close bool) *Builder {
	return b.End(close).Pop()
}

// LineTo adds a straight segment.
func (b *Builder) LineTo(p math.Vec2) *Builder {
	sp := b.mustCurrent("LineTo")
	sp.Points = append(sp.Points, b.apply(p))
	return b
}

// QuadraticBezierTo adds a quadratic curve through ctrl to p.
func (b *Builder) QuadraticBezierTo(ctrl, p math.Vec2) *Builder {
	sp := b.mustCurrent("QuadraticBezierTo")
	from := sp.Points[len(sp.Points)-1]
	sp.Points = flattenSegment(sp.Points, from, curve.QuadTo(toPoint(b.apply(ctrl)), toPoint(b.apply(p))), b.tolerance)
	return b
}

// CubicBezierTo adds a cubic curve through ctrl1 and ctrl2 to p.
func (b *Builder) CubicBezierTo(ctrl1, ctrl2, p math.Vec2) *Builder {
	sp := b.mustCurrent("CubicBezierTo")
	from := sp.Points[len(sp.Points)-1]
	el := curve.CubicTo(toPoint(b.apply(ctrl1)), toPoint(b.apply(ctrl2)), toPoint(b.apply(p)))
	sp.Points = flattenSegment(sp.Points, from, el, b.tolerance)
	return b
}

// AddRectangle adds a closed rectangle spanning lo and hi. All four
// corners go through the transform, so rotated rectangles stay rectangles.
func (b *Builder) AddRectangle(lo, hi math.Vec2, w Winding) *Builder {
	corners := []math.Vec2{lo, {X: hi.X, Y: lo.Y}, hi, {X: lo.X, Y: hi.Y}}
	for i, p := range corners {
		corners[i] = b.apply(p)
	}
	return b.addClosed(corners, w)
}

// AddCircle adds a closed circle.
func (b *Builder) AddCircle(center math.Vec2, radius float32, w Winding) *Builder {
	return b.AddEllipse(center, math.V2(radius, radius), 0, w)
}

// AddEllipse adds a closed ellipse with the given radii whose X axis is
// rotated by xRotation radians. Half of the tolerance goes to the cubic
// arc approximation and half to flattening it.
func (b *Builder) AddEllipse(center, radii math.Vec2, xRotation float32, w Winding) *Builder {
	half := b.tolerance / 2
	scale := b.scaleFactor()
	if scale <= 0 {
		scale = 1
	}
	e := curve.NewEllipse(toPoint(center), curve.Vec(float64(radii.X), float64(radii.Y)), float64(xRotation))
	outline := e.Path(float64(half / scale)).Transform(b.affine())

	var points []math.Vec2
	for _, r := range rings(outline.Elements(), half) {
		points = append(points, r...)
	}
	if n := len(points); n > 1 && points[n-1].Distance(points[0]) <= half {
		points = points[:n-1]
	}
	return b.addClosed(points, w)
}

// Winding returns the orientation of the last finished subpath by its
// signed area.
func (b *Builder) Winding() Winding {
	if len(b.path.Subpaths) == 0 {
		return Positive
	}
	if signedArea(b.path.Subpaths[len(b.path.Subpaths)-1].Points) < 0 {
		return Negative
	}
	return Positive
}

// Build finishes an open subpath and returns the path. The builder can be
// reused afterwards and starts empty.
func (b *Builder) Build() *Path {
	if b.current != nil {
		b.End(false)
	}
	p := b.path
	b.path = Path{}
	return &p
}

// addClosed records points that are already transformed.
func (b *Builder) addClosed(points []math.Vec2, w Winding) *Builder {
	if b.current != nil {
		panic("pathtess: closed shape added while a subpath is in progress")
	}
	sp := Subpath{Points: points, Closed: true}
	if w == Negative {
		reverse(sp.Points)
	}
	b.path.Subpaths = append(b.path.Subpaths, sp)
	return b
}

func (b *Builder) mustCurrent(op string) *Subpath {
	if b.current == nil {
		panic(fmt.Sprintf("pathtess: %s without Begin", op))
	}
	return b.current
}

func (b *Builder) apply(p math.Vec2) math.Vec2 {
	t := b.transform
	return math.V2(t[0]*p.X+t[1]*p.Y+t[2], t[3]*p.X+t[4]*p.Y+t[5])
}

// scaleFactor is the largest stretch of the current transform.
func (b *Builder) scaleFactor() float32 {
	t := b.transform
	return max(math32.Hypot(t[0], t[3]), math32.Hypot(t[1], t[4]))
}

// mul returns a∘b: b is applied first.
func mul(a, b f32.Aff3) f32.Aff3 {
	return f32.Aff3{
		a[0]*b[0] + a[1]*b[3], a[0]*b[1] + a[1]*b[4], a[0]*b[2] + a[1]*b[5] + a[2],
		a[3]*b[0] + a[4]*b[3], a[3]*b[1] + a[4]*b[4], a[3]*b[2] + a[4]*b[5] + a[5],
	}
}

func signedArea(points []math.Vec2) float32 {
	var a float32
	for i, p := range points {
		q := points[(i+1)%len(points)]
		a += p.Cross(q)
	}
	return a / 2
}

func reverse(points []math.Vec2) {
	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}
}
