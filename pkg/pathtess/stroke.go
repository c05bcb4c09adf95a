package pathtess

import (
	"errors"

	"honnef.co/go/curve"

	"github.com/Faultbox/procmesh/pkg/math"
)

// miterLimit caps the miter length at this multiple of the half width.
const miterLimit = 4

// Join is the shape drawn where two stroked segments meet.
type Join int

const (
	MiterJoin Join = iota
	BevelJoin
	RoundJoin
)

// StrokeOptions configures Stroke.
type StrokeOptions struct {
	Width     float32
	Tolerance float32
	Join      Join
}

func (o StrokeOptions) style() curve.Stroke {
	s := curve.Stroke{
		Width:      float64(o.Width),
		Join:       curve.MiterJoin,
		MiterLimit: miterLimit,
		StartCap:   curve.ButtCap,
		EndCap:     curve.ButtCap,
	}
	switch o.Join {
	case BevelJoin:
		s.Join = curve.BevelJoin
	case RoundJoin:
		s.Join = curve.RoundJoin
	}
	return s
}

// Stroke outlines every subpath with a band of the given width and butt
// caps, then fills the outline. A closed subpath yields an outer and an
// inner ring, and the inner one is cut out as a hole. Where the outline
// retraces itself, as on a path that reverses direction, the band is
// covered twice.
func Stroke(path *Path, opts StrokeOptions) (*Geometry, error) {
	tol := opts.Tolerance
	if tol <= 0 {
		tol = DefaultTolerance
	}
	if opts.Width <= 0 {
		return nil, ErrEmptyPath
	}

	g := &Geometry{}
	style := opts.style()
	for _, sp := range path.Subpaths {
		points := dedupe(sp.Points, tol)
		if sp.Closed {
			points = cleanRing(points, tol)
		}
		if len(points) < 2 || (sp.Closed && len(points) < 3) {
			continue
		}
		outline := curve.StrokePath(bezPath(points, sp.Closed).Elements(), style, curve.StrokeOpts{}, float64(tol))

		var parts [][]math.Vec2
		for _, r := range rings(outline, tol) {
			for _, part := range splitRevisits(r) {
				parts = append(parts, cutLoops(part))
			}
		}
		sub, err := fillRings(parts, tol)
		if errors.Is(err, ErrEmptyPath) {
			continue
		}
		if err != nil {
			return nil, err
		}
		g.merge(sub)
	}
	if len(g.Indices) == 0 {
		return nil, ErrEmptyPath
	}
	return g, nil
}

func (g *Geometry) merge(o *Geometry) {
	base := uint32(len(g.Points))
	g.Points = append(g.Points, o.Points...)
	for _, i := range o.Indices {
		g.Indices = append(g.Indices, base+i)
	}
}

// splitRevisits cuts a ring into simple loops wherever it passes through
// the same point twice.
func splitRevisits(r []math.Vec2) [][]math.Vec2 {
	n := len(r)
	if n > 1 && r[0] == r[n-1] {
		r = r[:n-1]
	}
	for i := range r {
		for j := i + 1; j < len(r); j++ {
			if r[i] != r[j] {
				continue
			}
			inner := append([]math.Vec2(nil), r[i:j]...)
			outer := append(append([]math.Vec2(nil), r[:i]...), r[j:]...)
			return append(splitRevisits(inner), splitRevisits(outer)...)
		}
	}
	return [][]math.Vec2{r}
}

// cutLoops removes the small loops left where the inner side of a join
// crosses the next offset segment: when segment i crosses segment i+2, the
// point between them is replaced by the crossing.
func cutLoops(r []math.Vec2) []math.Vec2 {
	for changed := true; changed; {
		changed = false
		for i := 0; i < len(r) && len(r) > 4; i++ {
			n := len(r)
			x, ok := crossing(r[i], r[(i+1)%n], r[(i+2)%n], r[(i+3)%n])
			if !ok {
				continue
			}
			r[(i+1)%n] = x
			j := (i + 2) % n
			r = append(r[:j], r[j+1:]...)
			changed = true
		}
	}
	return r
}

// crossing returns where segments ab and cd cross in their interiors.
func crossing(a, b, c, d math.Vec2) (math.Vec2, bool) {
	ab, cd := b.Sub(a), d.Sub(c)
	den := ab.Cross(cd)
	if den == 0 {
		return math.Vec2{}, false
	}
	ac := c.Sub(a)
	t := ac.Cross(cd) / den
	u := ac.Cross(ab) / den
	if t <= 0 || t >= 1 || u <= 0 || u >= 1 {
		return math.Vec2{}, false
	}
	return a.Add(ab.Scale(t)), true
}
