package pathtess

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/chewxy/math32"
	"github.com/rclancey/earcut"

	"github.com/Faultbox/procmesh/pkg/math"
)

// ErrEmptyPath is returned when a path yields no triangles.
var ErrEmptyPath = errors.New("pathtess: path has no area")

// Geometry is tessellator output: 2D points and triangle-list indices.
type Geometry struct {
	Points  []math.Vec2
	Indices []uint32
}

func (g *Geometry) push(p math.Vec2) uint32 {
	g.Points = append(g.Points, p)
	return uint32(len(g.Points) - 1)
}

// FillOptions configures Fill.
type FillOptions struct {
	// Tolerance is the distance below which points merge and rings count
	// as empty.
	Tolerance float32
}

// Fill triangulates the interior of the path. Every subpath, open ones
// included, is a ring. A ring nested in a ring of the opposite orientation
// is a hole of it, unless that ring is itself a hole. Rings of the same
// orientation are filled independently and may overlap. Output triangles
// are counter-clockwise.
func Fill(path *Path, opts FillOptions) (*Geometry, error) {
	tol := opts.Tolerance
	if tol <= 0 {
		tol = DefaultTolerance
	}

	var points [][]math.Vec2
	for _, sp := range path.Subpaths {
		points = append(points, sp.Points)
	}
	return fillRings(points, tol)
}

type ring struct {
	points []math.Vec2
	area   float32
	parent int
	hole   bool
	holes  []int
}

func fillRings(polylines [][]math.Vec2, tol float32) (*Geometry, error) {
	var rs []*ring
	for _, pl := range polylines {
		pts := cleanRing(pl, tol)
		if len(pts) < 3 {
			continue
		}
		a := signedArea(pts)
		if math32.Abs(a) <= tol*tol {
			continue
		}
		rs = append(rs, &ring{points: pts, area: a, parent: -1})
	}
	slices.SortStableFunc(rs, func(a, b *ring) int {
		return cmp.Compare(math32.Abs(b.area), math32.Abs(a.area))
	})
	nest(rs)

	g := &Geometry{}
	for _, r := range rs {
		if r.hole {
			continue
		}
		group := [][]math.Vec2{r.points}
		for _, h := range r.holes {
			group = append(group, rs[h].points)
		}
		if err := triangulate(g, group); err != nil {
			return nil, err
		}
	}
	if len(g.Indices) == 0 {
		return nil, ErrEmptyPath
	}
	return g, nil
}

// nest links every ring to the smallest larger ring containing its first
// point. rs must be sorted by decreasing absolute area.
func nest(rs []*ring) {
	for i, r := range rs {
		pt := toPoint(r.points[0])
		for j := i - 1; j >= 0; j-- {
			if bezPath(rs[j].points, true).Winding(pt) != 0 {
				r.parent = j
				break
			}
		}
		if r.parent < 0 {
			continue
		}
		p := rs[r.parent]
		if !p.hole && (p.area > 0) != (r.area > 0) {
			r.hole = true
			p.holes = append(p.holes, i)
		}
	}
}

// triangulate ear-cuts an outer ring with its holes and appends the
// counter-clockwise triangles to g. Points no triangle uses are left out.
func triangulate(g *Geometry, group [][]math.Vec2) error {
	var (
		coords []float64
		points []math.Vec2
		holes  []int
	)
	for i, r := range group {
		if i > 0 {
			holes = append(holes, len(points))
		}
		for _, p := range r {
			coords = append(coords, float64(p.X), float64(p.Y))
			points = append(points, p)
		}
	}

	tris, err := earcut.Earcut(coords, holes, 2)
	if err != nil {
		return fmt.Errorf("pathtess: triangulate %d points: %w", len(points), err)
	}

	index := make(map[int]uint32, len(points))
	at := func(i int) uint32 {
		if v, ok := index[i]; ok {
			return v
		}
		v := g.push(points[i])
		index[i] = v
		return v
	}
	for k := 0; k+2 < len(tris); k += 3 {
		a, b, c := tris[k], tris[k+1], tris[k+2]
		cross := points[b].Sub(points[a]).Cross(points[c].Sub(points[a]))
		if cross == 0 {
			continue
		}
		if cross < 0 {
			b, c = c, b
		}
		g.Indices = append(g.Indices, at(a), at(b), at(c))
	}
	return nil
}

// cleanRing drops points within tol of their predecessor, including a
// closing point equal to the first.
func cleanRing(points []math.Vec2, tol float32) []math.Vec2 {
	out := dedupe(points, tol)
	for len(out) > 1 && out[0].Distance(out[len(out)-1]) <= tol {
		out = out[:len(out)-1]
	}
	return out
}

func dedupe(points []math.Vec2, tol float32) []math.Vec2 {
	out := make([]math.Vec2, 0, len(points))
	for _, p := range points {
		if len(out) > 0 && p.Distance(out[len(out)-1]) <= tol {
			continue
		}
		out = append(out, p)
	}
	return out
}
