package mesh

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/Faultbox/procmesh/pkg/geom"
)

// configKind names the overlap pattern of a coplanar triangle pair.
type configKind int

const (
	// configNone: no crossing, or a single touching crossing.
	configNone configKind = iota
	// configTwoShared: both crossings lie on one edge of triangle1.
	configTwoShared
	// configTwoDistinct: the crossings lie on different edges of both.
	configTwoDistinct
	// configFourOuter: four crossings, no corner inside the other triangle.
	configFourOuter
	// configFourInterior: four crossings, a corner of triangle1 inside
	// triangle2 and none the other way round.
	configFourInterior
	// configFourBoth: four crossings, a corner of each inside the other.
	configFourBoth
	// configSixStar: two triangles forming a hexagram. Not handled.
	configSixStar
	// configUnhandled: three or five crossings.
	configUnhandled
)

func (k configKind) String() string {
	switch k {
	case configNone:
		return "none"
	case configTwoShared:
		return "two-shared"
	case configTwoDistinct:
		return "two-distinct"
	case configFourOuter:
		return "four-outer"
	case configFourInterior:
		return "four-interior"
	case configFourBoth:
		return "four-both"
	case configSixStar:
		return "six-star"
	default:
		return "unhandled"
	}
}

// configuration is a classified triangle pair. Mirrored cases are stored
// with the triangles and records already swapped, so recipes always see
// the pattern from triangle1's side.
type configuration struct {
	kind      configKind
	t1, t2    int
	inter     []edgeIntersection
	interior1 int
	interior2 int
}

// classify picks the configuration for a pair from its crossings.
func (m *Mesh[T]) classify(inter []edgeIntersection, t1, t2 int, tol float32) configuration {
	cfg := configuration{kind: configNone, t1: t1, t2: t2, inter: inter, interior1: -1, interior2: -1}

	switch len(inter) {
	case 0, 1:
		return cfg
	case 2:
		in1, in2 := inter[0], inter[1]
		switch {
		case in1.edge1 == in2.edge1 && in1.edge2 != in2.edge2:
			cfg.kind = configTwoShared
		case in1.edge2 == in2.edge2 && in1.edge1 != in2.edge1:
			cfg.kind = configTwoShared
			cfg.t1, cfg.t2 = t2, t1
			cfg.inter = []edgeIntersection{in2.swap(), in1.swap()}
		case in1.edge1 != in2.edge1 && in1.edge2 != in2.edge2:
			cfg.kind = configTwoDistinct
		default:
			panic(fmt.Sprintf("mesh: impossible crossing pair %+v %+v", in1, in2))
		}
		return cfg
	case 4:
		tri1, tri2 := m.TriangleAt(t1), m.TriangleAt(t2)
		cfg.interior1 = firstCornerInside(tri1, tri2, tol)
		cfg.interior2 = firstCornerInside(tri2, tri1, tol)
		switch {
		case cfg.interior1 < 0 && cfg.interior2 < 0:
			cfg.kind = configFourOuter
		case cfg.interior2 < 0:
			cfg.kind = configFourInterior
		case cfg.interior1 < 0:
			cfg.kind = configFourInterior
			cfg.t1, cfg.t2 = t2, t1
			cfg.interior1, cfg.interior2 = cfg.interior2, -1
			swapped := make([]edgeIntersection, len(inter))
			for i, e := range inter {
				swapped[i] = e.swap()
			}
			cfg.inter = swapped
		default:
			cfg.kind = configFourBoth
		}
		return cfg
	case 6:
		cfg.kind = configSixStar
		return cfg
	default:
		cfg.kind = configUnhandled
		return cfg
	}
}

// firstCornerInside returns the position of the first corner of a that
// lies inside b, or -1.
func firstCornerInside(a, b geom.Triangle, tol float32) int {
	for i, v := range a.Vertices() {
		if b.ContainsPoint(v, tol) {
			return i
		}
	}
	return -1
}

// slotWrite replaces the indices of one triangle slot.
type slotWrite[T Index] struct {
	slot int
	tri  [3]T
}

// rewrite is the replacement a recipe computes for a triangle pair. It is
// planned against the geometry before any slot changes and then applied in
// one go.
type rewrite[T Index] struct {
	overwrites []slotWrite[T]
	pushes     [][3]T
}

func (r *rewrite[T]) overwrite(slot int, a, b, c T) {
	r.overwrites = append(r.overwrites, slotWrite[T]{slot: slot, tri: [3]T{a, b, c}})
}

func (r *rewrite[T]) push(a, b, c T) {
	r.pushes = append(r.pushes, [3]T{a, b, c})
}

func (r *rewrite[T]) apply(in *Indices[T]) {
	for _, w := range r.overwrites {
		in.Overwrite(w.slot, w.tri[0], w.tri[1], w.tri[2])
	}
	for _, p := range r.pushes {
		in.Push(p[0], p[1], p[2])
	}
}

// resolve runs the recipe for cfg and reports whether the mesh changed.
func (m *Mesh[T]) resolve(cfg configuration, tol float32, log *zap.Logger) bool {
	var rw rewrite[T]
	switch cfg.kind {
	case configNone:
		return false
	case configSixStar:
		log.Debug("hexagram overlap left unresolved", zap.Int("triangle1", cfg.t1), zap.Int("triangle2", cfg.t2))
		return false
	case configUnhandled:
		log.Debug("unhandled crossing count",
			zap.Int("intersections", len(cfg.inter)), zap.Int("triangle1", cfg.t1), zap.Int("triangle2", cfg.t2))
		return false
	case configTwoShared:
		m.twoShared(&rw, cfg.inter[0], cfg.inter[1], cfg.t1, cfg.t2, tol)
	case configTwoDistinct:
		m.twoDistinct(&rw, cfg.inter[0], cfg.inter[1], cfg.t1, cfg.t2, tol)
	case configFourOuter:
		m.fourOuter(&rw, cfg.t1, cfg.inter)
	case configFourInterior:
		m.fourInterior(&rw, cfg.t1, cfg.inter)
	case configFourBoth:
		if !m.fourBoth(&rw, cfg.t1, cfg.t2, cfg.interior1, cfg.interior2, cfg.inter) {
			log.Debug("four-both overlap without wrap point left unresolved",
				zap.Int("triangle1", cfg.t1), zap.Int("triangle2", cfg.t2))
			return false
		}
	}
	rw.apply(&m.indices)

	log.Debug("coplanar overlap rewritten",
		zap.Stringer("config", cfg.kind),
		zap.Int("triangle1", cfg.t1),
		zap.Int("triangle2", cfg.t2),
		zap.Int("overwritten", len(rw.overwrites)),
		zap.Int("pushed", len(rw.pushes)))
	return true
}

// edgeOrderingFlip returns the edge that starts the crossing pair e1, e2 and
// whether the pair runs against the corner order.
func edgeOrderingFlip(e1, e2 int) (int, bool) {
	switch {
	case e1 == 0 && e2 == 2:
		return 0, true
	case e1 == 2 && e2 == 0:
		return 0, false
	default:
		return max(e1, e2), e1 > e2
	}
}

// twoShared handles two crossings on the same edge of t1. A tip of t2
// pokes through that edge.
//
//	         third
//	          /\
//	         /  \
//	        /inner\
//	       /  /\   \
//	left  /  /  \   \ right
//	     /--X----X---\
//	    new1/      \new2
//	       /--------\
//	   outer1      outer2
func (m *Mesh[T]) twoShared(rw *rewrite[T], in1, in2 edgeIntersection, t1, t2 int, tol float32) {
	edge1 := in1.edge1
	edge2, flip := edgeOrderingFlip(in1.edge2, in2.edge2)

	new2 := m.PushVertex(in1.point)
	new1 := m.PushVertex(in2.point)
	if flip {
		new1, new2 = new2, new1
	}

	left, right, third := m.indices.Triangle(t1, edge1)
	inner, outer1, outer2 := m.indices.Triangle(t2, edge2)

	if m.Triangle(left, right, third).SameWinding(m.Triangle(inner, right, third), tol) == geom.WindingOpposite {
		// The tip lies outside t1. Cut once; remaining overlap is handled
		// by later passes.
		rw.overwrite(t2, new1, new2, inner)
		if !m.TriangleHasPoint(t1, outer2, tol) {
			rw.push(new1, outer2, new2)
			rw.push(new1, outer1, outer2)
		} else if !m.TriangleHasPoint(t1, outer1, tol) {
			rw.push(new1, outer1, outer2)
		}
		return
	}

	rw.overwrite(t2, new2, new1, outer1)
	rw.push(outer1, outer2, new2)

	if m.TriangleHasPoint(t1, inner, tol) {
		return
	}

	rw.overwrite(t1, new2, right, inner)
	rw.push(inner, right, third)
	rw.push(inner, third, new1)
	rw.push(new1, third, left)
	rw.push(new1, new2, inner)
}

// twoDistinct handles two crossings on different edges of both triangles.
//
//	left2          right2
//	   \------------/
//	    \   tip1   /
//	     \   /\   /
//	  new1 X    X new2
//	     /   \/   \
//	    /   tip2   \
//	   /------------\
//	left1         right1
func (m *Mesh[T]) twoDistinct(rw *rewrite[T], in1, in2 edgeIntersection, t1, t2 int, tol float32) {
	edge1, flip1 := edgeOrderingFlip(in1.edge1, in2.edge1)
	edge2, flip2 := edgeOrderingFlip(in1.edge2, in2.edge2)

	new1 := m.PushVertex(in1.point)
	new2 := m.PushVertex(in2.point)
	if flip1 != flip2 {
		new1, new2 = new2, new1
	}

	tip1, right1, left1 := m.indices.Triangle(t1, edge1)
	tip2, left2, right2 := m.indices.Triangle(t2, edge2)

	// Opposite windings mean the pair is nested: keep only the side whose
	// tip lies inside the other triangle.
	if m.Triangle(new2, new1, tip2).SameWinding(m.Triangle(new1, new2, tip1), tol) == geom.WindingOpposite {
		if m.TriangleHasPoint(t1, tip2, tol) {
			if m.TriangleHasPoint(t2, tip1, tol) {
				panic(fmt.Sprintf("mesh: triangles %d and %d both hold the other's tip", t1, t2))
			}
			rw.overwrite(t1, tip1, new1, new2)
			rw.overwrite(t2, new2, new1, right2)
			rw.push(left2, new2, right2)
		} else {
			if !m.TriangleHasPoint(t2, tip1, tol) {
				panic(fmt.Sprintf("mesh: triangles %d and %d hold neither tip", t1, t2))
			}
			rw.overwrite(t2, tip2, new2, new1)
			rw.overwrite(t1, new1, new2, right1)
			rw.push(left1, new1, right1)
		}
		return
	}

	// Tip triangles are only drawn when they stick out of the other one.
	if !m.TriangleHasPoint(t1, tip2, tol) {
		rw.push(new2, new1, tip2)
	}
	if !m.TriangleHasPoint(t2, tip1, tol) {
		rw.push(new1, new2, tip1)
	}

	rw.overwrite(t2, new1, new2, left2)
	rw.push(new1, left2, right2)

	rw.overwrite(t1, new2, new1, right1)
	rw.push(new2, right1, left1)
}

// fourOuter handles four crossings with no corner of either triangle inside
// the other: the tip of t1 cuts across t2.
func (m *Mesh[T]) fourOuter(rw *rewrite[T], t1 int, records []edgeIntersection) {
	inter := sortRecords(records)

	// Rotate the record where both edge indices step by one to the front.
	for i := 0; i < 4; i++ {
		next := inter[(i+1)%4]
		if (inter[i].edge1+1)%3 == next.edge1 && inter[i].edge2 == (next.edge2+1)%3 {
			inter = rotateLeft(inter, i)
			break
		}
	}

	left1, tip1, right1 := m.indices.Triangle(t1, inter[0].edge1)
	n := m.pushRecordPoints(inter)

	if inter[0].edge1 != inter[2].edge2 {
		rw.overwrite(t1, n[1], n[3], tip1)
		rw.push(n[0], n[2], right1)
		rw.push(n[0], right1, left1)
	} else {
		rw.overwrite(t1, n[2], n[0], tip1)
		rw.push(n[3], n[1], right1)
		rw.push(n[3], right1, left1)
	}
}

// fourInterior handles four crossings where one corner of t1 lies inside
// the other triangle. Every edge of t1 is crossed, but only two edges of
// the other triangle are.
func (m *Mesh[T]) fourInterior(rw *rewrite[T], t1 int, records []edgeIntersection) {
	inter := sortRecords(records)
	if n := distinctEdges(inter, true); n != 3 {
		panic(fmt.Sprintf("mesh: expected crossings on 3 edges of triangle %d, got %d", t1, n))
	}
	if n := distinctEdges(inter, false); n != 2 {
		panic(fmt.Sprintf("mesh: expected crossings on 2 edges of the other triangle, got %d", n))
	}

	// Rotate the record where both edge indices change to the front.
	for i := 0; i < 4; i++ {
		next := inter[(i+1)%4]
		if inter[i].edge1 != next.edge1 && inter[i].edge2 != next.edge2 {
			inter = rotateLeft(inter, i)
			break
		}
	}

	left1, _, right1 := m.indices.Triangle(t1, inter[0].edge1)
	n := m.pushRecordPoints(inter)

	if inter[0].edge1 == inter[2].edge2 {
		rw.overwrite(t1, n[3], n[1], right1)
		rw.push(n[0], n[2], left1)
	} else {
		rw.overwrite(t1, n[2], n[1], right1)
		rw.push(n[0], n[3], left1)
	}
}

// fourBoth handles four crossings with one corner of each triangle inside
// the other. It reports false, planning nothing, when no pair of
// consecutive crossings wraps around the interior corners.
func (m *Mesh[T]) fourBoth(rw *rewrite[T], t1, t2, interior1, interior2 int, records []edgeIntersection) bool {
	inter := sortRecords(records)

	found, forward := false, false
	for i := 0; i < 4; i++ {
		next := inter[(i+1)%4]
		if inter[i].edge1 == interior1 && next.edge2 == interior2 {
			inter = rotateLeft(inter, i)
			found, forward = true, true
			break
		}
		if next.edge1 == interior1 && inter[i].edge2 == interior2 {
			inter = rotateLeft(inter, i)
			found = true
			break
		}
	}
	if !found {
		return false
	}

	other := 3
	if forward {
		other = 1
	}
	left1, _, right1 := m.indices.Triangle(t1, inter[0].edge1)
	left2, _, right2 := m.indices.Triangle(t2, inter[other].edge2)
	n := m.pushRecordPoints(inter)

	rw.overwrite(t1, n[2], n[1], right1)
	rw.push(n[0], n[3], left1)

	rw.overwrite(t2, n[3], n[0], left2)
	rw.push(n[0], right2, left2)
	return true
}

// pushRecordPoints appends the crossing points of four records in order.
func (m *Mesh[T]) pushRecordPoints(inter []edgeIntersection) [4]T {
	var n [4]T
	for i := range n {
		n[i] = m.PushVertex(inter[i].point)
	}
	return n
}

func sortRecords(records []edgeIntersection) []edgeIntersection {
	if len(records) != 4 {
		panic(fmt.Sprintf("mesh: expected 4 crossing records, got %d", len(records)))
	}
	inter := append([]edgeIntersection(nil), records...)
	sort.Slice(inter, func(i, j int) bool {
		if inter[i].edge1 != inter[j].edge1 {
			return inter[i].edge1 < inter[j].edge1
		}
		return inter[i].edge2 < inter[j].edge2
	})
	return inter
}

func rotateLeft(inter []edgeIntersection, k int) []edgeIntersection {
	out := make([]edgeIntersection, 0, len(inter))
	out = append(out, inter[k:]...)
	return append(out, inter[:k]...)
}

func distinctEdges(inter []edgeIntersection, first bool) int {
	var seen [3]bool
	n := 0
	for _, e := range inter {
		k := e.edge2
		if first {
			k = e.edge1
		}
		if !seen[k] {
			seen[k] = true
			n++
		}
	}
	return n
}
