package mesh

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/procmesh/pkg/geom"
	"github.com/Faultbox/procmesh/pkg/math"
)

// DefaultTolerance is the resolver tolerance for scenes of unit scale.
const DefaultTolerance = 0.0001

// ResolveOptions configures CutCoplanarEdges.
type ResolveOptions struct {
	// Tolerance governs degeneracy and point containment. Coplanarity and
	// full containment use twice this value.
	Tolerance float32
	// MaxChanges bounds the number of rewrites. Zero or less is unbounded.
	MaxChanges int
	Logger     *zap.Logger
}

// DefaultResolveOptions returns the tolerance and budget used by the tools.
func DefaultResolveOptions() ResolveOptions {
	return ResolveOptions{Tolerance: DefaultTolerance, MaxChanges: 1024}
}

// ResolveResult reports what a CutCoplanarEdges call did.
type ResolveResult struct {
	// Changes is the number of successful rewrites.
	Changes int
	// Removed counts triangles soft-deleted because another triangle
	// covered them.
	Removed int
	// Exhausted is set when the call stopped because the budget ran out.
	// Overlap may remain.
	Exhausted bool
}

// edgeIntersection records that edge1 of the first triangle crosses edge2
// of the second one at point. Edge k runs from corner k to corner k+1.
type edgeIntersection struct {
	edge1, edge2 int
	point        math.Vec3
}

func (e edgeIntersection) swap() edgeIntersection {
	return edgeIntersection{edge1: e.edge2, edge2: e.edge1, point: e.point}
}

// CutCoplanarEdges inserts vertices where edges of coplanar triangles cross
// and re-triangulates each overlapping pair. Triangles are compared in
// order; after a rewrite the scan for the current first triangle restarts
// because the slots it compared against may have changed. UV and normals are
// dropped. The mesh must be a triangle list.
func (m *Mesh[T]) CutCoplanarEdges(opts ResolveOptions) ResolveResult {
	if m.topology != TriangleList {
		panic(fmt.Sprintf("mesh: coplanar resolver needs %s, got %s", TriangleList, m.topology))
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	tol := opts.Tolerance
	if tol <= 0 {
		tol = DefaultTolerance
	}
	budget := opts.MaxChanges

	m.ClearAttributes()

	var res ResolveResult
	t1 := 0
	for t1 < m.TriangleCount() {
		if m.TriangleAt(t1).IsDegenerate(tol) {
			t1++
			continue
		}

		again := false
		for t2 := t1 + 1; t2 < m.TriangleCount(); t2++ {
			tri1, tri2 := m.TriangleAt(t1), m.TriangleAt(t2)
			if tri2.IsDegenerate(tol) || !tri1.IsCoplanar(tri2, 2*tol) {
				continue
			}

			if tri1.ContainsTriangle(tri2, 2*tol) {
				m.indices.Overwrite(t2, 0, 0, 0)
				res.Removed++
				log.Debug("covered triangle removed", zap.Int("triangle1", t1), zap.Int("triangle2", t2))
			}

			cfg := m.classify(m.edgeIntersections(t1, t2, tol), t1, t2, tol)
			if !m.resolve(cfg, tol, log) {
				continue
			}

			again = true
			res.Changes++
			if budget > 0 && res.Changes >= budget {
				res.Exhausted = true
				return res
			}
			break
		}

		if !again {
			t1++
		}
	}

	m.removeCoplanarVertices()
	return res
}

// edgeIntersections tests the 9 edge pairs of two triangles. Pairs sharing
// a vertex are skipped and crossings at segment endpoints are rejected, so
// only proper interior crossings are returned.
func (m *Mesh[T]) edgeIntersections(t1, t2 int, tol float32) []edgeIntersection {
	var hits []edgeIntersection
	for e1 := 0; e1 < 3; e1++ {
		a1, b1, _ := m.indices.Triangle(t1, e1)
		for e2 := 0; e2 < 3; e2++ {
			a2, b2, _ := m.indices.Triangle(t2, e2)
			if a2 == a1 || a2 == b1 || b2 == a1 || b2 == b1 {
				continue
			}
			p, ok := geom.SegmentIntersection(m.Vec3At(a1), m.Vec3At(b1), m.Vec3At(a2), m.Vec3At(b2), tol, -tol)
			if ok {
				hits = append(hits, edgeIntersection{edge1: e1, edge2: e2, point: p})
			}
		}
	}
	return hits
}

// removeCoplanarVertices is meant to drop vertices that earlier rewrites
// left in the middle of flat regions. It does nothing yet.
//
// TODO: collapse vertices whose incident triangles are all coplanar and
// whose fan can be re-triangulated without them.
func (m *Mesh[T]) removeCoplanarVertices() {}
