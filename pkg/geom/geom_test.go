package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/procmesh/pkg/math"
)

const tol = 0.0001

func TestTriangleBasics(t *testing.T) {
	tri := Tri(math.V3(0, 0, 0), math.V3(4, 0, 0), math.V3(0, 4, 0))

	assert.Equal(t, math.V3(0, 0, 16), tri.Normal())
	assert.Equal(t, math.V3(0, 0, 1), tri.UnitNormal())
	assert.InDelta(t, 8, tri.Area(), 1e-6)
	c := tri.Centroid()
	assert.InDelta(t, 4.0/3.0, c.X, 1e-6)
	assert.InDelta(t, 4.0/3.0, c.Y, 1e-6)
	assert.False(t, tri.IsDegenerate(tol))
}

func TestTriangleDegenerate(t *testing.T) {
	tri := Tri(math.V3(0, 0, 0), math.V3(1, 0, 0), math.V3(2, 0, 0))
	assert.True(t, tri.IsDegenerate(tol))
	assert.False(t, tri.ContainsPoint(math.V3(1, 0, 0), tol))
}

func TestContainsPoint(t *testing.T) {
	tri := Tri(math.V3(0, 0, 0), math.V3(4, 0, 0), math.V3(0, 4, 0))

	tests := []struct {
		name string
		p    math.Vec3
		want bool
	}{
		{"interior", math.V3(1, 1, 0), true},
		{"corner", math.V3(4, 0, 0), true},
		{"on edge", math.V3(2, 2, 0), true},
		{"outside", math.V3(3, 3, 0), false},
		{"below", math.V3(1, -1, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tri.ContainsPoint(tt.p, tol))
		})
	}
}

func TestContainsTriangle(t *testing.T) {
	outer := Tri(math.V3(0, 0, 0), math.V3(4, 0, 0), math.V3(0, 4, 0))
	inner := Tri(math.V3(1, 1, 0), math.V3(2, 1, 0), math.V3(1, 2, 0))
	assert.True(t, outer.ContainsTriangle(inner, 2*tol))
	assert.False(t, inner.ContainsTriangle(outer, 2*tol))
}

func TestIsCoplanar(t *testing.T) {
	base := Tri(math.V3(0, 0, 0), math.V3(1, 0, 0), math.V3(0, 1, 0))

	assert.True(t, base.IsCoplanar(Tri(math.V3(5, 5, 0), math.V3(6, 5, 0), math.V3(5, 7, 0)), tol))
	assert.False(t, base.IsCoplanar(Tri(math.V3(0, 0, 1), math.V3(1, 0, 1), math.V3(0, 1, 1)), tol))
	assert.False(t, base.IsCoplanar(Tri(math.V3(0, 0, -1), math.V3(1, 0, -1), math.V3(0, 1, -1)), tol))
}

func TestSameWinding(t *testing.T) {
	ccw := Tri(math.V3(0, 0, 0), math.V3(1, 0, 0), math.V3(0, 1, 0))
	cw := Tri(math.V3(0, 0, 0), math.V3(0, 1, 0), math.V3(1, 0, 0))
	tilted := Tri(math.V3(0, 0, 0), math.V3(1, 0, 0), math.V3(0, 0, 1))

	assert.Equal(t, WindingSame, ccw.SameWinding(ccw, tol))
	assert.Equal(t, WindingOpposite, ccw.SameWinding(cw, tol))
	assert.Equal(t, WindingIndeterminate, ccw.SameWinding(tilted, tol))
	assert.Equal(t, "opposite", WindingOpposite.String())
}

func TestSegmentIntersection(t *testing.T) {
	p, ok := SegmentIntersection(math.V3(0, 0, 0), math.V3(2, 2, 0), math.V3(0, 2, 0), math.V3(2, 0, 0), tol, -tol)
	require.True(t, ok)
	assert.InDelta(t, 1, p.X, 1e-6)
	assert.InDelta(t, 1, p.Y, 1e-6)
}

func TestSegmentIntersectionParallel(t *testing.T) {
	_, ok := SegmentIntersection(math.V3(0, 0, 0), math.V3(2, 0, 0), math.V3(0, 1, 0), math.V3(2, 1, 0), tol, tol)
	assert.False(t, ok)

	// collinear overlap is not reported either
	_, ok = SegmentIntersection(math.V3(0, 0, 0), math.V3(2, 0, 0), math.V3(1, 0, 0), math.V3(3, 0, 0), tol, tol)
	assert.False(t, ok)
}

func TestSegmentIntersectionEndpoints(t *testing.T) {
	a, b := math.V3(0, 0, 0), math.V3(4, 0, 0)
	c, d := math.V3(1, 0, 0), math.V3(1, -2, 0)

	_, ok := SegmentIntersection(a, b, c, d, tol, -tol)
	assert.False(t, ok, "negative tol2 excludes endpoint crossings")

	p, ok := SegmentIntersection(a, b, c, d, tol, tol)
	require.True(t, ok)
	assert.InDelta(t, 1, p.X, 1e-6)
}

func TestPointsCoplanar(t *testing.T) {
	flat := []math.Vec3{
		math.V3(0, 0, 0), math.V3(1, 0, 0), math.V3(0, 1, 0), math.V3(3, 7, 0),
	}
	assert.True(t, PointsCoplanar(flat, tol))
	assert.True(t, PointsCoplanar(flat[:3], tol))
	assert.False(t, PointsCoplanar(append(flat, math.V3(0, 0, 1)), tol))
}
