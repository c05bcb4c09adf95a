package mesh

import (
	"testing"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/procmesh/pkg/math"
)

func TestRect(t *testing.T) {
	m := Rect[uint16](2, 3)

	assert.Equal(t, 4, m.Vertices().Len())
	assert.Equal(t, 6, m.Indices().Len())
	uv, ok := m.UV()
	require.True(t, ok)
	for i, p := range m.Vertices().Slice() {
		assert.Equal(t, [2]float32{p.X, p.Y}, uv[i])
	}
}

func TestRectCentered(t *testing.T) {
	m := RectCentered[uint16](2, 4)
	assert.Equal(t, math.V3(0, 0, 0), m.Vertices().Centroid())
	assert.Equal(t, math.V3(1, 2, 0), m.Vertices().At(2))
}

func TestFanSquare(t *testing.T) {
	m := Fan[uint16]([]math.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}, nil)

	assert.Equal(t, 4, m.Vertices().Len())
	assert.Equal(t, []uint16{0, 1, 2, 0, 2, 3}, m.Indices().Slice())
	_, ok := m.UV()
	assert.False(t, ok)
}

func TestFanDropsClosingPoint(t *testing.T) {
	m := Fan[uint16]([]math.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 0, 0}}, nil)
	assert.Equal(t, 3, m.Vertices().Len())
	assert.Equal(t, 1, m.TriangleCount())
}

func TestFanTooFewPoints(t *testing.T) {
	m := Fan[uint16]([]math.Vec3{{0, 0, 0}, {0, 0, 0}, {1, 0, 0}}, nil)
	assert.Zero(t, m.Vertices().Len())
	assert.Zero(t, m.Indices().Len())

	m = Fan[uint16](nil, &FanUV{Scale: 1})
	assert.Zero(t, m.Vertices().Len())
}

func TestFanUVKeepsSpokeLength(t *testing.T) {
	points := []math.Vec3{{0, 0, 0}, {2, 0, 0}, {0, 3, 0}}
	m := Fan[uint16](points, &FanUV{Scale: 0.5})

	uv, ok := m.UV()
	require.True(t, ok)
	require.Len(t, uv, 3)
	assert.Equal(t, [2]float32{0, 0}, uv[0])
	assert.InDelta(t, 1, uv[1][0], 1e-6)
	assert.InDelta(t, 1.5, math.V2(uv[2][0], uv[2][1]).Length(), 1e-5)
}

func TestPolygon(t *testing.T) {
	m := Polygon[uint16](1, 6)

	require.Equal(t, 6, m.Vertices().Len())
	assert.Equal(t, 4, m.TriangleCount())
	for _, p := range m.Vertices().Slice() {
		assert.InDelta(t, 1, p.Length(), 1e-5)
	}
	assert.NoError(t, m.CheckIndices())
}

func TestRoundedRect(t *testing.T) {
	m := RoundedRect[uint16](4, 2, 0.5, 4)

	require.Greater(t, m.Vertices().Len(), 4)
	assert.Equal(t, m.Vertices().Len()-2, m.TriangleCount())
	for _, p := range m.Vertices().Slice() {
		assert.LessOrEqual(t, p.X, float32(2.0001))
		assert.GreaterOrEqual(t, p.X, float32(-2.0001))
		assert.LessOrEqual(t, p.Y, float32(1.0001))
		assert.GreaterOrEqual(t, p.Y, float32(-1.0001))
	}
}

func TestFromSDF(t *testing.T) {
	box, err := sdf.Box3D(v3.Vec{X: 2, Y: 2, Z: 2}, 0)
	require.NoError(t, err)

	m := FromSDF[uint32](box, 8)

	require.Positive(t, m.TriangleCount())
	assert.Equal(t, m.Vertices().Len(), m.Indices().Len())
	normals, ok := m.Normals()
	require.True(t, ok)
	require.Len(t, normals, m.Vertices().Len())
	for _, p := range m.Vertices().Slice() {
		assert.LessOrEqual(t, p.X, float32(1.5))
		assert.GreaterOrEqual(t, p.X, float32(-1.5))
	}
}
