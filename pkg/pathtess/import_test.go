package pathtess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/procmesh/pkg/math"
	"github.com/Faultbox/procmesh/pkg/mesh"
)

func triangleGeometry() *Geometry {
	return &Geometry{
		Points:  []math.Vec2{{1, 1}, {3, 1}, {3, 5}},
		Indices: []uint32{0, 1, 2},
	}
}

func TestImportEmbeddings(t *testing.T) {
	tests := []struct {
		embedding Embedding
		want      math.Vec3
	}{
		{EmbedXY, math.V3(3, 5, 0)},
		{EmbedFlat, math.V3(3, 0, 5)},
		{EmbedUpright, math.V3(-3, 5, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.embedding.String(), func(t *testing.T) {
			m := Import[uint16](triangleGeometry(), ImportOptions{Embedding: tt.embedding})
			assert.Equal(t, tt.want, m.Vertices().At(2))
			assert.Equal(t, []uint16{0, 1, 2}, m.Indices().Slice())
		})
	}
}

func TestImportUV(t *testing.T) {
	m := Import[uint16](triangleGeometry(), ImportOptions{})
	uv, ok := m.UV()
	require.True(t, ok)
	assert.Equal(t, [2]float32{3, 5}, uv[2])

	m = Import[uint16](triangleGeometry(), ImportOptions{NormalizeUV: true})
	uv, _ = m.UV()
	assert.Equal(t, [2]float32{0, 0}, uv[0])
	assert.Equal(t, [2]float32{1, 0}, uv[1])
	assert.Equal(t, [2]float32{1, 1}, uv[2])
}

func TestImportNormalizeFlatExtent(t *testing.T) {
	g := &Geometry{Points: []math.Vec2{{2, 7}, {4, 7}}, Indices: []uint32{0, 1, 1}}
	m := Import[uint16](g, ImportOptions{NormalizeUV: true})

	uv, _ := m.UV()
	assert.Equal(t, [2]float32{1, 0}, uv[1])
}

func TestImportIndexOverflow(t *testing.T) {
	g := &Geometry{Points: make([]math.Vec2, 300), Indices: []uint32{0, 1, 299}}
	assert.Panics(t, func() { Import[uint8](g, ImportOptions{}) })
}

func TestFillMeshAppends(t *testing.T) {
	m := mesh.Rect[uint16](1, 1)
	err := FillMesh(m, 0.01, func(b *Builder) {
		b.Translate(math.V2(5, 0)).AddCircle(math.Vec2{}, 1, Positive)
	})
	require.NoError(t, err)

	assert.Greater(t, m.Vertices().Len(), 4)
	assert.NoError(t, m.CheckIndices())
	for _, v := range m.Indices().Slice()[6:] {
		assert.GreaterOrEqual(t, v, uint16(4))
	}
}

func TestStrokeMeshEmpty(t *testing.T) {
	m := mesh.New[uint16]()
	err := StrokeMesh(m, 0, 0.01, func(b *Builder) {
		b.BeginHere().LineTo(math.V2(1, 0)).End(false)
	})
	assert.ErrorIs(t, err, ErrEmptyPath)
	assert.Zero(t, m.Vertices().Len())
}
