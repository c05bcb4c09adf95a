package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/procmesh/internal/config"
	"github.com/Faultbox/procmesh/pkg/mesh"
)

func tess() config.TessellationConfig {
	return config.Default().Tessellation
}

func TestBuildAllScenes(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			m, err := Build[uint32](name, tess())
			require.NoError(t, err)
			assert.Equal(t, mesh.TriangleList, m.Topology())
			assert.Positive(t, m.TriangleCount())
			assert.NoError(t, m.CheckIndices())
			assert.NotEmpty(t, Describe(name))
		})
	}
}

func TestBuildUnknown(t *testing.T) {
	_, err := Build[uint16]("teapot", tess())
	assert.ErrorIs(t, err, ErrUnknownScene)
}

func TestNamesIsACopy(t *testing.T) {
	n := Names()
	n[0] = "changed"
	assert.Equal(t, "star-circle", Names()[0])
}

func TestStarCircleIsFlat(t *testing.T) {
	m, err := Build[uint16]("star-circle", tess())
	require.NoError(t, err)

	for _, p := range m.Vertices().Slice() {
		assert.Zero(t, p.Z)
	}
	uv, ok := m.UV()
	require.True(t, ok)
	for _, c := range uv {
		assert.GreaterOrEqual(t, c[0], float32(0))
		assert.LessOrEqual(t, c[0], float32(1))
	}
}

func TestPokeResolves(t *testing.T) {
	m, err := Build[uint16]("poke", tess())
	require.NoError(t, err)

	res := m.CutCoplanarEdges(mesh.ResolveOptions{Tolerance: mesh.DefaultTolerance})
	assert.Equal(t, 2, res.Changes)
	assert.Equal(t, 13, m.Vertices().Len())
}

func TestRibbonShape(t *testing.T) {
	m, err := Build[uint16]("ribbon", tess())
	require.NoError(t, err)

	assert.Equal(t, 48, m.Vertices().Len())
	assert.Equal(t, 48, m.TriangleCount())
}

func TestPrepareResolvesAndOptimizes(t *testing.T) {
	cfg := config.Default()
	cfg.Resolver.MaxChanges = 0
	cfg.Optimizer.Enabled = true

	m, rep, err := Prepare("poke", cfg, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, rep.Built)
	assert.True(t, rep.Resolved)
	assert.Equal(t, 2, rep.Resolve.Changes)
	assert.True(t, rep.Optimized)
	assert.LessOrEqual(t, m.Vertices().Len(), 13)
	assert.Equal(t, 5, m.TriangleCount())
}

func TestPrepareRespectsDisabledStages(t *testing.T) {
	cfg := config.Default()
	cfg.Resolver.Enabled = false

	m, rep, err := Prepare("poke", cfg, nil)
	require.NoError(t, err)

	assert.False(t, rep.Resolved)
	assert.False(t, rep.Optimized)
	assert.Equal(t, 9, m.Vertices().Len())
}

func TestPrepareUnknownScene(t *testing.T) {
	_, _, err := Prepare("nope", config.Default(), nil)
	assert.ErrorIs(t, err, ErrUnknownScene)
}
