package viewer

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Faultbox/procmesh/pkg/math"
	"github.com/Faultbox/procmesh/pkg/mesh"
)

func TestPrepareAddsFaceNormals(t *testing.T) {
	m := mesh.Rect[uint32](2, 1)

	d := prepare(m)

	require.Len(t, d.Positions, 6)
	require.Len(t, d.Normals, 6)
	for _, n := range d.Normals {
		assert.InDelta(t, 1, n[2], 1e-6)
	}
	assert.Equal(t, mesh.IndexUint16, d.Format)
	assert.Equal(t, []uint16{0, 1, 2, 3, 4, 5}, d.Indices16)

	// the source mesh is untouched
	assert.Equal(t, 4, m.Vertices().Len())
	_, ok := m.Normals()
	assert.False(t, ok)
}

func TestInterleave(t *testing.T) {
	d := &mesh.RenderData{
		Positions: [][3]float32{{1, 2, 3}, {4, 5, 6}},
		Normals:   [][3]float32{{0, 0, 1}},
	}

	assert.Equal(t, []float32{1, 2, 3, 0, 0, 1, 4, 5, 6, 0, 0, 0}, interleave(d))
}

func TestBounds(t *testing.T) {
	lo, hi := bounds([][3]float32{{1, -2, 0}, {-1, 3, 4}, {0, 0, -5}})
	assert.Equal(t, math.V3(-1, -2, -5), lo)
	assert.Equal(t, math.V3(1, 3, 4), hi)

	lo, hi = bounds(nil)
	assert.Equal(t, math.Vec3{}, lo)
	assert.Equal(t, math.Vec3{}, hi)
}

func TestCameraPosition(t *testing.T) {
	c := newOrbitCamera()
	c.Center = math.V3(1, 0, 0)
	c.Distance = 2
	c.Pitch = 0
	c.Yaw = 0

	p := c.position()
	assert.InDelta(t, 1, p.X, 1e-6)
	assert.InDelta(t, 0, p.Y, 1e-6)
	assert.InDelta(t, 2, p.Z, 1e-6)

	c.Yaw = math32.Pi / 2
	p = c.position()
	assert.InDelta(t, 3, p.X, 1e-5)
	assert.InDelta(t, 0, p.Z, 1e-5)
}

func TestCameraViewMatchesLookAt(t *testing.T) {
	c := newOrbitCamera()
	c.Center = math.V3(1, 2, -1)
	c.Distance = 4
	c.Pitch = 0.4
	c.Yaw = 2.1

	got := c.view()
	want := math.LookAt(c.position(), c.Center, math.V3(0, 1, 0))
	for i := range got {
		assert.InDelta(t, want[i], got[i], 1e-5, "element %d", i)
	}

	center := got.TransformVec3(c.Center)
	assert.InDelta(t, 0, center.X, 1e-5)
	assert.InDelta(t, 0, center.Y, 1e-5)
	assert.InDelta(t, -4, center.Z, 1e-5)
}

func TestCameraOrbitWraps(t *testing.T) {
	c := newOrbitCamera()
	c.orbit(2*math32.Pi + 0.5)
	assert.InDelta(t, 0.5, c.Yaw, 1e-5)

	c.orbit(-1)
	assert.InDelta(t, 2*math32.Pi-0.5, c.Yaw, 1e-5)
}

func TestCameraFit(t *testing.T) {
	c := newOrbitCamera()
	c.fit(math.V3(-3, 0, 0), math.V3(3, 8, 0))

	assert.Equal(t, math.V3(0, 4, 0), c.Center)
	assert.InDelta(t, 5/math32.Sin(c.FovY/2), c.Distance, 1e-4)

	c.fit(math.Vec3{}, math.Vec3{})
	assert.InDelta(t, 1/math32.Sin(c.FovY/2), c.Distance, 1e-4)
}

func TestCameraZoomClamps(t *testing.T) {
	c := newOrbitCamera()
	c.Distance = 1
	for i := 0; i < 200; i++ {
		c.zoom(5)
	}
	assert.Equal(t, c.MinDistance, c.Distance)
}

func TestFlushExportWritesQueuedPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rect.obj")
	v := &Viewer{
		log:           zap.NewNop(),
		mesh:          mesh.Rect[uint32](1, 1),
		pendingExport: make(chan string, 1),
	}

	v.flushExport()
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	v.pendingExport <- path
	v.flushExport()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 4, strings.Count(string(data), "\nv "))
	assert.Equal(t, 2, strings.Count(string(data), "\nf "))
}

func TestSavePNGFlipsRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shots", "frame.png")
	// 1x2: bottom row red, top row blue
	pixels := []byte{255, 0, 0, 255, 0, 0, 255, 255}

	require.NoError(t, savePNG(path, pixels, 1, 2))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)

	r, _, b, _ := img.At(0, 0).RGBA()
	assert.Zero(t, r)
	assert.Equal(t, uint32(0xffff), b)
	r, _, _, _ = img.At(0, 1).RGBA()
	assert.Equal(t, uint32(0xffff), r)

	assert.Error(t, savePNG(path, pixels[:4], 1, 2))
}
