package pathtess

import (
	"fmt"

	"github.com/Faultbox/procmesh/pkg/math"
	"github.com/Faultbox/procmesh/pkg/mesh"
)

// Embedding places 2D tessellator points in 3D.
type Embedding int

const (
	// EmbedXY maps (x, y) to (x, y, 0).
	EmbedXY Embedding = iota
	// EmbedFlat maps (x, y) to (x, 0, y), lying on the ground plane.
	EmbedFlat
	// EmbedUpright maps (x, y) to (-x, y, 0).
	EmbedUpright
)

func (e Embedding) String() string {
	switch e {
	case EmbedXY:
		return "xy"
	case EmbedFlat:
		return "flat"
	case EmbedUpright:
		return "upright"
	default:
		return fmt.Sprintf("embedding(%d)", int(e))
	}
}

func (e Embedding) apply(p math.Vec2) math.Vec3 {
	switch e {
	case EmbedFlat:
		return math.V3(p.X, 0, p.Y)
	case EmbedUpright:
		return math.V3(-p.X, p.Y, 0)
	default:
		return math.V3(p.X, p.Y, 0)
	}
}

// ImportOptions configures Import.
type ImportOptions struct {
	Embedding Embedding
	// NormalizeUV maps the bounding rectangle of the points onto the unit
	// square. Otherwise UV is the raw 2D point.
	NormalizeUV bool
}

// Import converts tessellator output into a triangle-list mesh with UV.
// Indices are range checked against T.
func Import[T mesh.Index](g *Geometry, opts ImportOptions) *mesh.Mesh[T] {
	positions := make([]math.Vec3, len(g.Points))
	uv := make([][2]float32, len(g.Points))

	lo, extent := bounds(g.Points)
	for i, p := range g.Points {
		positions[i] = opts.Embedding.apply(p)
		if opts.NormalizeUV {
			uv[i] = [2]float32{(p.X - lo.X) / extent.X, (p.Y - lo.Y) / extent.Y}
		} else {
			uv[i] = [2]float32{p.X, p.Y}
		}
	}
	return mesh.BuildU32[T](positions, g.Indices, uv)
}

// bounds returns the minimum corner and the size of the bounding rectangle.
// Zero extents are reported as 1.
func bounds(points []math.Vec2) (math.Vec2, math.Vec2) {
	if len(points) == 0 {
		return math.Vec2{}, math.V2(1, 1)
	}
	lo, hi := points[0], points[0]
	for _, p := range points[1:] {
		lo = math.V2(min(lo.X, p.X), min(lo.Y, p.Y))
		hi = math.V2(max(hi.X, p.X), max(hi.Y, p.Y))
	}
	extent := hi.Sub(lo)
	if extent.X == 0 {
		extent.X = 1
	}
	if extent.Y == 0 {
		extent.Y = 1
	}
	return lo, extent
}

// FillMesh records a path with draw, fills it at tolerance tol and appends
// the result to m.
func FillMesh[T mesh.Index](m *mesh.Mesh[T], tol float32, draw func(*Builder)) error {
	b := NewBuilder(tol)
	draw(b)
	g, err := Fill(b.Build(), FillOptions{Tolerance: tol})
	if err != nil {
		return fmt.Errorf("fill: %w", err)
	}
	m.Append(Import[T](g, ImportOptions{}))
	return nil
}

// StrokeMesh records a path with draw, strokes it with the given width and
// appends the result to m.
func StrokeMesh[T mesh.Index](m *mesh.Mesh[T], width, tol float32, draw func(*Builder)) error {
	b := NewBuilder(tol)
	draw(b)
	g, err := Stroke(b.Build(), StrokeOptions{Width: width, Tolerance: tol})
	if err != nil {
		return fmt.Errorf("stroke: %w", err)
	}
	m.Append(Import[T](g, ImportOptions{}))
	return nil
}
