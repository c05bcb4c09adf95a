// Package scene builds the named demo meshes shared by meshtool and meshview.
package scene

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/Faultbox/procmesh/internal/config"
	"github.com/Faultbox/procmesh/pkg/math"
	"github.com/Faultbox/procmesh/pkg/mesh"
	"github.com/Faultbox/procmesh/pkg/pathtess"
)

// ErrUnknownScene is returned by Build for names not listed by Names.
var ErrUnknownScene = errors.New("unknown scene")

var names = []string{"star-circle", "poke", "ribbon", "polygon", "sdf-box"}

var descriptions = map[string]string{
	"star-circle": "filled five point star overlapping a filled circle",
	"poke":        "triangle with two smaller triangles poking through its edges",
	"ribbon":      "wavy polyline extruded upwards",
	"polygon":     "hexagon, rounded rectangle and stroked ring in one plane",
	"sdf-box":     "rounded box polygonized from a distance field",
}

// Names lists the scenes in display order.
func Names() []string {
	return append([]string(nil), names...)
}

// Describe returns a one-line summary of a scene.
func Describe(name string) string {
	return descriptions[name]
}

// Build constructs the named scene. Every scene is a triangle list.
func Build[T mesh.Index](name string, cfg config.TessellationConfig) (*mesh.Mesh[T], error) {
	switch name {
	case "star-circle":
		return starCircle[T](cfg)
	case "poke":
		return poke[T](), nil
	case "ribbon":
		return ribbon[T](), nil
	case "polygon":
		return polygon[T](cfg)
	case "sdf-box":
		return sdfBox[T](), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
}

func starCircle[T mesh.Index](cfg config.TessellationConfig) (*mesh.Mesh[T], error) {
	b := pathtess.NewBuilder(cfg.Tolerance)
	star(b, math.V2(-0.3, 0), 1, 0.4, 5)
	b.AddCircle(math.V2(0.5, 0), 0.6, pathtess.Positive)

	g, err := pathtess.Fill(b.Build(), pathtess.FillOptions{Tolerance: cfg.Tolerance})
	if err != nil {
		return nil, fmt.Errorf("star-circle: %w", err)
	}
	return pathtess.Import[T](g, pathtess.ImportOptions{NormalizeUV: cfg.NormalizeUV}), nil
}

// star records a closed star outline with the first tip pointing up.
func star(b *pathtess.Builder, center math.Vec2, outer, inner float32, tips int) {
	b.BeginTransPush(center)
	for i := 0; i < 2*tips; i++ {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		a := math32.Pi/2 + float32(i)*math32.Pi/float32(tips)
		p := math.V2(r*math32.Cos(a), r*math32.Sin(a))
		if i == 0 {
			b.Begin(p)
		} else {
			b.LineTo(p)
		}
	}
	b.ClosePop()
}

func poke[T mesh.Index]() *mesh.Mesh[T] {
	return mesh.Build[T](
		[]math.Vec3{
			{0, 0, 0}, {4, 0, 0}, {0, 4, 0},
			{1, 1, 0}, {0.5, -1, 0}, {2, -1, 0},
			{0.5, 2.5, 0}, {-1, 3, 0}, {-1, 2, 0},
		},
		[]T{0, 1, 2, 3, 4, 5, 6, 7, 8},
		nil,
	)
}

func ribbon[T mesh.Index]() *mesh.Mesh[T] {
	const steps = 24
	points := make([]math.Vec3, steps)
	for i := range points {
		a := 2 * math32.Pi * float32(i) / steps
		r := 1 + 0.15*math32.Sin(4*a)
		points[i] = math.V3(r*math32.Cos(a), 0, r*math32.Sin(a))
	}
	return mesh.Extrude[T](mesh.NewVertices(points), math.V3(0, 0.5, 0))
}

func polygon[T mesh.Index](cfg config.TessellationConfig) (*mesh.Mesh[T], error) {
	m := mesh.Polygon[T](1, 6)
	m.Append(mesh.RoundedRect[T](1.6, 0.8, 0.2, 4).Translate(0.8, 0, 0))

	err := pathtess.StrokeMesh(m, cfg.StrokeWidth, cfg.Tolerance, func(b *pathtess.Builder) {
		b.AddCircle(math.V2(-0.5, 0.4), 0.5, pathtess.Positive)
	})
	if err != nil {
		return nil, fmt.Errorf("polygon: %w", err)
	}
	return m, nil
}

func sdfBox[T mesh.Index]() *mesh.Mesh[T] {
	box, err := sdf.Box3D(v3.Vec{X: 1.5, Y: 1, Z: 1}, 0.2)
	if err != nil {
		// Box3D only fails on a negative size or round.
		panic(err)
	}
	return mesh.FromSDF[T](box, 24).Optimize()
}
