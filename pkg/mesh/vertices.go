package mesh

import (
	"sort"

	"github.com/chewxy/math32"

	"github.com/Faultbox/procmesh/pkg/math"
)

// Vertices is a dense list of positions. A vertex's identity is its index.
type Vertices struct {
	positions []math.Vec3
}

// NewVertices wraps a copy of positions.
func NewVertices(positions []math.Vec3) *Vertices {
	return &Vertices{positions: append([]math.Vec3(nil), positions...)}
}

// Len returns the number of vertices.
func (v *Vertices) Len() int {
	return len(v.positions)
}

// At returns the position of vertex i.
func (v *Vertices) At(i int) math.Vec3 {
	return v.positions[i]
}

// Slice exposes the backing positions. Callers must not grow it.
func (v *Vertices) Slice() []math.Vec3 {
	return v.positions
}

// Push appends a position and returns its index.
func (v *Vertices) Push(p math.Vec3) int {
	v.positions = append(v.positions, p)
	return len(v.positions) - 1
}

// Extend appends copies of other's positions.
func (v *Vertices) Extend(other *Vertices) {
	v.positions = append(v.positions, other.positions...)
}

// Translate moves every vertex by d.
func (v *Vertices) Translate(d math.Vec3) *Vertices {
	for i := range v.positions {
		v.positions[i] = v.positions[i].Add(d)
	}
	return v
}

// Scale multiplies every vertex component-wise by s.
func (v *Vertices) Scale(s math.Vec3) *Vertices {
	for i := range v.positions {
		v.positions[i] = v.positions[i].Mul(s)
	}
	return v
}

// RotateY rotates every vertex in the XZ plane by angle radians.
func (v *Vertices) RotateY(angle float32) *Vertices {
	sin, cos := math32.Sincos(angle)
	for i, p := range v.positions {
		v.positions[i].X = p.X*cos - p.Z*sin
		v.positions[i].Z = p.X*sin + p.Z*cos
	}
	return v
}

// Map replaces every vertex with f(vertex).
func (v *Vertices) Map(f func(math.Vec3) math.Vec3) *Vertices {
	for i, p := range v.positions {
		v.positions[i] = f(p)
	}
	return v
}

// FlipYZ swaps the Y and Z components of every vertex.
func (v *Vertices) FlipYZ() *Vertices {
	for i, p := range v.positions {
		v.positions[i].Y, v.positions[i].Z = p.Z, p.Y
	}
	return v
}

// ArcLen returns the length of the open polyline through the vertices.
func (v *Vertices) ArcLen() float32 {
	var l float32
	for i := 1; i < len(v.positions); i++ {
		l += v.positions[i].Distance(v.positions[i-1])
	}
	return l
}

// Centroid returns the average position, or zero for an empty list.
func (v *Vertices) Centroid() math.Vec3 {
	var c math.Vec3
	if len(v.positions) == 0 {
		return c
	}
	for _, p := range v.positions {
		c = c.Add(p)
	}
	return c.Scale(1 / float32(len(v.positions)))
}

// SortClockwise orders the vertices by their atan2(y, x) angle around the
// centroid. It is only meaningful for point sets roughly in the XY plane.
func (v *Vertices) SortClockwise() *Vertices {
	c := v.Centroid()
	angles := make([]float32, len(v.positions))
	for i, p := range v.positions {
		d := p.Sub(c)
		angles[i] = math32.Atan2(d.Y, d.X)
	}
	sort.Stable(byAngle{v.positions, angles})
	return v
}

type byAngle struct {
	positions []math.Vec3
	angles    []float32
}

func (b byAngle) Len() int           { return len(b.positions) }
func (b byAngle) Less(i, j int) bool { return b.angles[i] < b.angles[j] }
func (b byAngle) Swap(i, j int) {
	b.positions[i], b.positions[j] = b.positions[j], b.positions[i]
	b.angles[i], b.angles[j] = b.angles[j], b.angles[i]
}

// Extrude sweeps the polyline v along dir. Vertex 2k is point k and vertex
// 2k+1 is point k+dir. Each point emits one quad towards the next pair,
// wrapping modulo 2N, so the result holds 2N vertices and 6N indices. UV
// runs 0..1 across the rails and along the arc length.
func Extrude[T Index](v *Vertices, dir math.Vec3) *Mesh[T] {
	n := v.Len()
	positions := make([]math.Vec3, 0, 2*n)
	for _, p := range v.positions {
		positions = append(positions, p, p.Add(dir))
	}

	indices := make([]T, 0, 6*n)
	m := 2 * n
	for k := 0; k < n; k++ {
		i := 2 * k
		for _, o := range [6]int{0, 1, 3, 0, 3, 2} {
			indices = append(indices, NewIndex[T]((i+o)%m))
		}
	}

	uv := make([][2]float32, 0, 2*n)
	total := v.ArcLen()
	var part float32
	for k := 0; k < n; k++ {
		if k > 0 {
			part += v.positions[k].Distance(v.positions[k-1])
		}
		var prog float32
		if total > 0 {
			prog = part / total
		}
		uv = append(uv, [2]float32{0, prog}, [2]float32{1, prog})
	}

	return Build(positions, indices, uv)
}
