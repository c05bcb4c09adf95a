// Package meshopt reorders and trims mesh buffers for GPU efficiency and
// estimates how well a mesh uses the vertex cache, vertex fetch and fill
// rate.
package meshopt

import (
	"github.com/Faultbox/procmesh/pkg/math"
	"github.com/Faultbox/procmesh/pkg/mesh"
)

// Vertex is the interleaved record the passes work on.
type Vertex struct {
	P [3]float32
	N [3]float32
	T [2]float32
}

// Data is a mesh flattened into interleaved vertices and uint32 indices.
type Data struct {
	Vertices []Vertex
	Indices  []uint32
}

// Export copies positions and indices out of m. Normals and texture
// coordinates are left zero. It panics on an index that does not fit in
// uint32.
func Export[T mesh.Index](m *mesh.Mesh[T]) *Data {
	d := &Data{
		Vertices: make([]Vertex, m.Vertices().Len()),
		Indices:  make([]uint32, m.Indices().Len()),
	}
	for i, p := range m.Vertices().Slice() {
		d.Vertices[i].P = p.Array()
	}
	for i, v := range m.Indices().Slice() {
		d.Indices[i] = mesh.NewIndex[uint32](int(v))
	}
	return d
}

// Import replaces the contents of m with d as a triangle list. UV and
// normals are dropped. Indices are range checked against T.
func Import[T mesh.Index](m *mesh.Mesh[T], d *Data) {
	positions := make([]math.Vec3, len(d.Vertices))
	for i, v := range d.Vertices {
		positions[i] = math.V3(v.P[0], v.P[1], v.P[2])
	}
	*m = *mesh.BuildU32[T](positions, d.Indices, nil)
}
