package mesh

import (
	"fmt"

	"github.com/Faultbox/procmesh/pkg/math"
)

// FlatNormals assigns every vertex the normal of its face. The mesh must be
// a duplicated triangle list (see Duplicate); anything else panics.
func (m *Mesh[T]) FlatNormals() *Mesh[T] {
	if m.indices.Len() != m.vertices.Len() {
		panic(fmt.Sprintf("mesh: flat normals need duplicated vertices (%d indices, %d vertices)",
			m.indices.Len(), m.vertices.Len()))
	}
	if m.topology != TriangleList {
		panic(fmt.Sprintf("mesh: flat normals need %s, got %s", TriangleList, m.topology))
	}

	normals := make([]math.Vec3, m.vertices.Len())
	for i, f := range m.Faces() {
		n := m.TriangleAt(i).UnitNormal()
		for _, v := range f {
			normals[v] = n
		}
	}
	m.SetNormals(normals)
	return m
}

// SmoothNormals averages face normals at each vertex, weighted by the corner
// angle. With areaWeighting the unnormalized face normal is used, so larger
// faces contribute more.
func (m *Mesh[T]) SmoothNormals(areaWeighting bool) *Mesh[T] {
	acc := make([]math.Vec3, m.vertices.Len())
	for _, f := range m.Faces() {
		v1, v2, v3 := m.vertices.At(f[0]), m.vertices.At(f[1]), m.vertices.At(f[2])

		n := v2.Sub(v1).Cross(v3.Sub(v1))
		if !areaWeighting {
			n = n.Normalize()
		}

		acc[f[0]] = acc[f[0]].Add(n.Scale(v2.Sub(v1).AngleBetween(v3.Sub(v1))))
		acc[f[1]] = acc[f[1]].Add(n.Scale(v3.Sub(v2).AngleBetween(v1.Sub(v2))))
		acc[f[2]] = acc[f[2]].Add(n.Scale(v1.Sub(v3).AngleBetween(v2.Sub(v3))))
	}
	for i := range acc {
		acc[i] = acc[i].Normalize()
	}
	m.SetNormals(acc)
	return m
}
