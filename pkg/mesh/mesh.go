// Package mesh builds indexed triangle meshes from primitive shapes,
// combines and transforms them, and repairs overlaps between coplanar
// triangles.
package mesh

import (
	"fmt"

	"github.com/Faultbox/procmesh/pkg/geom"
	"github.com/Faultbox/procmesh/pkg/math"
)

// Mesh is a vertex buffer, an index buffer of width T and optional
// per-vertex UV and normal arrays. When present, UV and normals hold exactly
// one entry per vertex. A Mesh is owned by one caller at a time; Append
// copies the other mesh's data instead of aliasing it.
type Mesh[T Index] struct {
	vertices Vertices
	indices  Indices[T]
	topology Topology

	uv      [][2]float32
	hasUV   bool
	normals []math.Vec3
	hasNorm bool
}

// New returns an empty triangle list with an empty UV array.
func New[T Index]() *Mesh[T] {
	return &Mesh[T]{topology: TriangleList, hasUV: true}
}

// Build creates a triangle list from positions, indices and optional UV.
func Build[T Index](positions []math.Vec3, indices []T, uv [][2]float32) *Mesh[T] {
	return BuildEx(positions, indices, uv, nil, TriangleList)
}

// BuildU32 is Build for index data that arrives as uint32. Each index is
// range checked against T.
func BuildU32[T Index](positions []math.Vec3, indices []uint32, uv [][2]float32) *Mesh[T] {
	idx := make([]T, len(indices))
	for i, v := range indices {
		idx[i] = NewIndex[T](int(v))
	}
	return Build(positions, idx, uv)
}

// BuildEx creates a mesh from all of its parts. A nil uv or normals slice
// means the attribute is absent. It panics if a present attribute does not
// have one entry per vertex.
func BuildEx[T Index](positions []math.Vec3, indices []T, uv [][2]float32, normals []math.Vec3, topology Topology) *Mesh[T] {
	if uv != nil && len(uv) != len(positions) {
		panic(fmt.Sprintf("mesh: %d uv entries for %d vertices", len(uv), len(positions)))
	}
	if normals != nil && len(normals) != len(positions) {
		panic(fmt.Sprintf("mesh: %d normals for %d vertices", len(normals), len(positions)))
	}
	m := &Mesh[T]{
		vertices: *NewVertices(positions),
		indices:  *NewIndices(indices),
		topology: topology,
	}
	if uv != nil {
		m.uv = append([][2]float32{}, uv...)
		m.hasUV = true
	}
	if normals != nil {
		m.normals = append([]math.Vec3{}, normals...)
		m.hasNorm = true
	}
	return m
}

// Clone returns a deep copy.
func (m *Mesh[T]) Clone() *Mesh[T] {
	var uv [][2]float32
	if m.hasUV {
		uv = append([][2]float32{}, m.uv...)
	}
	var normals []math.Vec3
	if m.hasNorm {
		normals = append([]math.Vec3{}, m.normals...)
	}
	return BuildEx(m.vertices.positions, m.indices.idx, uv, normals, m.topology)
}

// Vertices returns the vertex buffer for in-place edits.
func (m *Mesh[T]) Vertices() *Vertices { return &m.vertices }

// Indices returns the index buffer for in-place edits.
func (m *Mesh[T]) Indices() *Indices[T] { return &m.indices }

// Topology returns the primitive topology.
func (m *Mesh[T]) Topology() Topology { return m.topology }

// UV returns the texture coordinates and whether they are present.
func (m *Mesh[T]) UV() ([][2]float32, bool) { return m.uv, m.hasUV }

// Normals returns the normals and whether they are present.
func (m *Mesh[T]) Normals() ([]math.Vec3, bool) { return m.normals, m.hasNorm }

// SetUV replaces the texture coordinates. nil removes them.
func (m *Mesh[T]) SetUV(uv [][2]float32) {
	if uv != nil && len(uv) != m.vertices.Len() {
		panic(fmt.Sprintf("mesh: %d uv entries for %d vertices", len(uv), m.vertices.Len()))
	}
	m.uv, m.hasUV = uv, uv != nil
}

// SetNormals replaces the normals. nil removes them.
func (m *Mesh[T]) SetNormals(normals []math.Vec3) {
	if normals != nil && len(normals) != m.vertices.Len() {
		panic(fmt.Sprintf("mesh: %d normals for %d vertices", len(normals), m.vertices.Len()))
	}
	m.normals, m.hasNorm = normals, normals != nil
}

// ClearAttributes drops UV and normals.
func (m *Mesh[T]) ClearAttributes() {
	m.SetUV(nil)
	m.SetNormals(nil)
}

// PushVertex appends a position and returns its checked index. UV and
// normals are dropped since they would no longer cover every vertex.
func (m *Mesh[T]) PushVertex(p math.Vec3) T {
	i := NewIndex[T](m.vertices.Push(p))
	if m.hasUV || m.hasNorm {
		m.ClearAttributes()
	}
	return i
}

// Vec3At returns the position of vertex i.
func (m *Mesh[T]) Vec3At(i T) math.Vec3 {
	return m.vertices.At(int(i))
}

// TriangleCount returns the number of triangles the index buffer describes.
func (m *Mesh[T]) TriangleCount() int {
	n := m.indices.Len()
	switch m.topology {
	case TriangleList:
		return n / 3
	case TriangleStrip:
		return max(n-2, 0)
	default:
		return 0
	}
}

// Faces returns the vertex indices of every triangle, as list triples or
// strip windows depending on the topology.
func (m *Mesh[T]) Faces() [][3]int {
	idx := m.indices.idx
	faces := make([][3]int, 0, m.TriangleCount())
	switch m.topology {
	case TriangleList:
		for i := 0; i+2 < len(idx); i += 3 {
			faces = append(faces, [3]int{int(idx[i]), int(idx[i+1]), int(idx[i+2])})
		}
	case TriangleStrip:
		for i := 0; i+2 < len(idx); i++ {
			faces = append(faces, [3]int{int(idx[i]), int(idx[i+1]), int(idx[i+2])})
		}
	}
	return faces
}

// TriangleAt returns the geometry of list triangle i.
func (m *Mesh[T]) TriangleAt(i int) geom.Triangle {
	a, b, c := m.indices.Triangle(i, 0)
	return m.Triangle(a, b, c)
}

// Triangle returns the geometry of the triangle through three vertices.
func (m *Mesh[T]) Triangle(a, b, c T) geom.Triangle {
	return geom.Tri(m.Vec3At(a), m.Vec3At(b), m.Vec3At(c))
}

// TriangleHasPoint reports whether vertex v lies inside list triangle i.
func (m *Mesh[T]) TriangleHasPoint(i int, v T, tol float32) bool {
	return m.TriangleAt(i).ContainsPoint(m.Vec3At(v), tol)
}

// CheckIndices returns an error naming the first index that does not
// address a vertex.
func (m *Mesh[T]) CheckIndices() error {
	n := m.vertices.Len()
	for pos, v := range m.indices.idx {
		if int(v) >= n {
			return fmt.Errorf("index %d at position %d exceeds vertex count %d", v, pos, n)
		}
	}
	return nil
}

// SetTopology converts the index buffer to t. Only triangle list and strip
// convert into each other.
func (m *Mesh[T]) SetTopology(t Topology) *Mesh[T] {
	convertTopology(&m.indices, m.topology, t)
	m.topology = t
	return m
}

// Append copies other into m, re-basing its indices by m's vertex count and
// converting its topology to m's. If either side lacks UV or normals the
// result drops that attribute entirely.
func (m *Mesh[T]) Append(other *Mesh[T]) *Mesh[T] {
	idx := other.indices.clone()
	if idx.Len() > 0 && m.vertices.Len() > 0 {
		idx.Offset(NewIndex[T](m.vertices.Len()))
	}
	convertTopology(idx, other.topology, m.topology)

	m.vertices.Extend(&other.vertices)
	m.indices.Extend(idx)

	if m.hasUV && other.hasUV {
		m.uv = append(m.uv, other.uv...)
	} else {
		m.uv, m.hasUV = nil, false
	}
	if m.hasNorm && other.hasNorm {
		m.normals = append(m.normals, other.normals...)
	} else {
		m.normals, m.hasNorm = nil, false
	}
	return m
}

// Translate moves the mesh.
func (m *Mesh[T]) Translate(x, y, z float32) *Mesh[T] {
	m.vertices.Translate(math.V3(x, y, z))
	return m
}

// Scale scales the mesh per axis. Normals are dropped unless the scale is
// uniform.
func (m *Mesh[T]) Scale(x, y, z float32) *Mesh[T] {
	m.vertices.Scale(math.V3(x, y, z))
	if m.hasNorm && (x != y || y != z) {
		m.SetNormals(nil)
	}
	return m
}

// ScaleUniform scales the mesh by s on every axis.
func (m *Mesh[T]) ScaleUniform(s float32) *Mesh[T] {
	return m.Scale(s, s, s)
}

// RotateY rotates the mesh in the XZ plane.
func (m *Mesh[T]) RotateY(angle float32) *Mesh[T] {
	m.vertices.RotateY(angle)
	if m.hasNorm {
		n := Vertices{positions: m.normals}
		n.RotateY(angle)
	}
	return m
}

// Rotate applies a quaternion rotation to positions and normals.
func (m *Mesh[T]) Rotate(q math.Quat) *Mesh[T] {
	m.vertices.Map(q.Rotate)
	for i, n := range m.normals {
		m.normals[i] = q.Rotate(n)
	}
	return m
}

// Transform applies an affine matrix to positions and its linear part to
// normals.
func (m *Mesh[T]) Transform(mat math.Mat4) *Mesh[T] {
	m.vertices.Map(mat.TransformVec3)
	for i, n := range m.normals {
		m.normals[i] = mat.TransformDirection(n).Normalize()
	}
	return m
}

// FlipYZ swaps the Y and Z axes, e.g. to lay a shape built in XY onto the
// ground.
func (m *Mesh[T]) FlipYZ() *Mesh[T] {
	m.vertices.FlipYZ()
	if m.hasNorm {
		n := Vertices{positions: m.normals}
		n.FlipYZ()
	}
	return m
}

// AddBackfaces appends a reversed copy of the index buffer.
func (m *Mesh[T]) AddBackfaces() *Mesh[T] {
	m.indices.AddBackfaces()
	return m
}

// Duplicate gives every index occurrence its own vertex. Afterwards the
// index buffer is 0..n-1. Flat normals need this layout.
func (m *Mesh[T]) Duplicate() *Mesh[T] {
	idx := m.indices.idx
	positions := make([]math.Vec3, len(idx))
	for i, v := range idx {
		positions[i] = m.vertices.At(int(v))
	}
	if m.hasUV {
		uv := make([][2]float32, len(idx))
		for i, v := range idx {
			uv[i] = m.uv[v]
		}
		m.uv = uv
	}
	if m.hasNorm {
		normals := make([]math.Vec3, len(idx))
		for i, v := range idx {
			normals[i] = m.normals[v]
		}
		m.normals = normals
	}
	m.vertices.positions = positions
	m.indices.ResetToInterval(len(idx))
	return m
}

// Optimize merges vertices closer than 1e-4 by a linear scan over the
// vertices kept so far and rewrites the indices accordingly. Unreferenced
// vertices disappear. UV is kept from the first occurrence and may be wrong
// afterwards; normals are dropped.
func (m *Mesh[T]) Optimize() *Mesh[T] {
	const eps = 0.0001

	var (
		kept []math.Vec3
		uv   [][2]float32
		idx  = make([]T, 0, m.indices.Len())
	)
	for _, v := range m.indices.idx {
		p := m.vertices.At(int(v))
		found := -1
		for k, q := range kept {
			if p.Distance(q) < eps {
				found = k
				break
			}
		}
		if found >= 0 {
			idx = append(idx, NewIndex[T](found))
			continue
		}
		idx = append(idx, NewIndex[T](len(kept)))
		kept = append(kept, p)
		if m.hasUV {
			uv = append(uv, m.uv[v])
		}
	}

	m.vertices.positions = kept
	m.indices.idx = idx
	m.normals, m.hasNorm = nil, false
	if m.hasUV && len(uv) > 0 {
		m.uv = uv
	} else {
		m.uv, m.hasUV = nil, false
	}
	return m
}
