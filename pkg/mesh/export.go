package mesh

import (
	"bufio"
	"fmt"
	"io"
)

// IndexFormat is the width of exported indices.
type IndexFormat int

const (
	IndexUint16 IndexFormat = iota
	IndexUint32
)

// RenderData is a read-only snapshot handed to a renderer. Exactly one of
// Indices16 and Indices32 is set, matching Format.
type RenderData struct {
	Positions [][3]float32
	UV        [][2]float32
	Normals   [][3]float32
	Format    IndexFormat
	Indices16 []uint16
	Indices32 []uint32
	Topology  Topology
}

// IndexCount returns the number of exported indices.
func (d *RenderData) IndexCount() int {
	if d.Format == IndexUint16 {
		return len(d.Indices16)
	}
	return len(d.Indices32)
}

// RenderData copies the buffers out using uint16 indices when the vertex
// count allows it and uint32 otherwise.
func (m *Mesh[T]) RenderData() *RenderData {
	d := &RenderData{
		Positions: make([][3]float32, m.vertices.Len()),
		Topology:  m.topology,
	}
	for i, p := range m.vertices.positions {
		d.Positions[i] = p.Array()
	}
	if m.hasUV {
		d.UV = append([][2]float32{}, m.uv...)
	}
	if m.hasNorm {
		d.Normals = make([][3]float32, len(m.normals))
		for i, n := range m.normals {
			d.Normals[i] = n.Array()
		}
	}

	if uint64(m.vertices.Len()) <= MaxIndex[uint16]()+1 {
		d.Format = IndexUint16
		d.Indices16 = make([]uint16, m.indices.Len())
		for i, v := range m.indices.idx {
			d.Indices16[i] = NewIndex[uint16](int(v))
		}
	} else {
		d.Format = IndexUint32
		d.Indices32 = make([]uint32, m.indices.Len())
		for i, v := range m.indices.idx {
			d.Indices32[i] = NewIndex[uint32](int(v))
		}
	}
	return d
}

// WriteOBJ writes the triangles as a Wavefront OBJ document. UV and normals
// are written when present. Degenerate index triples are skipped.
func (m *Mesh[T]) WriteOBJ(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %d vertices, %d triangles\n", m.vertices.Len(), m.TriangleCount())
	for _, p := range m.vertices.positions {
		fmt.Fprintf(bw, "v %g %g %g\n", p.X, p.Y, p.Z)
	}
	for _, t := range m.uv {
		fmt.Fprintf(bw, "vt %g %g\n", t[0], t[1])
	}
	for _, n := range m.normals {
		fmt.Fprintf(bw, "vn %g %g %g\n", n.X, n.Y, n.Z)
	}

	for _, f := range m.Faces() {
		if f[0] == f[1] || f[1] == f[2] || f[0] == f[2] {
			continue
		}
		bw.WriteString("f")
		for _, v := range f {
			bw.WriteString(" " + objRef(v+1, m.hasUV, m.hasNorm))
		}
		bw.WriteString("\n")
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write obj: %w", err)
	}
	return nil
}

func objRef(i int, uv, normal bool) string {
	switch {
	case uv && normal:
		return fmt.Sprintf("%d/%d/%d", i, i, i)
	case uv:
		return fmt.Sprintf("%d/%d", i, i)
	case normal:
		return fmt.Sprintf("%d//%d", i, i)
	default:
		return fmt.Sprintf("%d", i)
	}
}
