package viewer

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/procmesh/pkg/mesh"
)

// gpuMesh is a render snapshot uploaded into a VAO with an interleaved
// position/normal VBO and an element buffer.
type gpuMesh struct {
	vao, vbo, ebo uint32
	count         int32
	indexType     uint32
}

// interleave packs positions and normals as six floats per vertex. Missing
// normals are written as zero.
func interleave(d *mesh.RenderData) []float32 {
	out := make([]float32, 0, 6*len(d.Positions))
	for i, p := range d.Positions {
		var n [3]float32
		if i < len(d.Normals) {
			n = d.Normals[i]
		}
		out = append(out, p[0], p[1], p[2], n[0], n[1], n[2])
	}
	return out
}

func uploadMesh(d *mesh.RenderData) *gpuMesh {
	g := &gpuMesh{count: int32(d.IndexCount())}
	vertices := interleave(d)

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	if len(vertices) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)
	}

	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 6*4, nil)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, 6*4, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(1)

	gl.GenBuffers(1, &g.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	switch {
	case d.Format == mesh.IndexUint16 && len(d.Indices16) > 0:
		g.indexType = gl.UNSIGNED_SHORT
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(d.Indices16)*2, unsafe.Pointer(&d.Indices16[0]), gl.STATIC_DRAW)
	case d.Format == mesh.IndexUint32 && len(d.Indices32) > 0:
		g.indexType = gl.UNSIGNED_INT
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(d.Indices32)*4, unsafe.Pointer(&d.Indices32[0]), gl.STATIC_DRAW)
	default:
		g.indexType = gl.UNSIGNED_SHORT
	}

	// The element buffer binding is VAO state, so only the array buffer is unbound.
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return g
}

func (g *gpuMesh) draw() {
	if g.count == 0 {
		return
	}
	gl.BindVertexArray(g.vao)
	gl.DrawElements(gl.TRIANGLES, g.count, g.indexType, nil)
	gl.BindVertexArray(0)
}

func (g *gpuMesh) delete() {
	if g.ebo != 0 {
		gl.DeleteBuffers(1, &g.ebo)
	}
	if g.vbo != 0 {
		gl.DeleteBuffers(1, &g.vbo)
	}
	if g.vao != 0 {
		gl.DeleteVertexArrays(1, &g.vao)
	}
}
