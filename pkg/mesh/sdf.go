package mesh

import (
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"

	"github.com/Faultbox/procmesh/pkg/math"
)

// FromSDF polygonizes a signed distance solid with uniform marching cubes
// over cells cells along the longest axis. Every triangle gets its own three
// vertices carrying the face normal; call Optimize to share them.
func FromSDF[T Index](s sdf.SDF3, cells int) *Mesh[T] {
	triangles := render.ToTriangles(s, render.NewMarchingCubesUniform(cells))

	positions := make([]math.Vec3, 0, 3*len(triangles))
	normals := make([]math.Vec3, 0, 3*len(triangles))
	for _, tri := range triangles {
		n := tri.Normal()
		normal := math.V3(float32(n.X), float32(n.Y), float32(n.Z))
		for j := 0; j < 3; j++ {
			v := tri[j]
			positions = append(positions, math.V3(float32(v.X), float32(v.Y), float32(v.Z)))
			normals = append(normals, normal)
		}
	}

	m := BuildEx[T](positions, nil, nil, normals, TriangleList)
	m.indices.ResetToInterval(len(positions))
	return m
}
