package meshopt

import (
	"github.com/Faultbox/procmesh/pkg/mesh"
)

// Settings selects the passes Optimize runs.
type Settings struct {
	// RemoveDegenerate drops triangles that repeat an index.
	RemoveDegenerate bool
	// OptimizeVertexCache reorders triangles for a FIFO post-transform
	// cache of CacheSize entries.
	OptimizeVertexCache bool
	CacheSize           int
	// OptimizeVertexFetch renumbers vertices in first-use order and drops
	// unreferenced ones.
	OptimizeVertexFetch bool
}

// DefaultSettings enables every pass with a 16-entry cache.
func DefaultSettings() Settings {
	return Settings{
		RemoveDegenerate:    true,
		OptimizeVertexCache: true,
		CacheSize:           16,
		OptimizeVertexFetch: true,
	}
}

// Optimize runs the enabled passes on m in place. The mesh must be a
// triangle list; UV and normals are dropped.
func Optimize[T mesh.Index](m *mesh.Mesh[T], s Settings) {
	if m.Topology() != mesh.TriangleList {
		panic("meshopt: Optimize needs a triangle list, got " + m.Topology().String())
	}
	d := Export(m)
	d.Optimize(s)
	Import(m, d)
}

// Optimize runs the enabled passes on d.
func (d *Data) Optimize(s Settings) {
	if s.RemoveDegenerate {
		d.Indices = removeDegenerate(d.Indices)
	}
	if s.OptimizeVertexCache {
		cache := s.CacheSize
		if cache < 3 {
			cache = DefaultSettings().CacheSize
		}
		d.Indices = tipsify(d.Indices, len(d.Vertices), cache)
	}
	if s.OptimizeVertexFetch {
		d.Vertices = optimizeFetch(d.Indices, d.Vertices)
	}
}

func removeDegenerate(indices []uint32) []uint32 {
	out := indices[:0]
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		if a == b || b == c || a == c {
			continue
		}
		out = append(out, a, b, c)
	}
	return out
}

// tipsify orders triangles by fanning around vertices that are still in a
// FIFO cache of cacheSize entries, falling back to recently used vertices
// and then to a linear scan when the fan dies out.
func tipsify(indices []uint32, vertexCount, cacheSize int) []uint32 {
	triCount := len(indices) / 3
	if triCount == 0 {
		return indices
	}

	live := make([]int, vertexCount)
	for _, v := range indices[:3*triCount] {
		live[v]++
	}
	offsets := make([]int, vertexCount+1)
	for v, n := range live {
		offsets[v+1] = offsets[v] + n
	}
	adjacency := make([]int, offsets[vertexCount])
	fill := append([]int(nil), offsets[:vertexCount]...)
	for t := 0; t < triCount; t++ {
		for _, v := range indices[3*t : 3*t+3] {
			adjacency[fill[v]] = t
			fill[v]++
		}
	}

	var (
		out       = make([]uint32, 0, 3*triCount)
		emitted   = make([]bool, triCount)
		cacheTime = make([]int, vertexCount)
		timestamp = cacheSize + 1
		deadEnd   []uint32
		cursor    = 0
		fan       = int(indices[0])
	)
	for fan >= 0 {
		var candidates []uint32
		for _, t := range adjacency[offsets[fan]:offsets[fan+1]] {
			if emitted[t] {
				continue
			}
			emitted[t] = true
			for _, v := range indices[3*t : 3*t+3] {
				out = append(out, v)
				deadEnd = append(deadEnd, v)
				candidates = append(candidates, v)
				live[v]--
				if timestamp-cacheTime[v] > cacheSize {
					cacheTime[v] = timestamp
					timestamp++
				}
			}
		}

		fan = -1
		best := -1
		for _, v := range candidates {
			if live[v] == 0 {
				continue
			}
			priority := 0
			if age := timestamp - cacheTime[v]; age+2*live[v] <= cacheSize {
				priority = age
			}
			if priority > best {
				best, fan = priority, int(v)
			}
		}
		if fan >= 0 {
			continue
		}

		for len(deadEnd) > 0 && fan < 0 {
			v := deadEnd[len(deadEnd)-1]
			deadEnd = deadEnd[:len(deadEnd)-1]
			if live[v] > 0 {
				fan = int(v)
			}
		}
		for fan < 0 && cursor < vertexCount {
			if live[cursor] > 0 {
				fan = cursor
			}
			cursor++
		}
	}
	return out
}

// optimizeFetch renumbers vertices by first use in indices and returns the
// reordered vertex buffer. Unreferenced vertices are dropped.
func optimizeFetch(indices []uint32, vertices []Vertex) []Vertex {
	const unset = ^uint32(0)
	remap := make([]uint32, len(vertices))
	for i := range remap {
		remap[i] = unset
	}

	out := make([]Vertex, 0, len(vertices))
	for i, v := range indices {
		if remap[v] == unset {
			remap[v] = uint32(len(out))
			out = append(out, vertices[v])
		}
		indices[i] = remap[v]
	}
	return out
}
