package mesh

import "fmt"

// Topology says how the index buffer groups vertices into primitives.
type Topology int

const (
	TriangleList Topology = iota
	TriangleStrip
	LineList
	LineStrip
	PointList
)

// String implements fmt.Stringer.
func (t Topology) String() string {
	switch t {
	case TriangleList:
		return "triangle-list"
	case TriangleStrip:
		return "triangle-strip"
	case LineList:
		return "line-list"
	case LineStrip:
		return "line-strip"
	case PointList:
		return "point-list"
	default:
		return fmt.Sprintf("topology(%d)", int(t))
	}
}

// convertTopology rewrites idx from one topology to another. Only
// triangle list and strip convert into each other; any other pair panics.
func convertTopology[T Index](idx *Indices[T], from, to Topology) {
	switch {
	case from == to:
	case from == TriangleList && to == TriangleStrip:
		idx.ToStrip()
	case from == TriangleStrip && to == TriangleList:
		idx.ToList()
	default:
		panic(fmt.Sprintf("mesh: topology conversion %s -> %s not implemented", from, to))
	}
}
