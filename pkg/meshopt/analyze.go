package meshopt

import (
	"image"
	"image/draw"

	"golang.org/x/image/vector"

	"github.com/Faultbox/procmesh/pkg/mesh"
)

// AnalyzeOptions parameterizes the hardware models used by Analyze.
type AnalyzeOptions struct {
	// WarpSize is the number of vertices a warp transforms at once.
	WarpSize int
	// PrimGroupSize is the number of triangles after which the warp cache
	// is flushed.
	PrimGroupSize int
	// VertexSize is the stride in bytes of one vertex in the fetch model.
	VertexSize int
	// Grid is the resolution of each axis view in the overdraw model.
	Grid int
}

// DefaultAnalyzeOptions models a desktop GPU with 32-wide warps, 1024
// triangle primitive groups and position, normal, UV and tangent per vertex.
func DefaultAnalyzeOptions() AnalyzeOptions {
	return AnalyzeOptions{
		WarpSize:      32,
		PrimGroupSize: 1024,
		VertexSize:    4 * (3 + 3 + 2 + 4),
		Grid:          64,
	}
}

// Analysis is the flat result record of Analyze.
type Analysis struct {
	VertexCount int
	IndexCount  int

	PixelsCovered int
	PixelsShaded  int
	// Overdraw is shaded over covered pixels.
	Overdraw float32

	VerticesTransformed int
	WarpsExecuted       int
	// ACMR is transformed vertices per triangle.
	ACMR float32
	// ATVR is transformed vertices per referenced vertex.
	ATVR float32

	BytesFetched int
	// Overfetch is fetched bytes over the bytes of referenced vertices.
	Overfetch float32
}

// Analyze estimates the efficiency of m as a triangle list.
func Analyze[T mesh.Index](m *mesh.Mesh[T], opts AnalyzeOptions) Analysis {
	def := DefaultAnalyzeOptions()
	if opts.WarpSize <= 0 {
		opts.WarpSize = def.WarpSize
	}
	if opts.VertexSize <= 0 {
		opts.VertexSize = def.VertexSize
	}
	if opts.Grid <= 0 {
		opts.Grid = def.Grid
	}

	d := Export(m)
	a := Analysis{VertexCount: len(d.Vertices), IndexCount: len(d.Indices)}
	d.analyzeVertexCache(&a, opts.WarpSize, opts.PrimGroupSize)
	d.analyzeVertexFetch(&a, opts.VertexSize)
	d.analyzeOverdraw(&a, opts.Grid)
	return a
}

// analyzeVertexCache models warps that transform up to warpSize distinct
// vertices. A triangle that does not fit, or a full primitive group,
// starts a new warp with an empty cache.
func (d *Data) analyzeVertexCache(a *Analysis, warpSize, primGroupSize int) {
	var (
		stamp      = make([]int, len(d.Vertices))
		epoch      = 1
		warpOffset int
		primOffset int
		used       = make([]bool, len(d.Vertices))
	)
	for i := 0; i+2 < len(d.Indices); i += 3 {
		tri := d.Indices[i : i+3]
		missing := 0
		for _, v := range tri {
			if stamp[v] != epoch {
				missing++
			}
		}
		if (primGroupSize > 0 && primOffset == primGroupSize) || warpOffset+missing > warpSize {
			if warpOffset > 0 {
				a.WarpsExecuted++
			}
			warpOffset, primOffset = 0, 0
			epoch++
		}
		for _, v := range tri {
			used[v] = true
			if stamp[v] != epoch {
				stamp[v] = epoch
				a.VerticesTransformed++
				warpOffset++
			}
		}
		primOffset++
	}
	if warpOffset > 0 {
		a.WarpsExecuted++
	}

	if tris := len(d.Indices) / 3; tris > 0 {
		a.ACMR = float32(a.VerticesTransformed) / float32(tris)
	}
	if n := count(used); n > 0 {
		a.ATVR = float32(a.VerticesTransformed) / float32(n)
	}
}

// fetchCacheSize and fetchLine describe a direct-mapped vertex fetch cache.
const (
	fetchCacheSize = 128 * 1024
	fetchLine      = 64
)

func (d *Data) analyzeVertexFetch(a *Analysis, vertexSize int) {
	var lines [fetchCacheSize / fetchLine]int
	used := make([]bool, len(d.Vertices))
	for _, v := range d.Indices {
		used[v] = true
		start := int(v) * vertexSize
		end := start + vertexSize
		for tag := start / fetchLine; tag < (end+fetchLine-1)/fetchLine; tag++ {
			line := tag % len(lines)
			if lines[line] != tag+1 {
				a.BytesFetched += fetchLine
				lines[line] = tag + 1
			}
		}
	}
	if n := count(used); n > 0 {
		a.Overfetch = float32(a.BytesFetched) / float32(n*vertexSize)
	}
}

// analyzeOverdraw rasterizes every triangle into a grid x grid view along
// each axis and counts covered pixels and shaded fragments. There is no
// depth test, so hidden fragments count as shaded.
func (d *Data) analyzeOverdraw(a *Analysis, grid int) {
	if len(d.Vertices) == 0 || len(d.Indices) < 3 {
		return
	}

	lo, hi := d.Vertices[0].P, d.Vertices[0].P
	for _, v := range d.Vertices[1:] {
		for k := 0; k < 3; k++ {
			lo[k] = min(lo[k], v.P[k])
			hi[k] = max(hi[k], v.P[k])
		}
	}
	extent := max(hi[0]-lo[0], hi[1]-lo[1], hi[2]-lo[2])
	if extent == 0 {
		return
	}
	scale := float32(grid) / extent

	z := vector.NewRasterizer(grid, grid)
	z.DrawOp = draw.Src
	mask := image.NewAlpha(image.Rect(0, 0, grid, grid))
	for axis := 0; axis < 3; axis++ {
		u, w := (axis+1)%3, (axis+2)%3
		covered := make([]bool, grid*grid)
		for i := 0; i+2 < len(d.Indices); i += 3 {
			var xs, ys [3]float32
			for j := 0; j < 3; j++ {
				p := d.Vertices[d.Indices[i+j]].P
				xs[j] = (p[u] - lo[u]) * scale
				ys[j] = (p[w] - lo[w]) * scale
			}

			z.Reset(grid, grid)
			z.MoveTo(xs[0], ys[0])
			z.LineTo(xs[1], ys[1])
			z.LineTo(xs[2], ys[2])
			z.ClosePath()
			z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

			for k, alpha := range mask.Pix {
				if alpha < 0x80 {
					continue
				}
				a.PixelsShaded++
				covered[k] = true
			}
		}
		a.PixelsCovered += count(covered)
	}
	if a.PixelsCovered > 0 {
		a.Overdraw = float32(a.PixelsShaded) / float32(a.PixelsCovered)
	}
}

func count(flags []bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}
