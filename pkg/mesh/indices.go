package mesh

// Indices is an arena of index slots. In a triangle list, slot i covers
// positions 3i..3i+2. Slots are rewritten in place with Overwrite and new
// ones are appended with Push; nothing is ever removed.
type Indices[T Index] struct {
	idx []T
}

// NewIndices wraps a copy of idx.
func NewIndices[T Index](idx []T) *Indices[T] {
	return &Indices[T]{idx: append([]T(nil), idx...)}
}

// Len returns the number of indices.
func (in *Indices[T]) Len() int {
	return len(in.idx)
}

// At returns the i-th index.
func (in *Indices[T]) At(i int) T {
	return in.idx[i]
}

// Slice exposes the backing indices. Callers must not grow it.
func (in *Indices[T]) Slice() []T {
	return in.idx
}

// Triangle returns the indices of triangle i rotated left by rotate, so that
// the edge starting at corner rotate becomes edge 0.
func (in *Indices[T]) Triangle(i, rotate int) (T, T, T) {
	base := 3 * i
	return in.idx[base+rotate%3], in.idx[base+(rotate+1)%3], in.idx[base+(rotate+2)%3]
}

// Overwrite replaces triangle i without resizing the buffer.
func (in *Indices[T]) Overwrite(i int, a, b, c T) {
	in.idx[3*i] = a
	in.idx[3*i+1] = b
	in.idx[3*i+2] = c
}

// Push appends a triangle.
func (in *Indices[T]) Push(a, b, c T) {
	in.idx = append(in.idx, a, b, c)
}

// Extend appends copies of other's indices.
func (in *Indices[T]) Extend(other *Indices[T]) {
	in.idx = append(in.idx, other.idx...)
}

// Offset adds by to every index using checked addition.
func (in *Indices[T]) Offset(by T) {
	for i, v := range in.idx {
		in.idx[i] = AddIndex(v, by)
	}
}

// AddBackfaces appends a reversed copy of every index so each triangle is
// drawn from both sides.
func (in *Indices[T]) AddBackfaces() {
	n := len(in.idx)
	for i := n - 1; i >= 0; i-- {
		in.idx = append(in.idx, in.idx[i])
	}
}

// ResetToInterval replaces the buffer with 0..n-1.
func (in *Indices[T]) ResetToInterval(n int) {
	in.idx = make([]T, n)
	for i := range in.idx {
		in.idx[i] = NewIndex[T](i)
	}
}

// Max returns the largest index, or false for an empty buffer.
func (in *Indices[T]) Max() (T, bool) {
	if len(in.idx) == 0 {
		return 0, false
	}
	m := in.idx[0]
	for _, v := range in.idx[1:] {
		m = max(m, v)
	}
	return m, true
}

// ToStrip converts a triangle list into a strip by emitting a,a,b,c,c for
// each triangle. The repeated indices form degenerate bridges, so every
// source triangle is kept but no edges are shared between them.
func (in *Indices[T]) ToStrip() {
	out := make([]T, 0, len(in.idx)/3*5)
	for i := 0; i+2 < len(in.idx); i += 3 {
		a, b, c := in.idx[i], in.idx[i+1], in.idx[i+2]
		out = append(out, a, a, b, c, c)
	}
	in.idx = out
}

// ToList converts a triangle strip into a list by taking every 3-wide
// window. Strip winding alternation is not corrected and bridge windows are
// kept as degenerate triangles, so ToStrip followed by ToList does not
// reproduce the source triangles.
func (in *Indices[T]) ToList() {
	if len(in.idx) < 3 {
		in.idx = in.idx[:0]
		return
	}
	out := make([]T, 0, 3*(len(in.idx)-2))
	for i := 0; i+2 < len(in.idx); i++ {
		out = append(out, in.idx[i], in.idx[i+1], in.idx[i+2])
	}
	in.idx = out
}

func (in *Indices[T]) clone() *Indices[T] {
	return NewIndices(in.idx)
}
