package mesh

import (
	"fmt"
	"math/bits"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Index is the set of unsigned widths an index buffer can use. Small shapes
// fit in uint8 or uint16; large ones need uint32 or uint64.
type Index interface {
	constraints.Unsigned
}

// MaxIndex returns the largest value representable by T.
func MaxIndex[T Index]() uint64 {
	var zero T
	size := unsafe.Sizeof(zero) * 8
	if size >= 64 {
		return ^uint64(0)
	}
	return 1<<size - 1
}

// NewIndex converts v to T. It panics if v does not fit.
func NewIndex[T Index](v int) T {
	if v < 0 || uint64(v) > MaxIndex[T]() {
		var zero T
		panic(fmt.Sprintf("mesh: index %d out of range for %T (max %d)", v, zero, MaxIndex[T]()))
	}
	return T(v)
}

// AddIndex returns a+b. It panics on overflow.
func AddIndex[T Index](a, b T) T {
	sum, carry := bits.Add64(uint64(a), uint64(b), 0)
	if carry != 0 || sum > MaxIndex[T]() {
		var zero T
		panic(fmt.Sprintf("mesh: index overflow %d+%d for %T", a, b, zero))
	}
	return T(sum)
}
