package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIndexRange(t *testing.T) {
	assert.Equal(t, uint8(255), NewIndex[uint8](255))
	assert.Panics(t, func() { NewIndex[uint8](256) })
	assert.Panics(t, func() { NewIndex[uint16](-1) })

	assert.Equal(t, uint16(65535), NewIndex[uint16](65535))
	assert.Panics(t, func() { NewIndex[uint16](65536) })
	assert.Equal(t, uint32(65536), NewIndex[uint32](65536))
}

func TestMaxIndex(t *testing.T) {
	assert.Equal(t, uint64(255), MaxIndex[uint8]())
	assert.Equal(t, uint64(65535), MaxIndex[uint16]())
	assert.Equal(t, uint64(4294967295), MaxIndex[uint32]())
	assert.Equal(t, ^uint64(0), MaxIndex[uint64]())
}

func TestAddIndex(t *testing.T) {
	assert.Equal(t, uint8(255), AddIndex[uint8](200, 55))
	assert.Panics(t, func() { AddIndex[uint8](200, 56) })
	assert.Panics(t, func() { AddIndex[uint64](^uint64(0), 1) })
	assert.Equal(t, uint32(70000), AddIndex[uint32](65536, 4464))
}
