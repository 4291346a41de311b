package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tempest-engine/tempest/storage"
	"github.com/tempest-engine/tempest/types"
)

type vec2 struct {
	X, Y float32
}

var (
	posType = types.NewComponentType(0, "Position", 8, 4)
	velType = types.NewComponentType(1, "Velocity", 8, 4)
	tagType = types.NewComponentType(5, "Frozen", 0, 1)
)

func entity(id uint32) types.Entity {
	return types.Entity{ID: types.EntityID(id), Version: 1}
}

func TestChunkAddAndGet(t *testing.T) {
	sig := storage.NewSignature(posType, velType)
	c := storage.NewChunk(&sig, 8)
	assert.Equal(t, uint32(8), c.Capacity())

	row := c.Add(entity(1))
	assert.Equal(t, uint32(0), row)
	assert.Equal(t, uint32(1), c.Size())
	assert.Equal(t, entity(1), c.Entity(0))

	p, ok := storage.At[vec2](c, posType, row)
	require.True(t, ok)
	*p = vec2{X: 1, Y: 2}

	got, ok := storage.At[vec2](c, posType, row)
	require.True(t, ok)
	assert.Equal(t, vec2{X: 1, Y: 2}, *got)
}

func TestChunkHas(t *testing.T) {
	sig := storage.NewSignature(posType, tagType)
	c := storage.NewChunk(&sig, 4)
	assert.True(t, c.Has(posType))
	assert.True(t, c.Has(tagType))
	assert.False(t, c.Has(velType))
	// Ids past the lookup table are simply absent.
	assert.False(t, c.HasID(100))
}

func TestChunkRemoveSwapsLastIntoGap(t *testing.T) {
	sig := storage.NewSignature(posType)
	c := storage.NewChunk(&sig, 4)
	for i := uint32(0); i < 3; i++ {
		row := c.Add(entity(i + 1))
		p, _ := storage.At[vec2](c, posType, row)
		*p = vec2{X: float32(i + 1)}
	}

	swapped := c.Remove(0)
	assert.True(t, swapped)
	assert.Equal(t, uint32(2), c.Size())
	// Entity 3 and its component value moved into row 0.
	assert.Equal(t, entity(3), c.Entity(0))
	p, _ := storage.At[vec2](c, posType, 0)
	assert.Equal(t, float32(3), p.X)

	// Removing the last row swaps nothing.
	swapped = c.Remove(1)
	assert.False(t, swapped)
	assert.Equal(t, uint32(1), c.Size())
}

func TestChunkCopyRowFromSharedColumnsOnly(t *testing.T) {
	src := storage.NewSignature(posType, velType)
	dst := storage.NewSignature(posType, tagType)
	srcChunk := storage.NewChunk(&src, 4)
	dstChunk := storage.NewChunk(&dst, 4)

	srcRow := srcChunk.Add(entity(1))
	p, _ := storage.At[vec2](srcChunk, posType, srcRow)
	*p = vec2{X: 7, Y: 9}
	v, _ := storage.At[vec2](srcChunk, velType, srcRow)
	*v = vec2{X: -1, Y: -1}

	dstRow := dstChunk.Add(entity(1))
	dstChunk.CopyRowFrom(srcChunk, srcRow, dstRow)

	got, _ := storage.At[vec2](dstChunk, posType, dstRow)
	assert.Equal(t, vec2{X: 7, Y: 9}, *got)
	// Velocity exists only on the source and is dropped.
	assert.False(t, dstChunk.Has(velType))
}

func TestChunkTransferLast(t *testing.T) {
	sig := storage.NewSignature(posType)
	a := storage.NewChunk(&sig, 4)
	b := storage.NewChunk(&sig, 4)

	for i := uint32(0); i < 2; i++ {
		row := b.Add(entity(i + 10))
		p, _ := storage.At[vec2](b, posType, row)
		*p = vec2{X: float32(i + 10)}
	}
	gap := a.Add(entity(1))

	moved := a.TransferLast(gap, b)
	assert.Equal(t, entity(11), moved)
	assert.Equal(t, uint32(1), b.Size())
	assert.Equal(t, entity(11), a.Entity(gap))
	p, _ := storage.At[vec2](a, posType, gap)
	assert.Equal(t, float32(11), p.X)
}

func TestChunkZeroRow(t *testing.T) {
	sig := storage.NewSignature(posType)
	c := storage.NewChunk(&sig, 2)
	row := c.Add(entity(1))
	p, _ := storage.At[vec2](c, posType, row)
	*p = vec2{X: 42}
	c.Remove(row)

	// Re-adding lands on the stale row; zeroing clears it.
	row = c.Add(entity(2))
	c.ZeroRow(row)
	p, _ = storage.At[vec2](c, posType, row)
	assert.Equal(t, vec2{}, *p)
}

func TestZeroSizedComponents(t *testing.T) {
	sig := storage.NewSignature(posType, tagType)
	c := storage.NewChunk(&sig, 4)
	row := c.Add(entity(1))

	assert.True(t, c.Has(tagType))
	p, ok := c.Pointer(tagType.ID(), row)
	assert.True(t, ok)
	assert.NotNil(t, p)

	// Removal with a zero-sized column present must not panic.
	c.Add(entity(2))
	c.Remove(0)
	assert.Equal(t, uint32(1), c.Size())
}

func TestChunkSlice(t *testing.T) {
	sig := storage.NewSignature(posType)
	c := storage.NewChunk(&sig, 8)
	for i := uint32(0); i < 5; i++ {
		row := c.Add(entity(i))
		p, _ := storage.At[vec2](c, posType, row)
		*p = vec2{X: float32(i)}
	}

	s, ok := storage.Slice[vec2](c, posType)
	require.True(t, ok)
	require.Len(t, s, 5)
	for i := range s {
		s[i].Y = s[i].X * 2
	}
	p, _ := storage.At[vec2](c, posType, 4)
	assert.Equal(t, float32(8), p.Y)

	assert.Len(t, c.Entities(), 5)
}
