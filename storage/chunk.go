package storage

import (
	"unsafe"

	"github.com/tempest-engine/tempest/types"
)

// zeroBase backs every zero-sized column. All rows of all zero-sized
// components share this address.
var zeroBase [1]byte

// column is one densely packed component array. data holds
// capacity*stride bytes; element addresses are base + row*stride.
// Zero-sized components carry a nil data slice and stride 0.
type column struct {
	id     types.ComponentID
	stride uintptr
	data   []byte
}

func (c *column) pointer(row uint32) unsafe.Pointer {
	if c.stride == 0 {
		return unsafe.Pointer(&zeroBase[0])
	}
	return unsafe.Pointer(&c.data[uintptr(row)*c.stride])
}

// Chunk is a fixed-capacity structure-of-arrays block: one parallel
// component column per type in the signature plus an entity
// back-reference array. Rows [0, size) hold valid data; rows
// [size, capacity) are unspecified.
//
// Component values are stored as raw bytes, so component types must be
// plain data without interior pointers.
type Chunk struct {
	capacity   uint32
	size       uint32
	entities   []types.Entity
	columns    []column
	idToColumn []int32
}

// NewChunk allocates a chunk for the given signature. The caller (the
// owning archetype) picks the capacity; it must be at least 1.
func NewChunk(sig *Signature, capacity uint32) *Chunk {
	ts := sig.Types()

	maxID := types.ComponentID(-1)
	for _, t := range ts {
		if t.ID() > maxID {
			maxID = t.ID()
		}
	}
	idToColumn := make([]int32, maxID+1)
	for i := range idToColumn {
		idToColumn[i] = -1
	}

	columns := make([]column, len(ts))
	for i, t := range ts {
		columns[i] = column{id: t.ID(), stride: uintptr(t.Size())}
		if !t.IsZeroSized() {
			columns[i].data = make([]byte, uintptr(capacity)*columns[i].stride)
		}
		idToColumn[t.ID()] = int32(i)
	}

	return &Chunk{
		capacity:   capacity,
		entities:   make([]types.Entity, capacity),
		columns:    columns,
		idToColumn: idToColumn,
	}
}

// Size returns the number of live rows.
func (c *Chunk) Size() uint32 { return c.size }

// Capacity returns the fixed row capacity.
func (c *Chunk) Capacity() uint32 { return c.capacity }

// Full reports whether no row is free.
func (c *Chunk) Full() bool { return c.size == c.capacity }

// Entity returns the back-reference stored at row.
func (c *Chunk) Entity(row uint32) types.Entity { return c.entities[row] }

// setEntity rewrites the back-reference at row.
func (c *Chunk) setEntity(row uint32, e types.Entity) { c.entities[row] = e }

// Add appends e and returns its row. The caller ensures the chunk is not
// full; Add never fails.
func (c *Chunk) Add(e types.Entity) uint32 {
	row := c.size
	c.entities[row] = e
	c.size++
	return row
}

// Remove deletes row by swapping the last row into the gap and shrinking
// the chunk. It returns true if a swap happened, in which case the
// caller must rewrite the moved entity's world slot. The vacated last
// row is not zeroed.
func (c *Chunk) Remove(row uint32) bool {
	last := c.size - 1
	c.size--
	if row == last {
		return false
	}
	c.entities[row] = c.entities[last]
	for i := range c.columns {
		col := &c.columns[i]
		if col.stride == 0 {
			continue
		}
		dst := col.data[uintptr(row)*col.stride : uintptr(row+1)*col.stride]
		src := col.data[uintptr(last)*col.stride : uintptr(last+1)*col.stride]
		copy(dst, src)
	}
	return true
}

// Has reports whether the chunk owns a column for t.
func (c *Chunk) Has(t types.ComponentType) bool {
	return c.HasID(t.ID())
}

// HasID reports whether the chunk owns a column for the component id.
func (c *Chunk) HasID(id types.ComponentID) bool {
	return int(id) < len(c.idToColumn) && c.idToColumn[id] != -1
}

// Pointer returns the address of the component value at row, or false if
// the chunk has no column for the id. The reference stays valid until
// the next structural change.
func (c *Chunk) Pointer(id types.ComponentID, row uint32) (unsafe.Pointer, bool) {
	if !c.HasID(id) {
		return nil, false
	}
	return c.columns[c.idToColumn[id]].pointer(row), true
}

// SetBytes copies a raw component value into the column for id at row.
// The source must be exactly one element long.
func (c *Chunk) SetBytes(id types.ComponentID, row uint32, src []byte) bool {
	if !c.HasID(id) {
		return false
	}
	col := &c.columns[c.idToColumn[id]]
	if col.stride == 0 {
		return true
	}
	copy(col.data[uintptr(row)*col.stride:uintptr(row+1)*col.stride], src)
	return true
}

// ZeroRow clears every column at row to the component zero value. Used
// when a freshly appended row lands on memory left over from a removed
// entity.
func (c *Chunk) ZeroRow(row uint32) {
	for i := range c.columns {
		col := &c.columns[i]
		if col.stride == 0 {
			continue
		}
		dst := col.data[uintptr(row)*col.stride : uintptr(row+1)*col.stride]
		for j := range dst {
			dst[j] = 0
		}
	}
}

// CopyRowFrom copies the shared component values of src's srcRow into
// dstRow of this chunk. Columns present only here are untouched; columns
// present only in src are dropped.
func (c *Chunk) CopyRowFrom(src *Chunk, srcRow, dstRow uint32) {
	for i := range c.columns {
		dst := &c.columns[i]
		if dst.stride == 0 || !src.HasID(dst.id) {
			continue
		}
		from := &src.columns[src.idToColumn[dst.id]]
		copy(
			dst.data[uintptr(dstRow)*dst.stride:uintptr(dstRow+1)*dst.stride],
			from.data[uintptr(srcRow)*from.stride:uintptr(srcRow+1)*from.stride],
		)
	}
}

// TransferLast moves the last row of src into dstRow of this chunk for
// every column this chunk owns, shrinking src. Both chunks share a
// layout when called by the owning archetype. It returns the entity of
// the moved row so the world can rewrite its slot.
func (c *Chunk) TransferLast(dstRow uint32, src *Chunk) types.Entity {
	last := src.size - 1
	moved := src.entities[last]
	c.entities[dstRow] = moved
	c.CopyRowFrom(src, last, dstRow)
	src.size--
	return moved
}
