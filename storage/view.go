package storage

import (
	"unsafe"

	"github.com/tempest-engine/tempest/types"
)

// At returns a typed interior reference to the component value at row.
// The second return is false when the chunk has no column for t. The
// reference is valid until the next structural change.
func At[T any](c *Chunk, t types.ComponentType, row uint32) (*T, bool) {
	p, ok := c.Pointer(t.ID(), row)
	if !ok {
		return nil, false
	}
	return (*T)(p), true
}

// Slice returns the live rows of t's column as a typed slice, the
// structure-of-arrays view iteration hot loops read and write in place.
// The slice aliases chunk storage and is invalidated by the next
// structural change.
func Slice[T any](c *Chunk, t types.ComponentType) ([]T, bool) {
	p, ok := c.Pointer(t.ID(), 0)
	if !ok {
		return nil, false
	}
	return unsafe.Slice((*T)(p), c.size), true
}

// Entities returns the live entity back-references of the chunk. The
// slice aliases chunk storage; treat it as read-only.
func (c *Chunk) Entities() []types.Entity {
	return c.entities[:c.size]
}
