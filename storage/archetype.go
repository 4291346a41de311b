package storage

import (
	"github.com/tempest-engine/tempest/bitset"
	"github.com/tempest-engine/tempest/types"
)

// DefaultChunkBytes is the per-chunk component storage budget used to
// derive row capacity when the world does not override it.
const DefaultChunkBytes = 16384

// Archetype owns every entity sharing one signature, stored across a
// growable list of identically laid out chunks. Chunks up to the active
// one are full; chunks past it are retained empties kept for reuse.
type Archetype struct {
	id        types.ArchetypeID
	signature Signature
	bits      *bitset.BitSet
	chunks    []*Chunk
	capacity  uint32
	active    int
	queryRefs []uint32
}

// NewArchetype builds an archetype for sig with one pre-allocated chunk.
// Row capacity is chunkBytes divided by the signature's row stride,
// never less than 1. A signature of only zero-sized components has no
// stride; its chunks hold chunkBytes rows.
func NewArchetype(id types.ArchetypeID, sig Signature, chunkBytes uint32) *Archetype {
	var stride uint32
	for _, t := range sig.Types() {
		stride += t.Size()
	}
	capacity := chunkBytes
	if stride > 0 {
		capacity = chunkBytes / stride
	}
	if capacity < 1 {
		capacity = 1
	}

	a := &Archetype{
		id:        id,
		signature: sig,
		bits:      sig.Bits(),
		capacity:  capacity,
	}
	a.chunks = append(a.chunks, NewChunk(&a.signature, capacity))
	return a
}

// ID returns the archetype's index in the world's archetype list.
func (a *Archetype) ID() types.ArchetypeID { return a.id }

// Signature returns the archetype's canonical component set.
func (a *Archetype) Signature() *Signature { return &a.signature }

// Bits returns the signature as a BitSet for query matching.
func (a *Archetype) Bits() *bitset.BitSet { return a.bits }

// Chunks returns the chunk list, including retained empties.
func (a *Archetype) Chunks() []*Chunk { return a.chunks }

// Count returns the number of live entities across all chunks.
func (a *Archetype) Count() int {
	n := 0
	for _, c := range a.chunks {
		n += int(c.Size())
	}
	return n
}

// ChunkCapacity returns the fixed per-chunk row capacity.
func (a *Archetype) ChunkCapacity() uint32 { return a.capacity }

// Add appends e to the active chunk, rolling over to a retained empty or
// a freshly allocated chunk when full. It returns the new row's
// location. Appended rows are zeroed, since a reused row may hold bytes
// of a previously removed entity.
func (a *Archetype) Add(e types.Entity) (chunkIdx int, row uint32) {
	if a.chunks[a.active].Full() {
		if a.active == len(a.chunks)-1 {
			a.chunks = append(a.chunks, NewChunk(&a.signature, a.capacity))
		}
		a.active++
	}
	c := a.chunks[a.active]
	row = c.Add(e)
	c.ZeroRow(row)
	return a.active, row
}

// Remove deletes the row at (chunkIdx, row). The gap is filled by the
// archetype's globally last row: an in-chunk swap when the row lives in
// the active chunk, otherwise a transfer from the active chunk's tail.
// It returns the entity that moved into the gap, if any; the caller must
// rewrite that entity's world slot to (chunkIdx, row). Emptied chunks
// are retained for reuse, never freed.
func (a *Archetype) Remove(chunkIdx int, row uint32) (moved types.Entity, ok bool) {
	target := a.chunks[chunkIdx]
	tail := a.chunks[a.active]

	if chunkIdx == a.active {
		ok = target.Remove(row)
		if ok {
			moved = target.Entity(row)
		}
	} else {
		moved = target.TransferLast(row, tail)
		ok = true
	}
	if tail.Size() == 0 && a.active > 0 {
		a.active--
	}
	return moved, ok
}

// MoveTo appends the entity at (chunkIdx, row) to dst, copying every
// shared component value. The source row is left in place; the caller
// removes it afterward and fixes up the swapped entity's slot.
func (a *Archetype) MoveTo(chunkIdx int, row uint32, dst *Archetype) (dstChunkIdx int, dstRow uint32) {
	src := a.chunks[chunkIdx]
	dstChunkIdx, dstRow = dst.Add(src.Entity(row))
	dst.chunks[dstChunkIdx].CopyRowFrom(src, row, dstRow)
	return dstChunkIdx, dstRow
}

// AddQueryRef records the cache key of a query whose match list includes
// this archetype.
func (a *Archetype) AddQueryRef(key uint32) {
	a.queryRefs = append(a.queryRefs, key)
}

// QueryRefs returns the cache keys of queries matching this archetype.
func (a *Archetype) QueryRefs() []uint32 { return a.queryRefs }
