package query

import (
	"github.com/tempest-engine/tempest/storage"
	"github.com/tempest-engine/tempest/types"
)

// ArchetypeAccessor resolves archetype ids to their storage. The world
// implements it; queries hold ids only, so iteration borrows the world
// without owning it.
type ArchetypeAccessor interface {
	ArchetypeByID(types.ArchetypeID) *storage.Archetype
}

// ArchetypeIterator walks a query's matching archetypes in creation
// order. Iterators are lazy, single-pass, and never allocate after
// construction; mutating the world mid-iteration invalidates them.
type ArchetypeIterator struct {
	current  int
	accessor ArchetypeAccessor
	ids      []types.ArchetypeID
}

// Archetypes returns an iterator over the query's matches.
func (q *Query) Archetypes(acc ArchetypeAccessor) ArchetypeIterator {
	return ArchetypeIterator{accessor: acc, ids: q.matches}
}

// HasNext reports whether another archetype remains.
func (it *ArchetypeIterator) HasNext() bool {
	return it.current < len(it.ids)
}

// Next returns the next matching archetype.
func (it *ArchetypeIterator) Next() *storage.Archetype {
	a := it.accessor.ArchetypeByID(it.ids[it.current])
	it.current++
	return a
}

// ChunkIterator flattens matching archetypes into their non-empty
// chunks, archetype-major then chunk-major.
type ChunkIterator struct {
	archs ArchetypeIterator
	cur   []*storage.Chunk
	idx   int
}

// Chunks returns an iterator over the non-empty chunks of the query's
// matches.
func (q *Query) Chunks(acc ArchetypeAccessor) ChunkIterator {
	return ChunkIterator{archs: q.Archetypes(acc)}
}

// HasNext reports whether another non-empty chunk remains.
func (it *ChunkIterator) HasNext() bool {
	for {
		for it.idx < len(it.cur) {
			if it.cur[it.idx].Size() > 0 {
				return true
			}
			it.idx++
		}
		if !it.archs.HasNext() {
			return false
		}
		it.cur = it.archs.Next().Chunks()
		it.idx = 0
	}
}

// Next returns the next non-empty chunk. Call HasNext first.
func (it *ChunkIterator) Next() *storage.Chunk {
	c := it.cur[it.idx]
	it.idx++
	return c
}

// EntityIterator yields every live row of the matching archetypes as
// (entity, row, chunk) triples, archetype-major, chunk-major, rows in
// current in-chunk order.
type EntityIterator struct {
	chunks ChunkIterator
	chunk  *storage.Chunk
	row    uint32
}

// Entities returns an iterator over every entity the query matches.
func (q *Query) Entities(acc ArchetypeAccessor) EntityIterator {
	return EntityIterator{chunks: q.Chunks(acc)}
}

// HasNext reports whether another row remains.
func (it *EntityIterator) HasNext() bool {
	if it.chunk != nil && it.row < it.chunk.Size() {
		return true
	}
	if !it.chunks.HasNext() {
		return false
	}
	it.chunk = it.chunks.Next()
	it.row = 0
	return true
}

// Next returns the next (entity, row, chunk) triple. Call HasNext first.
func (it *EntityIterator) Next() (types.Entity, uint32, *storage.Chunk) {
	row := it.row
	it.row++
	return it.chunk.Entity(row), row, it.chunk
}

// Each invokes fn for every matching row. Returning false stops the
// iteration early.
func (q *Query) Each(acc ArchetypeAccessor, fn func(e types.Entity, c *storage.Chunk, row uint32) bool) {
	it := q.Entities(acc)
	for it.HasNext() {
		e, row, chunk := it.Next()
		if !fn(e, chunk, row) {
			return
		}
	}
}

// Count returns the number of entities the query currently matches.
func (q *Query) Count(acc ArchetypeAccessor) int {
	n := 0
	it := q.Archetypes(acc)
	for it.HasNext() {
		n += it.Next().Count()
	}
	return n
}

// First returns the first matching entity in iteration order, or
// (types.Nil, false) when nothing matches.
func (q *Query) First(acc ArchetypeAccessor) (types.Entity, bool) {
	it := q.Entities(acc)
	if !it.HasNext() {
		return types.Nil, false
	}
	e, _, _ := it.Next()
	return e, true
}
