package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tempest-engine/tempest/query"
	"github.com/tempest-engine/tempest/storage"
	"github.com/tempest-engine/tempest/types"
)

// archList is a minimal ArchetypeAccessor for iterator tests.
type archList []*storage.Archetype

func (l archList) ArchetypeByID(id types.ArchetypeID) *storage.Archetype {
	return l[id]
}

func (l archList) fill(archIdx int, n int, firstID uint32) {
	for i := 0; i < n; i++ {
		l[archIdx].Add(types.Entity{ID: types.EntityID(firstID + uint32(i)), Version: 1})
	}
}

func newArchList(chunkBytes uint32, sigs ...storage.Signature) archList {
	l := make(archList, len(sigs))
	for i, sig := range sigs {
		l[i] = storage.NewArchetype(types.ArchetypeID(i), sig, chunkBytes)
	}
	return l
}

func matchAll(t *testing.T, l archList, d *query.Description) *query.Query {
	t.Helper()
	q, err := query.Compile(d)
	require.NoError(t, err)
	for _, a := range l {
		if q.Valid(a.Bits()) {
			q.AddMatch(a.ID())
		}
	}
	return q
}

func TestPredicateMatching(t *testing.T) {
	l := newArchList(256,
		storage.NewSignature(compA),
		storage.NewSignature(compA, compB),
		storage.NewSignature(compB),
	)

	q := matchAll(t, l, query.NewDescription().WithAll(compA).WithNone(compB))
	assert.Equal(t, []types.ArchetypeID{0}, q.Matches())

	q = matchAll(t, l, query.NewDescription().WithAny(compA, compB))
	assert.Equal(t, []types.ArchetypeID{0, 1, 2}, q.Matches())

	q = matchAll(t, l, query.NewDescription().WithExclusive(compA))
	assert.Equal(t, []types.ArchetypeID{0}, q.Matches())

	q = matchAll(t, l, query.NewDescription())
	assert.Len(t, q.Matches(), 3, "an all-empty description matches every archetype")
}

func TestArchetypeIterator(t *testing.T) {
	l := newArchList(256,
		storage.NewSignature(compA),
		storage.NewSignature(compA, compB),
	)
	q := matchAll(t, l, query.NewDescription().WithAll(compA))

	it := q.Archetypes(l)
	var seen []types.ArchetypeID
	for it.HasNext() {
		seen = append(seen, it.Next().ID())
	}
	assert.Equal(t, []types.ArchetypeID{0, 1}, seen)
}

func TestChunkIteratorSkipsEmptyChunks(t *testing.T) {
	l := newArchList(16, // capacity 4 rows for a single 4-byte component
		storage.NewSignature(compA),
		storage.NewSignature(compA, compB),
	)
	l.fill(0, 9, 0) // three chunks: 4 + 4 + 1
	// Archetype 1 stays empty; its pre-allocated chunk must be skipped.

	q := matchAll(t, l, query.NewDescription().WithAll(compA))
	it := q.Chunks(l)
	chunks := 0
	rows := 0
	for it.HasNext() {
		c := it.Next()
		chunks++
		rows += int(c.Size())
	}
	assert.Equal(t, 3, chunks)
	assert.Equal(t, 9, rows)
}

func TestEntityIteratorOrderAndCompleteness(t *testing.T) {
	l := newArchList(16,
		storage.NewSignature(compA),
		storage.NewSignature(compA, compB),
	)
	l.fill(0, 5, 0)   // ids 0..4, archetype-major first
	l.fill(1, 3, 100) // ids 100..102

	q := matchAll(t, l, query.NewDescription().WithAll(compA))
	it := q.Entities(l)
	var ids []uint32
	for it.HasNext() {
		e, row, c := it.Next()
		assert.Equal(t, e, c.Entity(row))
		ids = append(ids, uint32(e.ID))
	}
	assert.Equal(t, []uint32{0, 1, 2, 3, 4, 100, 101, 102}, ids)
}

func TestEachEarlyStop(t *testing.T) {
	l := newArchList(256, storage.NewSignature(compA))
	l.fill(0, 10, 0)

	q := matchAll(t, l, query.NewDescription().WithAll(compA))
	visited := 0
	q.Each(l, func(types.Entity, *storage.Chunk, uint32) bool {
		visited++
		return visited < 3
	})
	assert.Equal(t, 3, visited)
}

func TestCountAndFirst(t *testing.T) {
	l := newArchList(256,
		storage.NewSignature(compA),
		storage.NewSignature(compB),
	)
	l.fill(0, 4, 10)

	q := matchAll(t, l, query.NewDescription().WithAll(compA))
	assert.Equal(t, 4, q.Count(l))

	first, ok := q.First(l)
	require.True(t, ok)
	assert.Equal(t, types.EntityID(10), first.ID)

	empty := matchAll(t, l, query.NewDescription().WithAll(compB))
	assert.Equal(t, 0, empty.Count(l))
	_, ok = empty.First(l)
	assert.False(t, ok)
}
