package bitset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tempest-engine/tempest/bitset"
	"github.com/tempest-engine/tempest/types"
)

func TestSetAndHas(t *testing.T) {
	b := bitset.New()
	assert.False(t, b.Has(0))
	assert.False(t, b.Has(500))

	b.Set(3)
	b.Set(64)
	b.Set(200)
	assert.True(t, b.Has(3))
	assert.True(t, b.Has(64))
	assert.True(t, b.Has(200))
	assert.False(t, b.Has(4))
	assert.Equal(t, 3, b.Count())

	b.Clear(64)
	assert.False(t, b.Has(64))
	assert.Equal(t, 2, b.Count())
}

func TestEmptyMaskIsVacuouslyTrue(t *testing.T) {
	empty := bitset.New()
	populated := bitset.FromIDs(1, 2, 3)

	for _, b := range []*bitset.BitSet{bitset.New(), populated} {
		assert.True(t, b.All(empty))
		assert.True(t, b.Any(empty))
		assert.True(t, b.None(empty))
	}
}

func TestAll(t *testing.T) {
	b := bitset.FromIDs(1, 2, 3, 70)
	assert.True(t, b.All(bitset.FromIDs(1, 3)))
	assert.True(t, b.All(bitset.FromIDs(1, 2, 3, 70)))
	assert.False(t, b.All(bitset.FromIDs(1, 4)))
	// Mask wider than self treats missing bits as zero.
	assert.False(t, bitset.FromIDs(1).All(bitset.FromIDs(1, 130)))
}

func TestAny(t *testing.T) {
	b := bitset.FromIDs(1, 2)
	assert.True(t, b.Any(bitset.FromIDs(2, 9)))
	assert.False(t, b.Any(bitset.FromIDs(3, 9)))
	assert.False(t, bitset.New().Any(bitset.FromIDs(3)))
}

func TestNone(t *testing.T) {
	b := bitset.FromIDs(1, 2)
	assert.True(t, b.None(bitset.FromIDs(3, 200)))
	assert.False(t, b.None(bitset.FromIDs(2)))
}

func TestExclusive(t *testing.T) {
	b := bitset.FromIDs(1, 65)
	assert.True(t, b.Exclusive(bitset.FromIDs(65, 1)))
	assert.False(t, b.Exclusive(bitset.FromIDs(1)))
	assert.False(t, b.Exclusive(bitset.FromIDs(1, 65, 66)))

	// Equality ignores trailing zero words regardless of which side
	// grew further.
	wide := bitset.FromIDs(1)
	wide.Set(300)
	wide.Clear(300)
	assert.True(t, wide.Exclusive(bitset.FromIDs(1)))
	assert.True(t, bitset.FromIDs(1).Exclusive(wide))

	empty := bitset.New()
	assert.True(t, empty.Exclusive(bitset.New()))
	assert.False(t, empty.Exclusive(bitset.FromIDs(0)))
}

func TestHashIsOrderIndependent(t *testing.T) {
	a := bitset.FromIDs(5, 80, 140)
	b := bitset.FromIDs(140, 5, 80)
	assert.Equal(t, a.Hash(), b.Hash())

	// Trailing zero words do not change the hash.
	c := bitset.FromIDs(5, 80, 140)
	c.Set(400)
	c.Clear(400)
	assert.Equal(t, a.Hash(), c.Hash())

	assert.NotEqual(t, a.Hash(), bitset.FromIDs(5, 80).Hash())
	// Same word value in a different word position hashes differently.
	assert.NotEqual(t, bitset.FromIDs(0).Hash(), bitset.FromIDs(64).Hash())
}

func TestFromTypes(t *testing.T) {
	ts := []types.ComponentType{
		types.NewComponentType(0, "a", 4, 4),
		types.NewComponentType(9, "b", 8, 8),
	}
	b := bitset.FromTypes(ts...)
	assert.True(t, b.Has(0))
	assert.True(t, b.Has(9))
	assert.Equal(t, 2, b.Count())
}
