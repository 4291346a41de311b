package query

import (
	"github.com/tempest-engine/tempest/bitset"
	"github.com/tempest-engine/tempest/types"
)

// Query is a compiled description: its predicates materialized to
// bitsets plus the cached list of matching archetype ids. Queries hold
// archetypes by id, never owning them; the world appends to the match
// list when a newly created archetype matches.
type Query struct {
	key       uint32
	all       *bitset.BitSet
	any       *bitset.BitSet
	none      *bitset.BitSet
	exclusive *bitset.BitSet
	matches   []types.ArchetypeID
}

// Compile validates d and materializes its signatures into matching
// bitsets. The returned query has an empty match list; the world fills
// it by scanning existing archetypes.
func Compile(d *Description) (*Query, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &Query{
		key:       d.Hash(),
		all:       d.All.Bits(),
		any:       d.Any.Bits(),
		none:      d.None.Bits(),
		exclusive: d.Exclusive.Bits(),
	}, nil
}

// Key returns the composite description hash this query is cached under.
func (q *Query) Key() uint32 { return q.key }

// Valid reports whether an archetype bitset satisfies the query's
// predicate.
func (q *Query) Valid(b *bitset.BitSet) bool {
	if !q.exclusive.IsEmpty() {
		return b.Exclusive(q.exclusive)
	}
	return b.All(q.all) && b.Any(q.any) && b.None(q.none)
}

// AddMatch appends an archetype to the match list. The world calls this
// on first compilation and again whenever a matching archetype is
// created later.
func (q *Query) AddMatch(id types.ArchetypeID) {
	q.matches = append(q.matches, id)
}

// Matches returns the matching archetype ids in creation order.
func (q *Query) Matches() []types.ArchetypeID { return q.matches }
