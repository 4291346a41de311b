// Package storage implements the archetype storage layer: signatures,
// fixed-capacity structure-of-arrays chunks, and the archetypes that own
// them. The world package orchestrates structural changes on top of it.
package storage

import (
	"hash/fnv"
	"sort"

	"github.com/tempest-engine/tempest/bitset"
	"github.com/tempest-engine/tempest/types"
)

// hashUncomputed is the cached-hash sentinel. Computed hashes are stored
// as int64(uint32) and therefore never negative, so the sentinel is
// unreachable as a valid hash.
const hashUncomputed int64 = -1

// Signature is the canonical identity of an archetype: its component
// types sorted by id with duplicates removed, plus a lazily cached hash.
type Signature struct {
	types []types.ComponentType
	hash  int64
}

// NewSignature builds a Signature from an arbitrarily ordered component
// type list. Duplicates collapse, so permutations of the same multiset
// produce equal signatures.
func NewSignature(ts ...types.ComponentType) Signature {
	sorted := make([]types.ComponentType, len(ts))
	copy(sorted, ts)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID() < sorted[j].ID() })

	dedup := sorted[:0]
	for i, t := range sorted {
		if i > 0 && t.ID() == sorted[i-1].ID() {
			continue
		}
		dedup = append(dedup, t)
	}
	return Signature{types: dedup, hash: hashUncomputed}
}

// Types returns the sorted component types. Callers must not mutate the
// returned slice.
func (s *Signature) Types() []types.ComponentType { return s.types }

// Len returns the number of component types in the signature.
func (s *Signature) Len() int { return len(s.types) }

// IsEmpty reports whether the signature names no components.
func (s *Signature) IsEmpty() bool { return len(s.types) == 0 }

// Contains reports whether the signature includes t.
func (s *Signature) Contains(t types.ComponentType) bool {
	return s.ContainsID(t.ID())
}

// ContainsID reports whether the signature includes the component id.
func (s *Signature) ContainsID(id types.ComponentID) bool {
	i := sort.Search(len(s.types), func(i int) bool { return s.types[i].ID() >= id })
	return i < len(s.types) && s.types[i].ID() == id
}

// With returns a new signature extended by t.
func (s *Signature) With(t types.ComponentType) Signature {
	ts := make([]types.ComponentType, 0, len(s.types)+1)
	ts = append(ts, s.types...)
	ts = append(ts, t)
	return NewSignature(ts...)
}

// Without returns a new signature with t removed.
func (s *Signature) Without(t types.ComponentType) Signature {
	ts := make([]types.ComponentType, 0, len(s.types))
	for _, existing := range s.types {
		if existing.ID() != t.ID() {
			ts = append(ts, existing)
		}
	}
	return Signature{types: ts, hash: hashUncomputed}
}

// Hash returns the 32-bit signature hash, computing and caching it on
// first use. Hashing runs over the sorted id sequence, so it is
// order-independent with respect to construction order.
func (s *Signature) Hash() uint32 {
	if s.hash == hashUncomputed {
		h := fnv.New32a()
		var buf [4]byte
		for _, t := range s.types {
			id := uint32(t.ID())
			buf[0] = byte(id)
			buf[1] = byte(id >> 8)
			buf[2] = byte(id >> 16)
			buf[3] = byte(id >> 24)
			_, _ = h.Write(buf[:])
		}
		s.hash = int64(h.Sum32())
	}
	return uint32(s.hash)
}

// Invalidate drops the cached hash so the next Hash call recomputes it.
func (s *Signature) Invalidate() { s.hash = hashUncomputed }

// Equal reports whether two signatures name the same component set. The
// hash comparison is confirmed element-wise so a collision cannot alias
// two archetypes.
func (s *Signature) Equal(other *Signature) bool {
	if s.Hash() != other.Hash() || len(s.types) != len(other.types) {
		return false
	}
	for i, t := range s.types {
		if t.ID() != other.types[i].ID() {
			return false
		}
	}
	return true
}

// Bits materializes the signature as a BitSet for predicate matching.
func (s *Signature) Bits() *bitset.BitSet {
	b := bitset.New()
	b.SetBits(s.types)
	return b
}
