// Package bitset implements the dynamic bit vector used for archetype
// matching. Bits are indexed by component id; storage grows to cover the
// largest id inserted, and every predicate treats out-of-range bits as
// zero.
package bitset

import (
	"math/bits"

	"github.com/tempest-engine/tempest/types"
)

const bitsPerWord = 64

// BitSet is a packed set of non-negative component ids.
type BitSet struct {
	words []uint64
}

// New returns an empty BitSet.
func New() *BitSet {
	return &BitSet{}
}

// FromIDs returns a BitSet with one bit set per id.
func FromIDs(ids ...types.ComponentID) *BitSet {
	b := New()
	for _, id := range ids {
		b.Set(id)
	}
	return b
}

// FromTypes returns a BitSet with one bit set per component type.
func FromTypes(ts ...types.ComponentType) *BitSet {
	b := New()
	b.SetBits(ts)
	return b
}

// Set adds id to the set, growing storage as needed.
func (b *BitSet) Set(id types.ComponentID) {
	word := int(id) / bitsPerWord
	if word >= len(b.words) {
		grown := make([]uint64, word+1)
		copy(grown, b.words)
		b.words = grown
	}
	b.words[word] |= 1 << (uint(id) % bitsPerWord)
}

// SetBits sets one bit per component type id.
func (b *BitSet) SetBits(ts []types.ComponentType) {
	for _, t := range ts {
		b.Set(t.ID())
	}
}

// Clear removes id from the set. Out-of-range ids are a no-op.
func (b *BitSet) Clear(id types.ComponentID) {
	word := int(id) / bitsPerWord
	if word >= len(b.words) {
		return
	}
	b.words[word] &^= 1 << (uint(id) % bitsPerWord)
}

// Has reports whether id is in the set.
func (b *BitSet) Has(id types.ComponentID) bool {
	word := int(id) / bitsPerWord
	if word >= len(b.words) {
		return false
	}
	return b.words[word]&(1<<(uint(id)%bitsPerWord)) != 0
}

// IsEmpty reports whether no bit is set.
func (b *BitSet) IsEmpty() bool {
	for _, w := range b.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// Count returns the number of set bits.
func (b *BitSet) Count() int {
	n := 0
	for _, w := range b.words {
		n += bits.OnesCount64(w)
	}
	return n
}

func (b *BitSet) word(i int) uint64 {
	if i >= len(b.words) {
		return 0
	}
	return b.words[i]
}

// All reports whether every bit of mask is set in b. An empty mask is
// vacuously true.
func (b *BitSet) All(mask *BitSet) bool {
	for i := 0; i < len(mask.words); i++ {
		if b.word(i)&mask.words[i] != mask.words[i] {
			return false
		}
	}
	return true
}

// Any reports whether b and mask intersect. An empty mask is vacuously
// true, so omitting an any-filter does not filter.
func (b *BitSet) Any(mask *BitSet) bool {
	if mask.IsEmpty() {
		return true
	}
	for i := 0; i < len(mask.words); i++ {
		if b.word(i)&mask.words[i] != 0 {
			return true
		}
	}
	return false
}

// None reports whether b and mask are disjoint. An empty mask is
// vacuously true.
func (b *BitSet) None(mask *BitSet) bool {
	for i := 0; i < len(mask.words); i++ {
		if b.word(i)&mask.words[i] != 0 {
			return false
		}
	}
	return true
}

// Exclusive reports whether b equals mask exactly. Missing trailing
// words compare as zero.
func (b *BitSet) Exclusive(mask *BitSet) bool {
	n := len(b.words)
	if len(mask.words) > n {
		n = len(mask.words)
	}
	for i := 0; i < n; i++ {
		if b.word(i) != mask.word(i) {
			return false
		}
	}
	return true
}

// Hash returns an order-independent hash over the set bits. Trailing
// zero words do not affect the result, so equal sets hash equally
// regardless of capacity.
func (b *BitSet) Hash() uint32 {
	var h uint64
	for i, w := range b.words {
		if w == 0 {
			continue
		}
		// Mix the word with its position so {0} and {64} differ.
		x := w ^ (uint64(i+1) * 0x9e3779b97f4a7c15)
		x ^= x >> 33
		x *= 0xff51afd7ed558ccd
		x ^= x >> 33
		h ^= x
	}
	return uint32(h) ^ uint32(h>>32)
}
