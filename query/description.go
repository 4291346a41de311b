// Package query compiles declarative component predicates into cached
// match sets of archetypes and exposes the iterators that walk them.
package query

import (
	"github.com/rotisserie/eris"

	"github.com/tempest-engine/tempest/storage"
	"github.com/tempest-engine/tempest/types"
)

// ErrMalformedQuery is returned when a description sets Exclusive
// together with any of All, Any, or None.
var ErrMalformedQuery = eris.New("exclusive queries cannot be combined with all/any/none")

const hashUncomputed int64 = -1

// Description declares which archetypes a query matches. An all-empty
// description matches every archetype. The four signatures are
// user-mutable; after mutating one, call Rebuild before handing the
// description back to the world.
type Description struct {
	All       storage.Signature
	Any       storage.Signature
	None      storage.Signature
	Exclusive storage.Signature

	hash int64
}

// NewDescription returns an empty description, which matches everything.
func NewDescription() *Description {
	// Start every predicate from NewSignature so unset fields hash the same
	// as fields set to an empty list or invalidated by Rebuild.
	return &Description{
		All:       storage.NewSignature(),
		Any:       storage.NewSignature(),
		None:      storage.NewSignature(),
		Exclusive: storage.NewSignature(),
		hash:      hashUncomputed,
	}
}

// WithAll requires every listed component to be present.
func (d *Description) WithAll(ts ...types.ComponentType) *Description {
	d.All = storage.NewSignature(ts...)
	d.hash = hashUncomputed
	return d
}

// WithAny requires at least one listed component to be present. Listing
// none leaves the predicate vacuously true.
func (d *Description) WithAny(ts ...types.ComponentType) *Description {
	d.Any = storage.NewSignature(ts...)
	d.hash = hashUncomputed
	return d
}

// WithNone forbids every listed component.
func (d *Description) WithNone(ts ...types.ComponentType) *Description {
	d.None = storage.NewSignature(ts...)
	d.hash = hashUncomputed
	return d
}

// WithExclusive requires the archetype signature to equal the listed
// components exactly. Exclusive cannot be combined with the other three
// predicates.
func (d *Description) WithExclusive(ts ...types.ComponentType) *Description {
	d.Exclusive = storage.NewSignature(ts...)
	d.hash = hashUncomputed
	return d
}

// Rebuild invalidates the cached composite hash after direct mutation of
// the signature fields. The world's query cache keys on the post-Rebuild
// hash.
func (d *Description) Rebuild() {
	d.All.Invalidate()
	d.Any.Invalidate()
	d.None.Invalidate()
	d.Exclusive.Invalidate()
	d.hash = hashUncomputed
}

// Validate checks the exclusivity invariant.
func (d *Description) Validate() error {
	if !d.Exclusive.IsEmpty() {
		if !d.All.IsEmpty() || !d.Any.IsEmpty() || !d.None.IsEmpty() {
			return ErrMalformedQuery
		}
	}
	return nil
}

// Hash returns the composite hash of the four signatures, combined
// order-sensitively with a prime-multiplier mix and cached until the
// next Rebuild.
func (d *Description) Hash() uint32 {
	if d.hash == hashUncomputed {
		h := uint32(17)
		h = 23*h + d.All.Hash()
		h = 23*h + d.Any.Hash()
		h = 23*h + d.None.Hash()
		h = 23*h + d.Exclusive.Hash()
		d.hash = int64(h)
	}
	return uint32(d.hash)
}
