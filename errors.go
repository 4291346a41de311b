package tempest

import (
	"github.com/rotisserie/eris"

	"github.com/tempest-engine/tempest/component"
	"github.com/tempest-engine/tempest/query"
)

var (
	// ErrStaleHandle is returned for operations on an entity whose
	// version no longer matches its table slot.
	ErrStaleHandle = eris.New("entity handle is stale")
	// ErrCapacityExceeded is returned when the 32-bit entity id space is
	// exhausted.
	ErrCapacityExceeded = eris.New("entity id space exhausted")
	// ErrUnknownComponent is returned when reading or writing a component
	// that is not present on the target entity, or when a raw value's type
	// does not match the component type. A type that was never registered
	// is reported as ErrComponentNotRegistered instead, and removing an
	// absent component as ErrComponentNotOnEntity.
	ErrUnknownComponent = eris.New("unknown component")

	ErrComponentAlreadyOnEntity = eris.New("component already on entity")
	ErrComponentNotOnEntity     = eris.New("component not on entity")

	// ErrMalformedQuery is returned when a query description combines
	// Exclusive with any other predicate.
	ErrMalformedQuery = query.ErrMalformedQuery
	// ErrComponentNotRegistered is the registry's not-registered kind.
	ErrComponentNotRegistered = component.ErrNotRegistered
)
