// Package component implements the process-wide component type registry.
// Registration assigns dense ids in first-registration order and records
// the element size and alignment the storage layer needs. The registry is
// append-only and not internally synchronized; all registration must
// happen during single-threaded initialization.
package component

import (
	"reflect"

	"github.com/rotisserie/eris"

	"github.com/tempest-engine/tempest/types"
)

var (
	ErrNotRegistered  = eris.New("component type not registered")
	ErrSchemaMismatch = eris.New("component name registered with a different schema")
)

var (
	nextID types.ComponentID
	byType = map[reflect.Type]*Metadata{}
	byName = map[string]*Metadata{}
	byID   []*Metadata
)

// Register registers T and returns its ComponentType. Repeat calls for
// the same T return the cached value. Registering a different type under
// an already-taken name panics unless the two types have equivalent
// schemas; component names must be unique per process.
func Register[T any]() types.ComponentType {
	var zero T
	rt := reflect.TypeOf(zero)
	if meta, ok := byType[rt]; ok {
		return meta.Type()
	}

	meta, err := newMetadata(nextID, rt)
	if err != nil {
		panic(err)
	}
	if prior, taken := byName[meta.Name()]; taken {
		if err := prior.checkSchema(meta.Schema()); err != nil {
			panic(eris.Wrapf(err, "cannot register %v as %q", rt, meta.Name()))
		}
		// Same shape under the same name: treat as the prior class.
		byType[rt] = prior
		return prior.Type()
	}

	nextID++
	byType[rt] = meta
	byName[meta.Name()] = meta
	byID = append(byID, meta)
	return meta.Type()
}

// TypeOf returns the ComponentType for a previously registered T.
func TypeOf[T any]() (types.ComponentType, error) {
	var zero T
	meta, ok := byType[reflect.TypeOf(zero)]
	if !ok {
		return types.ComponentType{}, eris.Wrapf(ErrNotRegistered, "%T", zero)
	}
	return meta.Type(), nil
}

// MustTypeOf is TypeOf for registration-time wiring; it panics if T was
// never registered.
func MustTypeOf[T any]() types.ComponentType {
	t, err := TypeOf[T]()
	if err != nil {
		panic(err)
	}
	return t
}

// ForValue resolves the metadata for a boxed component value by its
// dynamic type.
func ForValue(v any) (*Metadata, error) {
	meta, ok := byType[reflect.TypeOf(v)]
	if !ok {
		return nil, eris.Wrapf(ErrNotRegistered, "%T", v)
	}
	return meta, nil
}

// MetadataFor returns the reflection metadata recorded for t.
func MetadataFor(t types.ComponentType) (*Metadata, error) {
	return MetadataForID(t.ID())
}

// MetadataForID returns the reflection metadata recorded for id.
func MetadataForID(id types.ComponentID) (*Metadata, error) {
	if id < 0 || int(id) >= len(byID) {
		return nil, eris.Wrapf(ErrNotRegistered, "id %d", id)
	}
	return byID[id], nil
}

// ByName resolves a component class by its registered name. Query
// languages and serialization layers address components this way.
func ByName(name string) (*Metadata, error) {
	meta, ok := byName[name]
	if !ok {
		return nil, eris.Wrapf(ErrNotRegistered, "name %q", name)
	}
	return meta, nil
}

// Registered returns the ComponentTypes registered so far, in id order.
func Registered() []types.ComponentType {
	out := make([]types.ComponentType, len(byID))
	for i, meta := range byID {
		out[i] = meta.Type()
	}
	return out
}

// Count returns the number of registered component classes.
func Count() int { return len(byID) }

// Reset clears the registry. Only tests should call this; ids handed out
// before a reset are invalid afterward.
func Reset() {
	nextID = 0
	byType = map[reflect.Type]*Metadata{}
	byName = map[string]*Metadata{}
	byID = nil
}
