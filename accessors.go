package tempest

import (
	"reflect"

	"github.com/tempest-engine/tempest/component"
	"github.com/tempest-engine/tempest/types"
)

// Get returns a direct interior reference to e's component T. The
// reference is valid until the next structural change; holding it across
// one is a programming error.
func Get[T any](w *World, e types.Entity) (*T, error) {
	t, err := component.TypeOf[T]()
	if err != nil {
		return nil, err
	}
	p, err := w.pointerTo(e, t)
	if err != nil {
		return nil, err
	}
	return (*T)(p), nil
}

// Set overwrites e's existing component T with value.
func Set[T any](w *World, e types.Entity, value T) error {
	t, err := component.TypeOf[T]()
	if err != nil {
		return err
	}
	p, err := w.pointerTo(e, t)
	if err != nil {
		return err
	}
	*(*T)(p) = value
	w.hooks.componentSet(e, t)
	return nil
}

// Add attaches component T with the given value, moving e to the
// extended archetype. Every other component keeps its prior value.
func Add[T any](w *World, e types.Entity, value T) error {
	t, err := component.TypeOf[T]()
	if err != nil {
		return err
	}
	if err := w.addComponentType(e, t); err != nil {
		return err
	}
	p, err := w.pointerTo(e, t)
	if err != nil {
		return err
	}
	*(*T)(p) = value
	w.hooks.componentSet(e, t)
	return nil
}

// Remove drops component T from e.
func Remove[T any](w *World, e types.Entity) error {
	t, err := component.TypeOf[T]()
	if err != nil {
		return err
	}
	return w.RemoveComponentFrom(e, t)
}

// Has reports whether e bears component T.
func Has[T any](w *World, e types.Entity) (bool, error) {
	t, err := component.TypeOf[T]()
	if err != nil {
		return false, err
	}
	return w.HasComponent(e, t)
}

// Create creates one entity initialized from the given component
// values. Each value's type must be registered.
func Create(w *World, values ...any) (types.Entity, error) {
	entities, err := CreateMany(w, 1, values...)
	if err != nil {
		return types.Nil, err
	}
	return entities[0], nil
}

// CreateMany creates n entities, each initialized from the same
// component values.
func CreateMany(w *World, n int, values ...any) ([]types.Entity, error) {
	ts := make([]types.ComponentType, len(values))
	for i, v := range values {
		meta, err := component.ForValue(v)
		if err != nil {
			return nil, err
		}
		ts[i] = meta.Type()
	}
	entities, err := w.CreateManyEntities(n, ts...)
	if err != nil {
		return nil, err
	}
	for _, e := range entities {
		sl := &w.slots[e.ID]
		c := w.archetypes[sl.arch].Chunks()[sl.chunk]
		for i, v := range values {
			p, _ := c.Pointer(ts[i].ID(), sl.row)
			meta, _ := component.MetadataFor(ts[i])
			reflect.NewAt(meta.ReflectType(), p).Elem().Set(reflect.ValueOf(v))
			w.hooks.componentSet(e, ts[i])
		}
	}
	return entities, nil
}
