package tempest

import "github.com/tempest-engine/tempest/types"

// Hooks are the lifecycle callbacks surrounding layers can attach to a
// world. The core invokes them at the named points and defines no
// handlers of its own; nil members are skipped.
type Hooks struct {
	// OnCreate fires once the entity's row is allocated, with every
	// component still zeroed. Values passed to Create or CreateMany are
	// written afterward, each reported through OnComponentSet.
	OnCreate func(types.Entity)
	// OnComponentSet fires after a component value is written, whether by
	// creation, Set, or Add.
	OnComponentSet func(types.Entity, types.ComponentType)
	// OnComponentRemove fires before a component is dropped from an
	// entity.
	OnComponentRemove func(types.Entity, types.ComponentType)
	// OnDestroy fires before an entity's row is removed.
	OnDestroy func(types.Entity)
}

func (h *Hooks) create(e types.Entity) {
	if h.OnCreate != nil {
		h.OnCreate(e)
	}
}

func (h *Hooks) componentSet(e types.Entity, t types.ComponentType) {
	if h.OnComponentSet != nil {
		h.OnComponentSet(e, t)
	}
}

func (h *Hooks) componentRemove(e types.Entity, t types.ComponentType) {
	if h.OnComponentRemove != nil {
		h.OnComponentRemove(e, t)
	}
}

func (h *Hooks) destroy(e types.Entity) {
	if h.OnDestroy != nil {
		h.OnDestroy(e)
	}
}
