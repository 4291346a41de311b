// Package tempest implements an archetype-based entity-component storage
// and query engine. Entities carrying the same component set share an
// archetype, whose rows live in fixed-capacity structure-of-arrays
// chunks; queries compile declarative predicates into cached archetype
// match sets.
//
// The engine is single-thread-safe but not internally synchronized: one
// logical owner issues all mutations and iterations.
package tempest

import (
	"math"
	"reflect"
	"unsafe"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/tempest-engine/tempest/component"
	ecslog "github.com/tempest-engine/tempest/log"
	"github.com/tempest-engine/tempest/query"
	"github.com/tempest-engine/tempest/statsd"
	"github.com/tempest-engine/tempest/storage"
	"github.com/tempest-engine/tempest/types"
)

// slot is one entry of the entity table. An entity handle is alive iff
// its version matches and the slot points at an archetype.
type slot struct {
	arch    types.ArchetypeID
	chunk   int32
	row     uint32
	version uint32
}

// World is the single entry point to the engine. It owns the entity
// table, the archetype list, the signature index, and the query cache.
type World struct {
	cfg    WorldConfig
	logger zerolog.Logger
	hooks  Hooks

	slots   []slot
	freeIDs []types.EntityID

	archetypes []*storage.Archetype
	sigIndex   map[uint32][]types.ArchetypeID
	queries    map[uint32]*query.Query
}

// NewWorld builds a world from the environment config plus options.
func NewWorld(opts ...WorldOption) *World {
	w := &World{
		cfg:      GetWorldConfig(),
		logger:   zlog.Logger,
		sigIndex: map[uint32][]types.ArchetypeID{},
		queries:  map[uint32]*query.Query{},
	}
	for _, opt := range opts {
		opt(w)
	}
	if lvl, err := zerolog.ParseLevel(w.cfg.LogLevel); err == nil {
		w.logger = w.logger.Level(lvl)
	}
	if w.cfg.StatsdAddress != "" {
		if err := statsd.Init(w.cfg.StatsdAddress, nil); err != nil {
			w.logger.Warn().Err(err).Msg("failed to init statsd client")
		}
	}
	w.logger.Debug().
		Int("chunk_bytes", w.cfg.ChunkBytes).
		Int("registered_components", component.Count()).
		Msg("world created")
	return w
}

// Logger returns the world's logger.
func (w *World) Logger() *zerolog.Logger { return &w.logger }

// mint allocates an entity id, recycling destroyed ids first. The slot
// keeps its bumped version, so recycled handles never collide with
// stale ones.
func (w *World) mint() (types.Entity, error) {
	if n := len(w.freeIDs); n > 0 {
		id := w.freeIDs[n-1]
		w.freeIDs = w.freeIDs[:n-1]
		return types.Entity{ID: id, Version: w.slots[id].version}, nil
	}
	if uint64(len(w.slots)) > math.MaxUint32 {
		return types.Nil, ErrCapacityExceeded
	}
	id := types.EntityID(len(w.slots))
	w.slots = append(w.slots, slot{arch: types.ArchetypeNone, version: 1})
	return types.Entity{ID: id, Version: 1}, nil
}

// locate resolves a handle to its table slot, failing with
// ErrStaleHandle when the version no longer matches.
func (w *World) locate(e types.Entity) (*slot, error) {
	if int(e.ID) >= len(w.slots) {
		return nil, eris.Wrapf(ErrStaleHandle, "entity %d was never created", e.ID)
	}
	sl := &w.slots[e.ID]
	if sl.version != e.Version || sl.arch == types.ArchetypeNone {
		return nil, eris.Wrapf(ErrStaleHandle, "entity %d", e.ID)
	}
	return sl, nil
}

// Alive reports whether the handle references a live entity.
func (w *World) Alive(e types.Entity) bool {
	_, err := w.locate(e)
	return err == nil
}

// archetypeFor resolves the archetype for sig, creating and indexing it
// on demand. Creation walks the query cache so existing queries pick up
// the new archetype immediately.
func (w *World) archetypeFor(sig storage.Signature) *storage.Archetype {
	h := sig.Hash()
	for _, id := range w.sigIndex[h] {
		a := w.archetypes[id]
		if a.Signature().Equal(&sig) {
			return a
		}
	}

	id := types.ArchetypeID(len(w.archetypes))
	a := storage.NewArchetype(id, sig, uint32(w.cfg.ChunkBytes))
	w.archetypes = append(w.archetypes, a)
	w.sigIndex[h] = append(w.sigIndex[h], id)

	for _, q := range w.queries {
		if q.Valid(a.Bits()) {
			q.AddMatch(id)
			a.AddQueryRef(q.Key())
		}
	}

	ecslog.Archetype(&w.logger, zerolog.DebugLevel, id, sig.Types())
	statsd.EmitArchetypeCreated()
	return a
}

// CreateEntity creates one entity bearing zero values of the given
// component types.
func (w *World) CreateEntity(ts ...types.ComponentType) (types.Entity, error) {
	entities, err := w.CreateManyEntities(1, ts...)
	if err != nil {
		return types.Nil, err
	}
	return entities[0], nil
}

// CreateManyEntities creates n entities in the same archetype, resolving
// the archetype once.
func (w *World) CreateManyEntities(n int, ts ...types.ComponentType) ([]types.Entity, error) {
	arch := w.archetypeFor(storage.NewSignature(ts...))
	entities := make([]types.Entity, 0, n)
	for i := 0; i < n; i++ {
		e, err := w.mint()
		if err != nil {
			return nil, err
		}
		chunkIdx, row := arch.Add(e)
		sl := &w.slots[e.ID]
		sl.arch = arch.ID()
		sl.chunk = int32(chunkIdx)
		sl.row = row
		ecslog.Entity(&w.logger, zerolog.TraceLevel, e, arch.ID(), arch.Signature().Types())
		w.hooks.create(e)
		entities = append(entities, e)
	}
	statsd.EmitEntitiesCreated(n)
	return entities, nil
}

// Destroy removes the entity's row, bumps its slot version, and recycles
// the id. When another row is swapped into the gap, that entity's slot
// is rewritten to the new position.
func (w *World) Destroy(e types.Entity) error {
	sl, err := w.locate(e)
	if err != nil {
		return err
	}
	w.hooks.destroy(e)

	arch := w.archetypes[sl.arch]
	moved, ok := arch.Remove(int(sl.chunk), sl.row)
	if ok {
		ms := &w.slots[moved.ID]
		ms.chunk = sl.chunk
		ms.row = sl.row
	}

	sl.arch = types.ArchetypeNone
	sl.version++
	w.freeIDs = append(w.freeIDs, e.ID)
	statsd.EmitEntityDestroyed()
	return nil
}

// transition moves the entity to the archetype for its current
// signature plus-or-minus one component, copying shared values and
// fixing up the swapped entity's slot. Hooks are the caller's business.
func (w *World) transition(sl *slot, dstSig storage.Signature) {
	srcArch := w.archetypes[sl.arch]
	dstArch := w.archetypeFor(dstSig)

	dstChunkIdx, dstRow := srcArch.MoveTo(int(sl.chunk), sl.row, dstArch)

	moved, ok := srcArch.Remove(int(sl.chunk), sl.row)
	if ok {
		ms := &w.slots[moved.ID]
		ms.chunk = sl.chunk
		ms.row = sl.row
	}

	sl.arch = dstArch.ID()
	sl.chunk = int32(dstChunkIdx)
	sl.row = dstRow
}

// addComponentType moves the entity to the archetype extended by t. The
// new column holds the zero value until the caller writes it.
func (w *World) addComponentType(e types.Entity, t types.ComponentType) error {
	sl, err := w.locate(e)
	if err != nil {
		return err
	}
	if w.archetypes[sl.arch].Signature().Contains(t) {
		return eris.Wrapf(ErrComponentAlreadyOnEntity, "%s", t.Name())
	}
	w.transition(sl, w.archetypes[sl.arch].Signature().With(t))
	statsd.EmitComponentMoved("add")
	return nil
}

// AddComponentTo attaches a zero-valued component of type t to e.
func (w *World) AddComponentTo(e types.Entity, t types.ComponentType) error {
	if err := w.addComponentType(e, t); err != nil {
		return err
	}
	w.hooks.componentSet(e, t)
	return nil
}

// RemoveComponentFrom drops component t from e, preserving every other
// component value across the archetype transition.
func (w *World) RemoveComponentFrom(e types.Entity, t types.ComponentType) error {
	sl, err := w.locate(e)
	if err != nil {
		return err
	}
	if !w.archetypes[sl.arch].Signature().Contains(t) {
		return eris.Wrapf(ErrComponentNotOnEntity, "%s", t.Name())
	}
	w.hooks.componentRemove(e, t)
	w.transition(sl, w.archetypes[sl.arch].Signature().Without(t))
	statsd.EmitComponentMoved("remove")
	return nil
}

// HasComponent reports whether e currently bears component t.
func (w *World) HasComponent(e types.Entity, t types.ComponentType) (bool, error) {
	sl, err := w.locate(e)
	if err != nil {
		return false, err
	}
	return w.archetypes[sl.arch].Signature().Contains(t), nil
}

// pointerTo returns the interior address of e's component t. References
// are valid until the next structural change.
func (w *World) pointerTo(e types.Entity, t types.ComponentType) (unsafe.Pointer, error) {
	sl, err := w.locate(e)
	if err != nil {
		return nil, err
	}
	c := w.archetypes[sl.arch].Chunks()[sl.chunk]
	p, ok := c.Pointer(t.ID(), sl.row)
	if !ok {
		return nil, eris.Wrapf(ErrUnknownComponent, "%s not on entity %d", t.Name(), e.ID)
	}
	return p, nil
}

// GetRaw returns a boxed copy of e's component t. Serialization layers
// use this together with the registry metadata codec.
func (w *World) GetRaw(e types.Entity, t types.ComponentType) (any, error) {
	meta, err := component.MetadataFor(t)
	if err != nil {
		return nil, err
	}
	p, err := w.pointerTo(e, t)
	if err != nil {
		return nil, err
	}
	return reflect.NewAt(meta.ReflectType(), p).Elem().Interface(), nil
}

// SetRaw writes a boxed component value of type t into e's row.
func (w *World) SetRaw(e types.Entity, t types.ComponentType, v any) error {
	meta, err := component.MetadataFor(t)
	if err != nil {
		return err
	}
	rv := reflect.ValueOf(v)
	if rv.Type() != meta.ReflectType() {
		return eris.Wrapf(ErrUnknownComponent, "cannot store %T as %s", v, t.Name())
	}
	p, err := w.pointerTo(e, t)
	if err != nil {
		return err
	}
	reflect.NewAt(meta.ReflectType(), p).Elem().Set(rv)
	w.hooks.componentSet(e, t)
	return nil
}

// AddRaw attaches a boxed component value to e, transitioning its
// archetype.
func (w *World) AddRaw(e types.Entity, t types.ComponentType, v any) error {
	if err := w.addComponentType(e, t); err != nil {
		return err
	}
	return w.SetRaw(e, t, v)
}

// Query resolves a description against the query cache, compiling and
// registering it on first use. The returned query stays current as new
// archetypes are created.
func (w *World) Query(d *query.Description) (*query.Query, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if q, ok := w.queries[d.Hash()]; ok {
		return q, nil
	}
	q, err := query.Compile(d)
	if err != nil {
		return nil, err
	}
	for _, a := range w.archetypes {
		if q.Valid(a.Bits()) {
			q.AddMatch(a.ID())
			a.AddQueryRef(q.Key())
		}
	}
	w.queries[q.Key()] = q
	w.logger.Debug().
		Uint32("query_key", q.Key()).
		Int("matched_archetypes", len(q.Matches())).
		Msg("query compiled")
	return q, nil
}

// ArchetypeByID implements query.ArchetypeAccessor.
func (w *World) ArchetypeByID(id types.ArchetypeID) *storage.Archetype {
	return w.archetypes[id]
}

// ArchetypeCount returns the number of archetypes created so far.
func (w *World) ArchetypeCount() int { return len(w.archetypes) }

// EntityCount returns the number of live entities.
func (w *World) EntityCount() int {
	n := 0
	for _, a := range w.archetypes {
		n += a.Count()
	}
	return n
}

// Location exposes an entity's current (archetype, chunk, row) triple
// for diagnostics and tests.
func (w *World) Location(e types.Entity) (types.ArchetypeID, int, uint32, error) {
	sl, err := w.locate(e)
	if err != nil {
		return types.ArchetypeNone, 0, 0, err
	}
	return sl.arch, int(sl.chunk), sl.row, nil
}
