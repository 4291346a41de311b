// Package log holds zerolog helpers that attach engine metadata to
// structured events.
package log

import (
	"github.com/rs/zerolog"

	"github.com/tempest-engine/tempest/types"
)

func loadComponentIntoArrayLogger(t types.ComponentType, arrayLogger *zerolog.Array) *zerolog.Array {
	dictLogger := zerolog.Dict()
	dictLogger = dictLogger.Int("component_id", int(t.ID()))
	dictLogger = dictLogger.Str("component_name", t.Name())
	dictLogger = dictLogger.Uint32("size", t.Size())
	return arrayLogger.Dict(dictLogger)
}

func loadComponentsIntoEvent(event *zerolog.Event, components []types.ComponentType) *zerolog.Event {
	arrayLogger := zerolog.Arr()
	for _, t := range components {
		arrayLogger = loadComponentIntoArrayLogger(t, arrayLogger)
	}
	return event.Array("components", arrayLogger)
}

// Components logs a component type list, e.g. the registry contents.
func Components(logger *zerolog.Logger, level zerolog.Level, components []types.ComponentType) {
	event := logger.WithLevel(level)
	event.Int("total_components", len(components))
	loadComponentsIntoEvent(event, components).Send()
}

// Archetype logs the creation of an archetype with its component set.
func Archetype(logger *zerolog.Logger, level zerolog.Level, archID types.ArchetypeID, components []types.ComponentType) {
	event := logger.WithLevel(level)
	event.Int("archetype_id", int(archID))
	loadComponentsIntoEvent(event, components).Msg("archetype created")
}

// Entity logs an entity together with its archetype and component set.
func Entity(logger *zerolog.Logger, level zerolog.Level, e types.Entity, archID types.ArchetypeID, components []types.ComponentType) {
	event := logger.WithLevel(level)
	event.Uint32("entity_id", uint32(e.ID))
	event.Uint32("entity_version", e.Version)
	event.Int("archetype_id", int(archID))
	loadComponentsIntoEvent(event, components).Send()
}
