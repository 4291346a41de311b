package types

// ArchetypeID indexes the world's archetype list. Archetypes are never
// freed, so ids stay valid for the life of the world.
type ArchetypeID int

// ArchetypeNone marks an entity table slot that does not currently
// reference an archetype.
const ArchetypeNone ArchetypeID = -1
