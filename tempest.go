package tempest

import (
	"github.com/tempest-engine/tempest/component"
	"github.com/tempest-engine/tempest/cql"
	"github.com/tempest-engine/tempest/query"
	"github.com/tempest-engine/tempest/types"
)

// RegisterComponent registers T with the process-wide registry and
// returns its ComponentType. Registration must happen during
// single-threaded initialization, before entities use the type.
func RegisterComponent[T any]() types.ComponentType {
	return component.Register[T]()
}

// QueryString parses a CQL expression (for example
// "ALL(Position) & NONE(Frozen)") and resolves it against the world's
// query cache.
func (w *World) QueryString(src string) (*query.Query, error) {
	d, err := cql.Parse(src)
	if err != nil {
		return nil, err
	}
	return w.Query(d)
}
