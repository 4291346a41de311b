// Package statsd is a helper package that wraps the statsd methods the
// engine emits. It hides the datadog dependency so a future migration
// only needs to edit this single file; the client defaults to a no-op
// until Init is called with an agent address.
package statsd

import (
	ddstatsd "github.com/DataDog/datadog-go/v5/statsd"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog/log"
)

var client ddstatsd.ClientInterface = &ddstatsd.NoOpClient{}

func Client() ddstatsd.ClientInterface {
	return client
}

// Init replaces the no-op client with a real statsd client. All metrics
// are emitted under the "tempest" namespace.
func Init(address string, tags []string) error {
	if address == "" {
		return eris.New("address must not be empty")
	}
	opts := []ddstatsd.Option{
		ddstatsd.WithNamespace("tempest"),
	}
	if len(tags) > 0 {
		opts = append(opts, ddstatsd.WithTags(tags))
	}

	newClient, err := ddstatsd.New(address, opts...)
	if err != nil {
		return err
	}
	client = newClient
	return nil
}

func emitCount(name string, value int64, tags []string) {
	if err := Client().Count(name, value, tags, 1); err != nil {
		log.Logger.Warn().Msgf("failed to emit %s stat: %v", name, err)
	}
}

// EmitEntitiesCreated counts entity creations.
func EmitEntitiesCreated(n int) {
	emitCount("entities.created", int64(n), nil)
}

// EmitEntityDestroyed counts entity destructions.
func EmitEntityDestroyed() {
	emitCount("entities.destroyed", 1, nil)
}

// EmitArchetypeCreated counts archetype creations.
func EmitArchetypeCreated() {
	emitCount("archetypes.created", 1, nil)
}

// EmitComponentMoved counts archetype transitions, tagged by whether a
// component was added or removed.
func EmitComponentMoved(op string) {
	emitCount("components.moved", 1, []string{op})
}
