package statsd_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tempest-engine/tempest/statsd"
)

func TestInitRequiresAddress(t *testing.T) {
	err := statsd.Init("", nil)
	assert.Error(t, err)
}

func TestDefaultClientIsNoOp(t *testing.T) {
	// The no-op client swallows emissions without error.
	assert.NoError(t, statsd.Client().Count("test", 1, nil, 1))
	statsd.EmitEntitiesCreated(3)
	statsd.EmitEntityDestroyed()
	statsd.EmitArchetypeCreated()
	statsd.EmitComponentMoved("add")
}
