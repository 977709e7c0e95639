package relay

import (
	"testing"

	"github.com/lekhandas/chatd/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryRegisterAndLookup(t *testing.T) {
	registry := NewRegistry()
	sink := &fakeSink{}

	registry.Register("conn-1", models.Profile{ID: "conn-1", Name: "Ada"}, sink)

	profile, got, ok := registry.Lookup("conn-1")
	require.True(t, ok)
	assert.Equal(t, "Ada", profile.Name)
	assert.Same(t, sink, got)
}

func TestRegistryLookupUnknownID(t *testing.T) {
	registry := NewRegistry()

	_, _, ok := registry.Lookup("conn-1")
	assert.False(t, ok)
}

func TestRegistryRegisterOverwrites(t *testing.T) {
	registry := NewRegistry()

	registry.Register("conn-1", models.Profile{ID: "conn-1", Name: "Ada"}, &fakeSink{})
	registry.Register("conn-1", models.Profile{ID: "conn-1", Name: "Grace"}, &fakeSink{})

	profile, _, ok := registry.Lookup("conn-1")
	require.True(t, ok)
	assert.Equal(t, "Grace", profile.Name)
	assert.Len(t, registry.ListAll(), 1)
}

func TestRegistryUnregisterIsIdempotent(t *testing.T) {
	registry := NewRegistry()
	registry.Register("conn-1", models.Profile{ID: "conn-1"}, &fakeSink{})

	registry.Unregister("conn-1")
	registry.Unregister("conn-1")
	registry.Unregister("never-registered")

	_, _, ok := registry.Lookup("conn-1")
	assert.False(t, ok)
	assert.Empty(t, registry.ListAll())
}

func TestRegistryListAllSnapshot(t *testing.T) {
	registry := NewRegistry()
	registry.Register("conn-1", models.Profile{ID: "conn-1", Name: "Ada"}, &fakeSink{})
	registry.Register("conn-2", models.Profile{ID: "conn-2", Name: "Grace"}, &fakeSink{})

	registry.Unregister("conn-1")

	profiles := registry.ListAll()
	require.Len(t, profiles, 1)
	assert.Equal(t, "conn-2", profiles[0].ID)
}

func TestRegistryOthersExcludesSelf(t *testing.T) {
	registry := NewRegistry()
	self := &fakeSink{}
	other := &fakeSink{}
	registry.Register("conn-1", models.Profile{ID: "conn-1"}, self)
	registry.Register("conn-2", models.Profile{ID: "conn-2"}, other)

	sinks := registry.Others("conn-1")
	require.Len(t, sinks, 1)
	assert.Same(t, other, sinks[0].(*fakeSink))
}
