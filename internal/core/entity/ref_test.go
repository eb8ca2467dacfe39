package entity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"basekit/internal/core/id"
)

func TestNewRef(t *testing.T) {
	thing := &trackedThing{Base: NewBase()}

	ref := NewRef(thing)
	require.NotNil(t, ref.ContentType)
	require.NotNil(t, ref.ObjectID)
	assert.Equal(t, "things", *ref.ContentType)
	assert.Equal(t, thing.ID, *ref.ObjectID)
	assert.True(t, ref.Matches(thing))
	assert.False(t, ref.IsZero())
}

func TestRef_IsZero(t *testing.T) {
	assert.True(t, Ref{}.IsZero())
}

func TestRegistry_Resolve(t *testing.T) {
	ctx := context.Background()
	thing := &trackedThing{Base: NewBase()}

	registry := NewRegistry()
	registry.Register("things", func(ctx context.Context, objectID id.ID) (SoftDeletable, error) {
		if objectID == thing.ID {
			return thing, nil
		}
		return nil, nil
	})

	resolved, err := registry.Resolve(ctx, NewRef(thing))
	require.NoError(t, err)
	assert.Equal(t, thing, resolved)
}

func TestRegistry_Resolve_AbsentRef(t *testing.T) {
	registry := NewRegistry()

	resolved, err := registry.Resolve(context.Background(), Ref{})
	require.NoError(t, err)
	assert.Nil(t, resolved)
}

func TestRegistry_Resolve_UnknownType(t *testing.T) {
	registry := NewRegistry()
	tag := "ghosts"
	oid := id.New()

	resolved, err := registry.Resolve(context.Background(), Ref{ContentType: &tag, ObjectID: &oid})
	require.NoError(t, err)
	assert.Nil(t, resolved, "unregistered type resolves to nil, not an error")
}

func TestRegistry_Resolve_MissingRow(t *testing.T) {
	registry := NewRegistry()
	registry.Register("things", func(ctx context.Context, objectID id.ID) (SoftDeletable, error) {
		return nil, nil
	})

	thing := &trackedThing{Base: NewBase()}
	resolved, err := registry.Resolve(context.Background(), NewRef(thing))
	require.NoError(t, err)
	assert.Nil(t, resolved)
}
