package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLifecycle_StampSave(t *testing.T) {
	var l Lifecycle
	assert.True(t, l.IsNew())

	first := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	l.StampSave(first)
	assert.Equal(t, first, l.CreatedAt)
	assert.Equal(t, first, l.UpdatedAt)
	assert.False(t, l.IsNew())

	second := first.Add(time.Hour)
	l.StampSave(second)
	assert.Equal(t, first, l.CreatedAt, "CreatedAt must never be overwritten")
	assert.Equal(t, second, l.UpdatedAt)
}

func TestLifecycle_MarkAndClearDeleted(t *testing.T) {
	var l Lifecycle
	assert.False(t, l.Deleted())
	assert.Nil(t, l.DeletedAt)

	now := time.Now().UTC()
	l.MarkDeleted(now)
	assert.True(t, l.Deleted())
	require.NotNil(t, l.DeletedAt)
	assert.Equal(t, now, *l.DeletedAt)

	l.ClearDeleted()
	assert.False(t, l.Deleted())
	assert.Nil(t, l.DeletedAt)
}

func TestLifecycle_RedeleteRestamps(t *testing.T) {
	var l Lifecycle

	first := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	l.MarkDeleted(first)

	second := first.Add(time.Hour)
	l.MarkDeleted(second)

	require.NotNil(t, l.DeletedAt)
	assert.Equal(t, second, *l.DeletedAt)
}
