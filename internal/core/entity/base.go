package entity

import (
	"context"

	"basekit/internal/core/id"
)

// SoftDeletable is implemented by every entity that participates in the
// soft-delete state machine. Base provides everything except TypeTag,
// which each concrete type declares itself.
type SoftDeletable interface {
	// GetID returns the primary key.
	GetID() id.ID

	// TypeTag identifies the concrete entity type for generic associations
	// (conventionally the table name).
	TypeTag() string

	// Envelope exposes the lifecycle fields for the engine and stores.
	Envelope() *Lifecycle
}

// Related is an optional capability: entities that cascade delete/restore
// to other entities declare them here. The engine walks the returned list
// depth-first; keeping the graph acyclic is the caller's responsibility.
type Related interface {
	RelatedObjects() []SoftDeletable
}

// DeleteHook is an optional capability invoked after a soft delete is
// persisted, before the cascade. Use for side effects such as releasing
// external resources.
type DeleteHook interface {
	AfterDelete(ctx context.Context) error
}

// RestoreHook is the restore counterpart of DeleteHook.
type RestoreHook interface {
	AfterRestore(ctx context.Context) error
}

// Tracked combines the capabilities the history recorder needs:
// identity, declared watched fields and a shadow snapshot to diff against.
type Tracked interface {
	SoftDeletable
	Watched
	SnapshotRef() *Snapshot
}

// Base contains common fields for all soft-deletable entities.
// Embed it and implement TypeTag on the concrete type.
type Base struct {
	// ID is the primary key (UUIDv7)
	ID id.ID `db:"id" json:"id"`

	Lifecycle

	// snapshot holds captured watched-field values; private to this
	// entity instance, never shared across requests.
	snapshot Snapshot
}

// NewBase creates a new Base with generated ID.
func NewBase() Base {
	return Base{ID: id.New()}
}

// GetID returns the primary key.
func (b *Base) GetID() id.ID {
	return b.ID
}

// Envelope returns the lifecycle fields.
func (b *Base) Envelope() *Lifecycle {
	return &b.Lifecycle
}

// SnapshotRef returns the shadow snapshot for change tracking.
func (b *Base) SnapshotRef() *Snapshot {
	return &b.snapshot
}

// RelatedObjects returns the entities that cascade with this one.
// Default: none. Concrete types override.
func (b *Base) RelatedObjects() []SoftDeletable {
	return nil
}

// WatchedFields returns the fields tracked for history diffs, in
// declaration order. Default: none. Concrete types override; for
// foreign keys, watch the raw identifier (not the resolved object)
// to avoid an extra lookup and false positives.
func (b *Base) WatchedFields() []Field {
	return nil
}
