// Package entity provides the soft-delete entity model: lifecycle envelope,
// change tracking and generic associations.
package entity

import "time"

// Lifecycle is the audit envelope embedded in every soft-deletable entity.
// Invariant: IsDeleted = true ⟺ DeletedAt != nil.
type Lifecycle struct {
	// CreatedAt is set once on first persist, never overwritten after
	CreatedAt time.Time `db:"created_at" json:"createdAt"`

	// UpdatedAt is set on every persist
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`

	// IsDeleted indicates soft-deleted entity
	IsDeleted bool `db:"is_deleted" json:"isDeleted"`

	// DeletedAt is null unless IsDeleted
	DeletedAt *time.Time `db:"deleted_at" json:"deletedAt,omitempty"`
}

// StampSave applies the persist-time timestamp contract: CreatedAt is set
// only when still unset, UpdatedAt always. Stores call this before every write.
func (l *Lifecycle) StampSave(now time.Time) {
	if l.CreatedAt.IsZero() {
		l.CreatedAt = now
	}
	l.UpdatedAt = now
}

// MarkDeleted flags the entity as soft-deleted at the given time.
func (l *Lifecycle) MarkDeleted(now time.Time) {
	l.IsDeleted = true
	l.DeletedAt = &now
}

// ClearDeleted removes the soft-delete flag (restore).
func (l *Lifecycle) ClearDeleted() {
	l.IsDeleted = false
	l.DeletedAt = nil
}

// Deleted returns true if the entity is soft-deleted.
func (l *Lifecycle) Deleted() bool {
	return l.IsDeleted
}

// IsNew reports whether the entity has never been persisted.
// CreatedAt is the persistence identity marker: zero until first save.
func (l *Lifecycle) IsNew() bool {
	return l.CreatedAt.IsZero()
}
