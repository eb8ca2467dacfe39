// Package history records immutable audit entries for tracked changes.
package history

import (
	"context"

	"basekit/internal/core/apperror"
	"basekit/internal/core/entity"
	"basekit/internal/core/id"
)

// TypeTag identifies history records in generic associations.
const TypeTag = "historics"

// Record is one audit entry: who changed what. Immutable once created;
// nothing in the application flow updates or deletes it, and the admin
// surface for it is read-only.
type Record struct {
	entity.Base

	// ActorID references the acting user; nil means anonymous
	ActorID *id.ID `db:"actor_id" json:"actorId,omitempty"`

	// Description is the rendered change message
	Description string `db:"description" json:"description"`

	// Subject is the generic association to the entity that changed
	entity.Ref
}

// TypeTag implements entity.SoftDeletable.
func (r *Record) TypeTag() string {
	return TypeTag
}

// Validate checks record invariants.
func (r *Record) Validate(ctx context.Context) error {
	if r.Description == "" {
		return apperror.NewValidation("description is required").
			WithDetail("field", "description")
	}
	return nil
}

// Repository is the persistence contract for history records.
// It is append-only: no update or delete methods, by design.
type Repository interface {
	// Append inserts a new record.
	Append(ctx context.Context, rec *Record) error

	// ListBySubject returns records attached to one entity, newest first.
	ListBySubject(ctx context.Context, subject entity.Ref, limit, offset int) ([]*Record, error)

	// List returns records across all subjects, newest first.
	List(ctx context.Context, limit, offset int) ([]*Record, error)
}
