package address

import (
	"context"

	"basekit/internal/core/entity"
	"basekit/internal/core/id"
	"basekit/internal/domain"
)

// Repository defines the persistence contract for addresses.
//
// Reads default to the active view; the deleted and global views are
// separate, named access paths so callers cannot see soft-deleted rows
// by accident.
type Repository interface {
	// Create inserts a new address.
	Create(ctx context.Context, a *Address) error

	// Save stamps the lifecycle timestamps and writes the current state.
	Save(ctx context.Context, a *Address) error

	// GetByID retrieves an address regardless of deletion state.
	GetByID(ctx context.Context, addressID id.ID) (*Address, error)

	// List returns active addresses.
	List(ctx context.Context, f domain.ListFilter) (domain.ListResult[*Address], error)

	// ListDeleted returns soft-deleted addresses.
	ListDeleted(ctx context.Context, f domain.ListFilter) (domain.ListResult[*Address], error)

	// ListAll returns addresses regardless of deletion state.
	ListAll(ctx context.Context, f domain.ListFilter) (domain.ListResult[*Address], error)

	// ListByOwner returns active addresses attached to one owner.
	ListByOwner(ctx context.Context, owner entity.Ref, f domain.ListFilter) (domain.ListResult[*Address], error)

	// RestoreWhere bulk-restores deleted addresses matching the owner
	// association. One UPDATE; no cascade, no history.
	RestoreWhere(ctx context.Context, owner entity.Ref) (int64, error)

	// HardDelete physically removes the row.
	HardDelete(ctx context.Context, addressID id.ID) error
}
