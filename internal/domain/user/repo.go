package user

import (
	"context"

	"basekit/internal/core/id"
	"basekit/internal/domain"
)

// Repository defines the persistence contract for user accounts.
type Repository interface {
	// Create inserts a new user.
	Create(ctx context.Context, u *User) error

	// Save stamps the lifecycle timestamps and writes the current state.
	Save(ctx context.Context, u *User) error

	// GetByID retrieves a user regardless of deletion state.
	GetByID(ctx context.Context, userID id.ID) (*User, error)

	// GetByUsername retrieves an active user by username.
	GetByUsername(ctx context.Context, username string) (*User, error)

	// List returns active users.
	List(ctx context.Context, f domain.ListFilter) (domain.ListResult[*User], error)

	// ListDeleted returns soft-deleted users.
	ListDeleted(ctx context.Context, f domain.ListFilter) (domain.ListResult[*User], error)

	// ListAll returns users regardless of deletion state.
	ListAll(ctx context.Context, f domain.ListFilter) (domain.ListResult[*User], error)

	// HardDelete physically removes the row.
	HardDelete(ctx context.Context, userID id.ID) error
}
