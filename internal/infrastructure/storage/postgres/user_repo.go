package postgres

import (
	"context"

	"github.com/Masterminds/squirrel"

	"basekit/internal/domain"
	"basekit/internal/domain/user"
)

// Compile-time check that UserRepo implements user.Repository.
var _ user.Repository = (*UserRepo)(nil)

// UserRepo persists user accounts in the "users" table.
type UserRepo struct {
	*SoftDeleteRepo[*user.User]
}

// NewUserRepo creates the user repository.
func NewUserRepo(txm *TxManager) *UserRepo {
	return &UserRepo{
		SoftDeleteRepo: NewSoftDeleteRepo(
			txm,
			"users",
			func() *user.User { return &user.User{} },
			WithSearchColumns[*user.User]("username", "email"),
		),
	}
}

// GetByUsername retrieves an active user by username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	return r.Active().FindOne(ctx, squirrel.Eq{"username": username})
}

// List returns active users.
func (r *UserRepo) List(ctx context.Context, f domain.ListFilter) (domain.ListResult[*user.User], error) {
	return r.Active().List(ctx, f)
}

// ListDeleted returns soft-deleted users.
func (r *UserRepo) ListDeleted(ctx context.Context, f domain.ListFilter) (domain.ListResult[*user.User], error) {
	return r.Deleted().List(ctx, f)
}

// ListAll returns users regardless of deletion state.
func (r *UserRepo) ListAll(ctx context.Context, f domain.ListFilter) (domain.ListResult[*user.User], error) {
	return r.Global().List(ctx, f)
}
