// Package user provides the soft-deletable user account.
package user

import (
	"context"

	"basekit/internal/core/apperror"
	"basekit/internal/core/entity"
)

// TypeTag identifies users in generic associations.
const TypeTag = "users"

// User is a system account. Deleting a user soft-deletes it like any
// other entity; the account disappears from the active view but keeps
// its history intact.
type User struct {
	entity.Base

	Username     string `db:"username" json:"username"`
	Email        string `db:"email" json:"email"`
	PasswordHash string `db:"password_hash" json:"-"`
	IsActive     bool   `db:"is_active" json:"isActive"`
	IsStaff      bool   `db:"is_staff" json:"isStaff"`
}

// TypeTag implements entity.SoftDeletable.
func (u *User) TypeTag() string {
	return TypeTag
}

// Validate checks account invariants.
func (u *User) Validate(ctx context.Context) error {
	if u.Username == "" {
		return apperror.NewValidation("username is required").
			WithDetail("field", "username")
	}
	if u.Email == "" {
		return apperror.NewValidation("email is required").
			WithDetail("field", "email")
	}
	return nil
}
