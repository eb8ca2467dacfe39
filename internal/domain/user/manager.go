package user

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"basekit/internal/core/apperror"
	"basekit/internal/core/entity"
	"basekit/internal/core/id"
	"basekit/internal/domain"
	"basekit/internal/domain/lifecycle"
)

// Manager combines account operations and soft-delete lifecycle
// operations in one explicit composition: it holds the repository for
// account behavior and the lifecycle engine for delete/restore, and
// exposes the combined surface directly.
type Manager struct {
	repo   Repository
	engine *lifecycle.Engine
}

// NewManager creates a user manager.
func NewManager(repo Repository, engine *lifecycle.Engine) *Manager {
	return &Manager{repo: repo, engine: engine}
}

// Register creates a new account with a bcrypt-hashed password.
func (m *Manager) Register(ctx context.Context, username, email, password string) (*User, error) {
	if password == "" {
		return nil, apperror.NewValidation("password is required").
			WithDetail("field", "password")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &User{
		Base:         entity.NewBase(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := u.Validate(ctx); err != nil {
		return nil, err
	}
	if err := m.repo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// Authenticate verifies credentials against the active view and returns
// the account. Soft-deleted users cannot authenticate.
func (m *Manager) Authenticate(ctx context.Context, username, password string) (*User, error) {
	u, err := m.repo.GetByUsername(ctx, username)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewUnauthorized("invalid credentials")
		}
		return nil, err
	}
	if !u.IsActive {
		return nil, apperror.NewUnauthorized("account disabled")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, apperror.NewUnauthorized("invalid credentials")
	}
	return u, nil
}

// GetByID retrieves a user regardless of deletion state.
func (m *Manager) GetByID(ctx context.Context, userID id.ID) (*User, error) {
	return m.repo.GetByID(ctx, userID)
}

// List returns active users.
func (m *Manager) List(ctx context.Context, f domain.ListFilter) (domain.ListResult[*User], error) {
	return m.repo.List(ctx, f)
}

// ListDeleted returns soft-deleted users.
func (m *Manager) ListDeleted(ctx context.Context, f domain.ListFilter) (domain.ListResult[*User], error) {
	return m.repo.ListDeleted(ctx, f)
}

// Delete soft-deletes the account through the lifecycle engine
// (cascades to the user's related objects).
func (m *Manager) Delete(ctx context.Context, u *User, opts ...lifecycle.Option) error {
	return m.engine.Delete(ctx, u, opts...)
}

// Restore brings a soft-deleted account back through the lifecycle engine.
func (m *Manager) Restore(ctx context.Context, u *User, opts ...lifecycle.Option) error {
	return m.engine.Restore(ctx, u, opts...)
}

// Purge physically removes the account. Irreversible, non-cascading.
func (m *Manager) Purge(ctx context.Context, u *User) error {
	return m.engine.HardDelete(ctx, u)
}
