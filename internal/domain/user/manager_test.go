package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"basekit/internal/core/apperror"
	"basekit/internal/core/id"
	"basekit/internal/domain"
	"basekit/internal/domain/lifecycle"
)

// fakeRepo is a map-backed Repository.
type fakeRepo struct {
	users map[id.ID]*User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[id.ID]*User)}
}

func (r *fakeRepo) Create(_ context.Context, u *User) error {
	u.Envelope().StampSave(time.Now().UTC())
	r.users[u.ID] = u
	return nil
}

func (r *fakeRepo) Save(_ context.Context, u *User) error {
	u.Envelope().StampSave(time.Now().UTC())
	r.users[u.ID] = u
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, userID id.ID) (*User, error) {
	if u, ok := r.users[userID]; ok {
		return u, nil
	}
	return nil, apperror.NewNotFound("users", userID.String())
}

func (r *fakeRepo) GetByUsername(_ context.Context, username string) (*User, error) {
	for _, u := range r.users {
		if u.Username == username && !u.Deleted() {
			return u, nil
		}
	}
	return nil, apperror.NewNotFound("users", username)
}

func (r *fakeRepo) list(pred func(*User) bool) domain.ListResult[*User] {
	var result domain.ListResult[*User]
	for _, u := range r.users {
		if pred(u) {
			result.Items = append(result.Items, u)
		}
	}
	result.TotalCount = int64(len(result.Items))
	return result
}

func (r *fakeRepo) List(_ context.Context, _ domain.ListFilter) (domain.ListResult[*User], error) {
	return r.list(func(u *User) bool { return !u.Deleted() }), nil
}

func (r *fakeRepo) ListDeleted(_ context.Context, _ domain.ListFilter) (domain.ListResult[*User], error) {
	return r.list(func(u *User) bool { return u.Deleted() }), nil
}

func (r *fakeRepo) ListAll(_ context.Context, _ domain.ListFilter) (domain.ListResult[*User], error) {
	return r.list(func(u *User) bool { return true }), nil
}

func (r *fakeRepo) HardDelete(_ context.Context, userID id.ID) error {
	if _, ok := r.users[userID]; !ok {
		return apperror.NewNotFound("users", userID.String())
	}
	delete(r.users, userID)
	return nil
}

func newTestManager() (*Manager, *fakeRepo) {
	repo := newFakeRepo()
	dispatcher := lifecycle.NewDispatcher()
	dispatcher.Register(TypeTag, lifecycle.StoreFuncs[*User]{
		SaveFunc:   repo.Save,
		RemoveFunc: func(ctx context.Context, u *User) error { return repo.HardDelete(ctx, u.ID) },
	})
	return NewManager(repo, lifecycle.NewEngine(dispatcher)), repo
}

func TestManager_Register(t *testing.T) {
	m, repo := newTestManager()
	ctx := context.Background()

	u, err := m.Register(ctx, "alice", "alice@example.com", "s3cret-pass")
	require.NoError(t, err)

	assert.True(t, u.IsActive)
	assert.False(t, u.IsStaff)
	assert.NotEqual(t, "s3cret-pass", u.PasswordHash, "password must be stored hashed")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret-pass")))
	assert.Contains(t, repo.users, u.ID)
}

func TestManager_Register_Validation(t *testing.T) {
	m, _ := newTestManager()
	ctx := context.Background()

	_, err := m.Register(ctx, "alice", "alice@example.com", "")
	assert.Error(t, err)

	_, err = m.Register(ctx, "", "alice@example.com", "s3cret-pass")
	assert.Error(t, err)

	_, err = m.Register(ctx, "alice", "", "s3cret-pass")
	assert.Error(t, err)
}

func TestManager_Authenticate(t *testing.T) {
	m, _ := newTestManager()
	ctx := context.Background()

	registered, err := m.Register(ctx, "alice", "alice@example.com", "s3cret-pass")
	require.NoError(t, err)

	u, err := m.Authenticate(ctx, "alice", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, u.ID)
}

func TestManager_Authenticate_Failures(t *testing.T) {
	m, _ := newTestManager()
	ctx := context.Background()

	alice, err := m.Register(ctx, "alice", "alice@example.com", "s3cret-pass")
	require.NoError(t, err)

	// Wrong password
	_, err = m.Authenticate(ctx, "alice", "wrong")
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)

	// Unknown user: same code, no account enumeration
	_, err = m.Authenticate(ctx, "bob", "s3cret-pass")
	appErr, ok = apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)

	// Disabled account
	alice.IsActive = false
	_, err = m.Authenticate(ctx, "alice", "s3cret-pass")
	assert.Error(t, err)
}

func TestManager_DeleteBlocksAuthentication(t *testing.T) {
	m, _ := newTestManager()
	ctx := context.Background()

	alice, err := m.Register(ctx, "alice", "alice@example.com", "s3cret-pass")
	require.NoError(t, err)

	require.NoError(t, m.Delete(ctx, alice))
	assert.True(t, alice.Deleted())

	_, err = m.Authenticate(ctx, "alice", "s3cret-pass")
	assert.Error(t, err, "soft-deleted accounts are invisible to the active view")

	deleted, err := m.ListDeleted(ctx, domain.DefaultListFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted.TotalCount)
}

func TestManager_Restore(t *testing.T) {
	m, _ := newTestManager()
	ctx := context.Background()

	alice, err := m.Register(ctx, "alice", "alice@example.com", "s3cret-pass")
	require.NoError(t, err)

	require.NoError(t, m.Delete(ctx, alice))
	require.NoError(t, m.Restore(ctx, alice))

	_, err = m.Authenticate(ctx, "alice", "s3cret-pass")
	assert.NoError(t, err)
}

func TestManager_Purge(t *testing.T) {
	m, repo := newTestManager()
	ctx := context.Background()

	alice, err := m.Register(ctx, "alice", "alice@example.com", "s3cret-pass")
	require.NoError(t, err)

	require.NoError(t, m.Purge(ctx, alice))
	assert.NotContains(t, repo.users, alice.ID)
}
