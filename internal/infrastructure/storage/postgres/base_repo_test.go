package postgres

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"basekit/internal/core/entity"
	"basekit/internal/core/id"
	"basekit/internal/domain/address"
)

func newTestRepo() *SoftDeleteRepo[*mockEntity] {
	return NewSoftDeleteRepo[*mockEntity](
		nil,
		"mock_entities",
		func() *mockEntity { return &mockEntity{} },
		WithSearchColumns[*mockEntity]("code", "name"),
	)
}

func TestSoftDeleteRepo_ActiveView_SQL(t *testing.T) {
	repo := newTestRepo()

	sql, args, err := repo.Active().baseSelect().ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "FROM mock_entities")
	assert.Contains(t, sql, "is_deleted = $1")
	assert.Equal(t, []any{false}, args)
}

func TestSoftDeleteRepo_DeletedView_SQL(t *testing.T) {
	repo := newTestRepo()

	sql, args, err := repo.Deleted().baseSelect().ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "is_deleted = $1")
	assert.Equal(t, []any{true}, args)
}

func TestSoftDeleteRepo_GlobalView_SQL(t *testing.T) {
	repo := newTestRepo()

	sql, args, err := repo.Global().baseSelect().ToSql()
	require.NoError(t, err)

	assert.NotContains(t, sql, "is_deleted =")
	assert.Empty(t, args)
}

func TestSoftDeleteRepo_OwnedByView_SQL(t *testing.T) {
	repo := NewSoftDeleteRepo[*address.Address](
		nil,
		"addresses",
		func() *address.Address { return &address.Address{} },
	)

	tag := "users"
	ownerID := id.New()
	owner := entity.Ref{ContentType: &tag, ObjectID: &ownerID}

	sql, args, err := repo.OwnedBy(owner).baseSelect().ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "is_deleted = $1", "owner view filters on top of the active view")
	assert.Contains(t, sql, "content_type = $2")
	assert.Contains(t, sql, "object_id = $3")
	// squirrel dereferences pointer args and renders uuid.UUID through
	// its driver.Valuer, so the bound args are plain values.
	assert.Equal(t, []any{false, "users", ownerID.String()}, args)
}

func TestSoftDeleteRepo_BulkRestore_SQL(t *testing.T) {
	repo := newTestRepo()

	// Same statement Restore builds: one UPDATE clearing both flags over
	// the deleted view.
	q := repo.Builder().
		Update("mock_entities").
		Set("is_deleted", false).
		Set("deleted_at", nil).
		Where(squirrel.Eq{"is_deleted": true})

	sql, args, err := q.ToSql()
	require.NoError(t, err)

	assert.Equal(t, "UPDATE mock_entities SET is_deleted = $1, deleted_at = $2 WHERE is_deleted = $3", sql)
	assert.Equal(t, []any{false, nil, true}, args)
}

func TestSoftDeleteRepo_HardDelete_SQL(t *testing.T) {
	repo := newTestRepo()
	entityID := id.New()

	q := repo.Builder().
		Delete("mock_entities").
		Where(squirrel.Eq{"id": entityID})

	sql, args, err := q.ToSql()
	require.NoError(t, err)

	assert.Equal(t, "DELETE FROM mock_entities WHERE id = $1", sql)
	assert.Equal(t, []any{entityID.String()}, args)
}

func TestSoftDeleteRepo_ParseOrderBy(t *testing.T) {
	repo := newTestRepo()

	orderBy, err := repo.parseOrderBy("")
	require.NoError(t, err)
	assert.Equal(t, "created_at DESC", orderBy)

	orderBy, err = repo.parseOrderBy("code")
	require.NoError(t, err)
	assert.Equal(t, "code ASC", orderBy)

	orderBy, err = repo.parseOrderBy("-updated_at")
	require.NoError(t, err)
	assert.Equal(t, "updated_at DESC", orderBy)

	orderBy, err = repo.parseOrderBy("+name")
	require.NoError(t, err)
	assert.Equal(t, "name ASC", orderBy)

	_, err = repo.parseOrderBy("no_such_column")
	assert.Error(t, err, "orderBy is restricted to known columns")

	_, err = repo.parseOrderBy("-")
	assert.Error(t, err)
}

func TestSoftDeleteRepo_ColumnData(t *testing.T) {
	repo := newTestRepo()

	m := &mockEntity{Base: entity.NewBase(), Code: "X", Name: "Y"}
	data := repo.columnData(m)

	assert.Equal(t, m.ID, data["id"])
	assert.Equal(t, "X", data["code"])
	assert.NotContains(t, data, "snapshot")
}
