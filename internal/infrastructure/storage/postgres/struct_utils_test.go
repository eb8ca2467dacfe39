package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"basekit/internal/core/entity"
	"basekit/internal/core/id"
)

type mockEntity struct {
	entity.Base
	Code string `db:"code" json:"code"`
	Name string `db:"name" json:"name"`
}

func (m *mockEntity) TypeTag() string { return "mock_entities" }

func TestExtractDBColumns_LifecycleFields(t *testing.T) {
	cols := ExtractDBColumns[*mockEntity]()

	expectedCols := []string{
		"id", "created_at", "updated_at", "is_deleted", "deleted_at", "code", "name",
	}

	for _, expected := range expectedCols {
		assert.Contains(t, cols, expected)
	}
}

func TestStructToMap_LifecycleFields(t *testing.T) {
	now := time.Now().UTC()
	m := mockEntity{
		Base: entity.NewBase(),
		Code: "TEST",
		Name: "Test Name",
	}
	m.CreatedAt = now
	m.UpdatedAt = now
	m.MarkDeleted(now)

	data := StructToMap(&m)

	assert.Equal(t, m.ID, data["id"])
	assert.Equal(t, now, data["created_at"])
	assert.Equal(t, now, data["updated_at"])
	assert.Equal(t, true, data["is_deleted"])
	assert.Equal(t, &now, data["deleted_at"])
	assert.Equal(t, "TEST", data["code"])
	assert.Equal(t, "Test Name", data["name"])
}

func TestStructToMap_SkipsUnexportedSnapshot(t *testing.T) {
	m := &mockEntity{Base: entity.NewBase(), Code: "TEST"}

	data := StructToMap(m)

	// The change-tracking snapshot has no db tag and must never appear.
	assert.NotContains(t, data, "snapshot")
	assert.Len(t, data, 7)
}

func TestStructToMap_NonStruct(t *testing.T) {
	assert.Nil(t, StructToMap(42))
	assert.Nil(t, StructToMap("hello"))
}

func TestStructToMap_GenericRefColumns(t *testing.T) {
	type owned struct {
		entity.Base
		entity.Ref
		Label string `db:"label"`
	}

	tag := "users"
	oid := id.New()
	o := &owned{Base: entity.NewBase(), Label: "x"}
	o.Ref = entity.Ref{ContentType: &tag, ObjectID: &oid}

	data := StructToMap(o)

	assert.Equal(t, &tag, data["content_type"])
	assert.Equal(t, &oid, data["object_id"])
	assert.Equal(t, "x", data["label"])
}
