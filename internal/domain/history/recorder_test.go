package history_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appctx "basekit/internal/core/context"
	"basekit/internal/core/entity"
	"basekit/internal/core/id"
	"basekit/internal/domain/history"
	"basekit/internal/infrastructure/storage/memory"
)

type fakeModel struct {
	entity.Base
	Test   string
	LinkID *id.ID
}

func newFakeModel(test string) *fakeModel {
	m := &fakeModel{Base: entity.NewBase(), Test: test}
	entity.CaptureSnapshot(m)
	return m
}

func (m *fakeModel) TypeTag() string { return "fake_models" }

func (m *fakeModel) WatchedFields() []entity.Field {
	return []entity.Field{
		{Name: "test", Value: m.Test},
		{Name: "link_id", Value: m.LinkID},
	}
}

func actorContext(username string) context.Context {
	return appctx.WithActor(context.Background(), &appctx.Actor{
		UserID:        id.New(),
		Username:      username,
		Authenticated: true,
	})
}

func TestRecorder_RecordChange_Anonymous(t *testing.T) {
	repo := memory.NewHistoryRepo()
	recorder := history.NewRecorder(repo)

	m := newFakeModel("A")
	m.Test = "B"

	rec, err := recorder.RecordChange(context.Background(), m)
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.Equal(t, "Anonymous user changed: test A -> B", rec.Description)
	assert.Nil(t, rec.ActorID)
	assert.True(t, rec.Ref.Matches(m))
}

func TestRecorder_RecordChange_AttributesActor(t *testing.T) {
	repo := memory.NewHistoryRepo()
	recorder := history.NewRecorder(repo)
	ctx := actorContext("alice")

	m := newFakeModel("A")
	m.Test = "B"

	rec, err := recorder.RecordChange(ctx, m)
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.Equal(t, "User alice changed: test A -> B", rec.Description)
	require.NotNil(t, rec.ActorID)
	assert.Equal(t, appctx.GetActor(ctx).UserID, *rec.ActorID)
}

func TestRecorder_RecordChange_NoChangesNoRecord(t *testing.T) {
	repo := memory.NewHistoryRepo()
	recorder := history.NewRecorder(repo)

	m := newFakeModel("A")

	rec, err := recorder.RecordChange(context.Background(), m)
	require.NoError(t, err)
	assert.Nil(t, rec)

	records, err := repo.List(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRecorder_RecordChange_RefNilToValue(t *testing.T) {
	repo := memory.NewHistoryRepo()
	recorder := history.NewRecorder(repo)

	m := newFakeModel("A")
	linkID := id.New()
	m.LinkID = &linkID

	rec, err := recorder.RecordChange(context.Background(), m)
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.Equal(t, "Anonymous user changed: link_id None -> "+linkID.String(), rec.Description)
}

func TestRecorder_RecordChange_RefreshesSnapshot(t *testing.T) {
	repo := memory.NewHistoryRepo()
	recorder := history.NewRecorder(repo)
	ctx := context.Background()

	m := newFakeModel("A")
	m.Test = "B"

	rec, err := recorder.RecordChange(ctx, m)
	require.NoError(t, err)
	require.NotNil(t, rec)

	// The recorded state is the new baseline: recording again without
	// further mutation is a no-op.
	rec, err = recorder.RecordChange(ctx, m)
	require.NoError(t, err)
	assert.Nil(t, rec)

	m.Test = "C"
	rec, err = recorder.RecordChange(ctx, m)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "Anonymous user changed: test B -> C", rec.Description)
}

func TestRecorder_ForSubject(t *testing.T) {
	repo := memory.NewHistoryRepo()
	recorder := history.NewRecorder(repo)
	ctx := context.Background()

	m1 := newFakeModel("A")
	m2 := newFakeModel("X")

	m1.Test = "B"
	_, err := recorder.RecordChange(ctx, m1)
	require.NoError(t, err)

	m2.Test = "Y"
	_, err = recorder.RecordChange(ctx, m2)
	require.NoError(t, err)

	m1.Test = "C"
	_, err = recorder.RecordChange(ctx, m1)
	require.NoError(t, err)

	records, err := recorder.ForSubject(ctx, m1, 10, 0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	for _, rec := range records {
		assert.True(t, rec.Ref.Matches(m1))
	}
}

func TestRecord_Validate(t *testing.T) {
	rec := &history.Record{Base: entity.NewBase()}
	assert.Error(t, rec.Validate(context.Background()))

	rec.Description = "User alice changed: test A -> B"
	assert.NoError(t, rec.Validate(context.Background()))
}
