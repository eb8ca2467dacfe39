package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"basekit/internal/core/id"
)

type trackedThing struct {
	Base
	Name   string
	Code   *string
	LinkID *id.ID
}

func (t *trackedThing) TypeTag() string { return "things" }

func (t *trackedThing) WatchedFields() []Field {
	return []Field{
		{Name: "name", Value: t.Name},
		{Name: "code", Value: t.Code},
		{Name: "link_id", Value: t.LinkID},
	}
}

func TestSnapshot_Diff_SingleChange(t *testing.T) {
	thing := &trackedThing{Base: NewBase(), Name: "A"}
	CaptureSnapshot(thing)

	thing.Name = "B"

	assert.Equal(t, "name A -> B", thing.SnapshotRef().Diff(thing))
}

func TestSnapshot_Diff_NoChange(t *testing.T) {
	code := "X1"
	thing := &trackedThing{Base: NewBase(), Name: "A", Code: &code}
	CaptureSnapshot(thing)

	assert.Equal(t, "", thing.SnapshotRef().Diff(thing))
}

func TestSnapshot_Diff_NilToValue(t *testing.T) {
	thing := &trackedThing{Base: NewBase(), Name: "A"}
	CaptureSnapshot(thing)

	linkID := id.New()
	thing.LinkID = &linkID

	assert.Equal(t, "link_id None -> "+linkID.String(), thing.SnapshotRef().Diff(thing))
}

func TestSnapshot_Diff_ValueToNil(t *testing.T) {
	code := "X1"
	thing := &trackedThing{Base: NewBase(), Name: "A", Code: &code}
	CaptureSnapshot(thing)

	thing.Code = nil

	assert.Equal(t, "code X1 -> None", thing.SnapshotRef().Diff(thing))
}

func TestSnapshot_Diff_MultipleChangesInDeclarationOrder(t *testing.T) {
	thing := &trackedThing{Base: NewBase(), Name: "A"}
	CaptureSnapshot(thing)

	code := "X1"
	thing.Name = "B"
	thing.Code = &code

	assert.Equal(t, "name A -> B code None -> X1", thing.SnapshotRef().Diff(thing))
}

func TestSnapshot_Diff_MissingKeyCountsAsChanged(t *testing.T) {
	// Never captured: every watched field diffs from the absence marker.
	thing := &trackedThing{Base: NewBase(), Name: "A"}

	diff := thing.SnapshotRef().Diff(thing)
	assert.Contains(t, diff, "name None -> A")
}

func TestSnapshot_CaptureRefreshesBaseline(t *testing.T) {
	thing := &trackedThing{Base: NewBase(), Name: "A"}
	CaptureSnapshot(thing)

	thing.Name = "B"
	assert.NotEmpty(t, thing.SnapshotRef().Diff(thing))

	CaptureSnapshot(thing)
	assert.Equal(t, "", thing.SnapshotRef().Diff(thing))
}

func TestSnapshot_Taken(t *testing.T) {
	thing := &trackedThing{Base: NewBase()}
	assert.False(t, thing.SnapshotRef().Taken())

	CaptureSnapshot(thing)
	assert.True(t, thing.SnapshotRef().Taken())
}

func TestFormatValue(t *testing.T) {
	s := "hello"
	n := 7

	assert.Equal(t, "None", FormatValue(nil))
	assert.Equal(t, "None", FormatValue((*string)(nil)))
	assert.Equal(t, "hello", FormatValue(s))
	assert.Equal(t, "hello", FormatValue(&s))
	assert.Equal(t, "7", FormatValue(&n))
}
