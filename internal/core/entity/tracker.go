package entity

import (
	"fmt"
	"reflect"
	"strings"
)

// NoneMarker is the textual representation of an absent value in
// change-history diffs.
const NoneMarker = "None"

// Field is one watched field: a name and its live value.
// Foreign keys carry the raw identifier, not the resolved entity.
type Field struct {
	Name  string
	Value any
}

// Watched is implemented by entities that declare fields for change
// tracking. The returned order determines clause order in diff messages.
type Watched interface {
	WatchedFields() []Field
}

// Snapshot holds the captured prior values of an entity's watched fields,
// keyed by field name. It is an explicit mapping populated at
// construction/hydration and refreshed only when a save-and-record cycle
// completes.
type Snapshot struct {
	values map[string]string
}

// Capture stores the current value of every watched field.
func (s *Snapshot) Capture(w Watched) {
	fields := w.WatchedFields()
	s.values = make(map[string]string, len(fields))
	for _, f := range fields {
		s.values[f.Name] = FormatValue(f.Value)
	}
}

// Taken reports whether the snapshot has been captured.
func (s *Snapshot) Taken() bool {
	return s.values != nil
}

// Diff compares the snapshot against the entity's live watched values and
// returns one "{field} {old} -> {new}" clause per changed field, joined by
// single spaces, in declaration order. Returns "" when nothing changed.
//
// A field missing from the snapshot (entity never properly captured)
// counts as changed; suppressing a legitimate first change would be worse
// than a spurious clause.
func (s *Snapshot) Diff(w Watched) string {
	var changes []string
	for _, f := range w.WatchedFields() {
		live := FormatValue(f.Value)
		old, ok := s.values[f.Name]
		if !ok {
			old = NoneMarker
		}
		if !ok || old != live {
			changes = append(changes, fmt.Sprintf("%s %s -> %s", f.Name, old, live))
		}
	}
	return strings.Join(changes, " ")
}

// FormatValue renders a value the way it appears in diff clauses.
// Nil values and nil pointers render as the absence marker; pointers are
// dereferenced so that *string and string produce the same text.
func FormatValue(v any) string {
	if v == nil {
		return NoneMarker
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return NoneMarker
		}
		rv = rv.Elem()
	}
	return fmt.Sprintf("%v", rv.Interface())
}

// CaptureSnapshot takes the watched-field snapshot for an entity.
// Constructors and stores call it immediately after field initialization
// or row hydration.
func CaptureSnapshot(t Tracked) {
	t.SnapshotRef().Capture(t)
}
