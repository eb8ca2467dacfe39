package history

import (
	"context"
	"fmt"

	appctx "basekit/internal/core/context"
	"basekit/internal/core/entity"
	"basekit/pkg/logger"
)

// Message prefixes. The actor's display name fills the first form.
const (
	userChangedPrefix      = "User %s changed: "
	anonymousChangedPrefix = "Anonymous user changed: "
)

// Recorder writes one audit record per tracked change.
//
// RecordChange is explicit: it is not triggered by every save. Callers
// invoke it when an audit entry is wanted; a forgotten call silently
// skips history.
type Recorder struct {
	repo Repository
}

// NewRecorder creates a recorder over the given repository.
func NewRecorder(repo Repository) *Recorder {
	return &Recorder{repo: repo}
}

// RecordChange diffs the subject's watched fields against its snapshot.
// If nothing changed, no record is created and (nil, nil) is returned.
// Otherwise one Record is appended, with the acting user resolved from
// context (nil actor means anonymous), and the subject's snapshot is
// refreshed so the completed cycle becomes the new baseline.
func (r *Recorder) RecordChange(ctx context.Context, subject entity.Tracked) (*Record, error) {
	diff := subject.SnapshotRef().Diff(subject)
	if diff == "" {
		return nil, nil
	}

	prefix := anonymousChangedPrefix
	actorID := appctx.GetActorID(ctx)
	if actor := appctx.GetActor(ctx); actor != nil && actor.Authenticated {
		prefix = fmt.Sprintf(userChangedPrefix, actor)
	}

	rec := &Record{
		Base:        entity.NewBase(),
		ActorID:     actorID,
		Description: prefix + diff,
		Ref:         entity.NewRef(subject),
	}
	if err := r.repo.Append(ctx, rec); err != nil {
		return nil, fmt.Errorf("append history record: %w", err)
	}

	subject.SnapshotRef().Capture(subject)

	logger.Debug(ctx, "history recorded",
		"subject_type", subject.TypeTag(),
		"subject_id", subject.GetID(),
		"record_id", rec.ID,
	)
	return rec, nil
}

// ForSubject returns the history of one entity, newest first.
func (r *Recorder) ForSubject(ctx context.Context, subject entity.SoftDeletable, limit, offset int) ([]*Record, error) {
	return r.repo.ListBySubject(ctx, entity.NewRef(subject), limit, offset)
}
