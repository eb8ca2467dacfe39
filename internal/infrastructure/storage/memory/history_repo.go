package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"basekit/internal/core/entity"
	"basekit/internal/domain/history"
)

// Compile-time check that HistoryRepo implements history.Repository.
var _ history.Repository = (*HistoryRepo)(nil)

// HistoryRepo is an append-only in-memory history store.
type HistoryRepo struct {
	mu      sync.RWMutex
	records []*history.Record
}

// NewHistoryRepo creates an empty in-memory history repository.
func NewHistoryRepo() *HistoryRepo {
	return &HistoryRepo{}
}

// Append stores a new record.
func (r *HistoryRepo) Append(ctx context.Context, rec *history.Record) error {
	if err := rec.Validate(ctx); err != nil {
		return err
	}
	rec.Envelope().StampSave(time.Now().UTC())

	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
	return nil
}

// ListBySubject returns records attached to one entity, newest first.
func (r *HistoryRepo) ListBySubject(_ context.Context, subject entity.Ref, limit, offset int) ([]*history.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*history.Record
	for _, rec := range r.records {
		if refEqual(rec.Ref, subject) {
			matched = append(matched, rec)
		}
	}
	return paginate(matched, limit, offset), nil
}

// List returns records across all subjects, newest first.
func (r *HistoryRepo) List(_ context.Context, limit, offset int) ([]*history.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*history.Record, len(r.records))
	copy(all, r.records)
	return paginate(all, limit, offset), nil
}

func refEqual(a, b entity.Ref) bool {
	switch {
	case a.ContentType == nil || b.ContentType == nil:
		return false
	case a.ObjectID == nil || b.ObjectID == nil:
		return false
	}
	return *a.ContentType == *b.ContentType && *a.ObjectID == *b.ObjectID
}

func paginate(records []*history.Record, limit, offset int) []*history.Record {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})

	if offset >= len(records) {
		return nil
	}
	records = records[offset:]
	if limit > 0 && limit < len(records) {
		records = records[:limit]
	}
	return records
}
