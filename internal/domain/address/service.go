package address

import (
	"context"
	"fmt"

	"basekit/internal/core/entity"
	"basekit/internal/core/id"
	"basekit/internal/core/tx"
	"basekit/internal/domain"
	"basekit/internal/domain/history"
	"basekit/internal/domain/lifecycle"
)

// Service coordinates address persistence, lifecycle transitions and
// history recording.
type Service struct {
	repo     Repository
	engine   *lifecycle.Engine
	recorder *history.Recorder
	txm      tx.Manager
}

// NewService creates the address service.
func NewService(repo Repository, engine *lifecycle.Engine, recorder *history.Recorder, txm tx.Manager) *Service {
	return &Service{repo: repo, engine: engine, recorder: recorder, txm: txm}
}

// Create validates and inserts a new address.
func (s *Service) Create(ctx context.Context, a *Address) error {
	if err := a.Validate(ctx); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return fmt.Errorf("create address: %w", err)
	}
	// New rows diff against their creation state, not against zero values.
	entity.CaptureSnapshot(a)
	return nil
}

// Save persists the address and records one history entry for whatever
// watched fields changed since the last snapshot, in a single
// transaction. An unchanged address is saved without a history record.
func (s *Service) Save(ctx context.Context, a *Address) error {
	if err := a.Validate(ctx); err != nil {
		return err
	}
	return s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Save(ctx, a); err != nil {
			return fmt.Errorf("save address: %w", err)
		}
		if _, err := s.recorder.RecordChange(ctx, a); err != nil {
			return err
		}
		return nil
	})
}

// Get retrieves an address regardless of deletion state.
func (s *Service) Get(ctx context.Context, addressID id.ID) (*Address, error) {
	return s.repo.GetByID(ctx, addressID)
}

// List returns active addresses.
func (s *Service) List(ctx context.Context, f domain.ListFilter) (domain.ListResult[*Address], error) {
	return s.repo.List(ctx, f)
}

// ListDeleted returns soft-deleted addresses.
func (s *Service) ListDeleted(ctx context.Context, f domain.ListFilter) (domain.ListResult[*Address], error) {
	return s.repo.ListDeleted(ctx, f)
}

// ListByOwner returns active addresses attached to one owner.
func (s *Service) ListByOwner(ctx context.Context, owner entity.Ref, f domain.ListFilter) (domain.ListResult[*Address], error) {
	return s.repo.ListByOwner(ctx, owner, f)
}

// Delete soft-deletes the address through the lifecycle engine.
func (s *Service) Delete(ctx context.Context, a *Address, opts ...lifecycle.Option) error {
	return s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.engine.Delete(ctx, a, opts...)
	})
}

// Restore brings a soft-deleted address back.
func (s *Service) Restore(ctx context.Context, a *Address, opts ...lifecycle.Option) error {
	return s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.engine.Restore(ctx, a, opts...)
	})
}

// RestoreByOwner bulk-restores all deleted addresses of one owner in a
// single UPDATE. No cascade, no history.
func (s *Service) RestoreByOwner(ctx context.Context, owner entity.Ref) (int64, error) {
	return s.repo.RestoreWhere(ctx, owner)
}

// HardDelete physically removes the address. Irreversible.
func (s *Service) HardDelete(ctx context.Context, a *Address) error {
	return s.engine.HardDelete(ctx, a)
}

// History returns the audit trail of one address, newest first.
func (s *Service) History(ctx context.Context, a *Address, limit, offset int) ([]*history.Record, error) {
	return s.recorder.ForSubject(ctx, a, limit, offset)
}
