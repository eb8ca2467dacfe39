// Package lifecycle implements the soft-delete/restore state machine.
//
// Entities move between two states, active and deleted. Delete flags and
// timestamps the row, restore clears the flag; both cascade depth-first
// through each entity's declared related objects. Hard delete is the only
// physical removal and bypasses the state machine entirely.
package lifecycle

import (
	"context"
	"fmt"
	"time"

	"basekit/internal/core/entity"
	"basekit/pkg/logger"
)

// Store is the persistence port the engine drives. Save stamps the
// lifecycle timestamps and writes the entity's current state; Remove
// physically deletes the row.
type Store interface {
	Save(ctx context.Context, obj entity.SoftDeletable) error
	Remove(ctx context.Context, obj entity.SoftDeletable) error
}

type options struct {
	cascade bool
}

// Option configures a delete or restore operation.
type Option func(*options)

// WithCascade controls whether the operation propagates to related
// objects. Cascade is on by default.
func WithCascade(enabled bool) Option {
	return func(o *options) { o.cascade = enabled }
}

// WithoutCascade disables cascading for this operation. Intended for
// administrative fixes; ordinary deletes and restores cascade.
func WithoutCascade() Option {
	return WithCascade(false)
}

// Engine executes soft-delete state transitions against a Store.
type Engine struct {
	store Store
	clock func() time.Time
}

// NewEngine creates an engine over the given store.
func NewEngine(store Store) *Engine {
	return &Engine{store: store, clock: time.Now}
}

func applyOptions(opts []Option) options {
	o := options{cascade: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Delete transitions the entity to the deleted state: sets is_deleted and
// deleted_at, persists, runs the entity's AfterDelete hook, then cascades
// to every related object. Deleting an already-deleted entity re-stamps
// deleted_at and re-cascades.
//
// A persistence failure aborts the operation before any cascade. A failure
// partway through the cascade aborts the remaining branch; siblings already
// processed stay deleted (the cascade is sequential and non-atomic).
func (e *Engine) Delete(ctx context.Context, obj entity.SoftDeletable, opts ...Option) error {
	o := applyOptions(opts)

	now := e.clock().UTC()
	obj.Envelope().MarkDeleted(now)
	if err := e.store.Save(ctx, obj); err != nil {
		return fmt.Errorf("soft delete %s: %w", obj.TypeTag(), err)
	}
	logger.Debug(ctx, "entity soft-deleted", "type", obj.TypeTag(), "id", obj.GetID())

	if hook, ok := obj.(entity.DeleteHook); ok {
		if err := hook.AfterDelete(ctx); err != nil {
			return fmt.Errorf("after-delete hook %s: %w", obj.TypeTag(), err)
		}
	}

	if o.cascade {
		return e.cascade(ctx, obj, e.Delete, opts)
	}
	return nil
}

// Restore transitions the entity back to the active state: clears
// is_deleted and deleted_at, persists, runs AfterRestore, then cascades.
func (e *Engine) Restore(ctx context.Context, obj entity.SoftDeletable, opts ...Option) error {
	o := applyOptions(opts)

	obj.Envelope().ClearDeleted()
	if err := e.store.Save(ctx, obj); err != nil {
		return fmt.Errorf("restore %s: %w", obj.TypeTag(), err)
	}
	logger.Debug(ctx, "entity restored", "type", obj.TypeTag(), "id", obj.GetID())

	if hook, ok := obj.(entity.RestoreHook); ok {
		if err := hook.AfterRestore(ctx); err != nil {
			return fmt.Errorf("after-restore hook %s: %w", obj.TypeTag(), err)
		}
	}

	if o.cascade {
		return e.cascade(ctx, obj, e.Restore, opts)
	}
	return nil
}

// HardDelete physically removes the row. Irreversible. No cascade, no
// hooks, no history. Intended for data hygiene (purging fixtures), not
// user-facing deletion.
func (e *Engine) HardDelete(ctx context.Context, obj entity.SoftDeletable) error {
	if err := e.store.Remove(ctx, obj); err != nil {
		return fmt.Errorf("hard delete %s: %w", obj.TypeTag(), err)
	}
	logger.Debug(ctx, "entity hard-deleted", "type", obj.TypeTag(), "id", obj.GetID())
	return nil
}

// cascade applies op to each directly related object, sequentially and in
// declaration order. Depth is achieved by recursion: each related entity's
// own delete/restore cascades again. No cycle detection; a cyclic graph
// recurses unboundedly.
func (e *Engine) cascade(
	ctx context.Context,
	obj entity.SoftDeletable,
	op func(context.Context, entity.SoftDeletable, ...Option) error,
	opts []Option,
) error {
	rel, ok := obj.(entity.Related)
	if !ok {
		return nil
	}
	for _, child := range rel.RelatedObjects() {
		if child == nil {
			continue
		}
		if err := op(ctx, child, opts...); err != nil {
			return err
		}
	}
	return nil
}
