package lifecycle

import (
	"context"
	"fmt"
	"sync"

	"basekit/internal/core/apperror"
	"basekit/internal/core/entity"
)

// EntityStore persists one entity type.
type EntityStore interface {
	Save(ctx context.Context, obj entity.SoftDeletable) error
	Remove(ctx context.Context, obj entity.SoftDeletable) error
}

// Compile-time check that Dispatcher implements Store.
var _ Store = (*Dispatcher)(nil)

// Dispatcher routes Store calls to per-type stores keyed by type tag,
// so one engine can drive a cascade that crosses entity types.
type Dispatcher struct {
	mu     sync.RWMutex
	stores map[string]EntityStore
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{stores: make(map[string]EntityStore)}
}

// Register binds a type tag to its store. Later registrations for the
// same tag replace earlier ones.
func (d *Dispatcher) Register(typeTag string, store EntityStore) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stores[typeTag] = store
}

func (d *Dispatcher) storeFor(obj entity.SoftDeletable) (EntityStore, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	s, ok := d.stores[obj.TypeTag()]
	if !ok {
		return nil, apperror.NewInternal(fmt.Errorf("no store registered for entity type %q", obj.TypeTag()))
	}
	return s, nil
}

// Save routes to the store registered for the entity's type.
func (d *Dispatcher) Save(ctx context.Context, obj entity.SoftDeletable) error {
	s, err := d.storeFor(obj)
	if err != nil {
		return err
	}
	return s.Save(ctx, obj)
}

// Remove routes to the store registered for the entity's type.
func (d *Dispatcher) Remove(ctx context.Context, obj entity.SoftDeletable) error {
	s, err := d.storeFor(obj)
	if err != nil {
		return err
	}
	return s.Remove(ctx, obj)
}

// StoreFuncs adapts a pair of typed functions into an EntityStore.
// Repositories expose typed Save and HardDelete methods; this bridges
// them to the engine's untyped port.
type StoreFuncs[T entity.SoftDeletable] struct {
	SaveFunc   func(ctx context.Context, obj T) error
	RemoveFunc func(ctx context.Context, obj T) error
}

// Save asserts the entity to the concrete type and delegates.
func (f StoreFuncs[T]) Save(ctx context.Context, obj entity.SoftDeletable) error {
	typed, ok := obj.(T)
	if !ok {
		return apperror.NewInternal(fmt.Errorf("entity type mismatch for %q", obj.TypeTag()))
	}
	return f.SaveFunc(ctx, typed)
}

// Remove asserts the entity to the concrete type and delegates.
func (f StoreFuncs[T]) Remove(ctx context.Context, obj entity.SoftDeletable) error {
	typed, ok := obj.(T)
	if !ok {
		return apperror.NewInternal(fmt.Errorf("entity type mismatch for %q", obj.TypeTag()))
	}
	return f.RemoveFunc(ctx, typed)
}
