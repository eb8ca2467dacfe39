package entity

import (
	"context"
	"sync"

	"basekit/internal/core/id"
)

// Ref is a generic association: a (type tag, object id) pair that lets a
// record reference an entity of any registered type. Both halves are
// nullable; if one is present the other should be too, but that is the
// caller's responsibility, not enforced at the storage layer.
type Ref struct {
	ContentType *string `db:"content_type" json:"contentType,omitempty"`
	ObjectID    *id.ID  `db:"object_id" json:"objectId,omitempty"`
}

// NewRef builds a Ref pointing at the given entity.
func NewRef(obj SoftDeletable) Ref {
	tag := obj.TypeTag()
	oid := obj.GetID()
	return Ref{ContentType: &tag, ObjectID: &oid}
}

// IsZero reports whether the association is absent.
func (r Ref) IsZero() bool {
	return r.ContentType == nil && r.ObjectID == nil
}

// Matches reports whether the Ref points at the given entity.
func (r Ref) Matches(obj SoftDeletable) bool {
	return r.ContentType != nil && *r.ContentType == obj.TypeTag() &&
		r.ObjectID != nil && *r.ObjectID == obj.GetID()
}

// Resolver loads the concrete entity behind an object id of one type.
// Implementations return (nil, nil) when the row does not exist.
type Resolver func(ctx context.Context, objectID id.ID) (SoftDeletable, error)

// Registry maps type tags to resolvers. Each concrete entity type
// registers itself once at wiring time; Resolve then turns a Ref back
// into the entity it points at.
type Registry struct {
	mu        sync.RWMutex
	resolvers map[string]Resolver
}

// NewRegistry creates an empty resolver registry.
func NewRegistry() *Registry {
	return &Registry{resolvers: make(map[string]Resolver)}
}

// Register adds a resolver for a type tag, replacing any previous one.
func (g *Registry) Register(typeTag string, fn Resolver) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.resolvers[typeTag] = fn
}

// Resolve returns the entity a Ref points at. An absent association,
// an unregistered type tag or a missing row all resolve to (nil, nil);
// callers must nil-check before dereferencing. Persistence failures
// propagate unmodified.
func (g *Registry) Resolve(ctx context.Context, ref Ref) (SoftDeletable, error) {
	if ref.ContentType == nil || ref.ObjectID == nil {
		return nil, nil
	}
	g.mu.RLock()
	fn, ok := g.resolvers[*ref.ContentType]
	g.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return fn(ctx, *ref.ObjectID)
}
