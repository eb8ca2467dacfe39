// Package context provides request-scoped values extraction.
package context

import (
	"context"

	"basekit/internal/core/id"
)

// Actor identifies who is performing the current operation.
// History records reference the actor; an absent or unauthenticated
// actor is recorded as anonymous.
type Actor struct {
	UserID        id.ID
	Username      string
	Email         string
	Authenticated bool
}

// String returns the human-readable identifier used in history messages.
func (a *Actor) String() string {
	if a.Username != "" {
		return a.Username
	}
	if a.Email != "" {
		return a.Email
	}
	return a.UserID.String()
}

type actorContextKey struct{}

// WithActor adds Actor to context.
func WithActor(ctx context.Context, actor *Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

// GetActor returns Actor from context, or nil when the request is anonymous.
func GetActor(ctx context.Context) *Actor {
	if v, ok := ctx.Value(actorContextKey{}).(*Actor); ok {
		return v
	}
	return nil
}

// GetActorID returns the acting user's ID from context or nil.
func GetActorID(ctx context.Context) *id.ID {
	if a := GetActor(ctx); a != nil && a.Authenticated {
		uid := a.UserID
		return &uid
	}
	return nil
}
