package services

import (
	"context"

	"inkwell-cms/models"
)

// Actor is the authenticated user behind a request.
type Actor struct {
	UserID   uint
	Username string
	Role     models.UserRole
}

type actorKey struct{}

func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

func ActorFromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(Actor)
	return actor, ok
}
