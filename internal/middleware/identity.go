package middleware

import (
	"context"

	"github.com/google/uuid"
)

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying the verified user id
func WithIdentity(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, identityKey{}, userID)
}

// IdentityFrom reports the verified user id stored by the auth middleware.
// ok is false on public routes.
func IdentityFrom(ctx context.Context) (userID uuid.UUID, ok bool) {
	userID, ok = ctx.Value(identityKey{}).(uuid.UUID)
	return userID, ok && userID != uuid.Nil
}
