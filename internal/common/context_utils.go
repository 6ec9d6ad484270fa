package common

import (
	"context"

	"planit/internal/models"
)

type contextKey string

const (
	IdentityKey contextKey = "identity"

	// EchoIdentityKey is the echo.Context key holding the resolved user.
	EchoIdentityKey = "identity"
)

// WithIdentity attaches the authenticated user to ctx.
func WithIdentity(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, IdentityKey, user)
}

// IdentityFromContext returns the authenticated user, if any.
func IdentityFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(IdentityKey).(*models.User)
	return user, ok && user != nil
}

// GetUserIDFromContext extracts the authenticated user ID from ctx.
func GetUserIDFromContext(ctx context.Context) (models.ID, bool) {
	user, ok := IdentityFromContext(ctx)
	if !ok {
		return "", false
	}
	return user.ID, true
}
