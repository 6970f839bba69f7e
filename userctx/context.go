package userctx

import (
	"context"

	"github.com/blogem/clients-api/models"
)

// Context key type
type contextKey string

const userKey contextKey = "authenticated_user"

// SetUser adds the authenticated user to request context
func SetUser(ctx context.Context, user models.AuthenticatedUser) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetUser retrieves the authenticated user from request context
func GetUser(ctx context.Context) (models.AuthenticatedUser, bool) {
	user, ok := ctx.Value(userKey).(models.AuthenticatedUser)
	return user, ok
}
