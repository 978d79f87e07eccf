// Package auth carries the authenticated identity through request contexts.
package auth

import (
	"context"

	"github.com/listling/listling/internal/model"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// userContextKey is the context key for the authenticated user.
const userContextKey contextKey = "current_user"

// ContextWithUser adds the authenticated user to the context.
func ContextWithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext retrieves the authenticated user from the context.
// Returns nil for anonymous requests.
func UserFromContext(ctx context.Context) *model.User {
	user, ok := ctx.Value(userContextKey).(*model.User)
	if !ok {
		return nil
	}
	return user
}

// EmailFromContext is a convenience function to get the current user's
// email. Returns empty string for anonymous requests.
func EmailFromContext(ctx context.Context) string {
	user := UserFromContext(ctx)
	if user == nil {
		return ""
	}
	return user.Email
}
