package auth

import (
	"context"
	"errors"
)

// UserContext is the signed-in user attached to a request
type UserContext struct {
	UserID string
	Email  string
	Role   string
}

type contextKey string

// UserContextKey stores the *UserContext in a request context
const UserContextKey contextKey = "user"

// GetUserFromContext extracts user from context
func GetUserFromContext(ctx context.Context) (*UserContext, error) {
	user, ok := ctx.Value(UserContextKey).(*UserContext)
	if !ok || user == nil {
		return nil, errors.New("user not found in context")
	}
	return user, nil
}

// SetUserInContext adds user to context
func SetUserInContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, UserContextKey, user)
}

// ContextIdentity reads the owner from the request context populated by the
// auth middleware
type ContextIdentity struct{}

// NewContextIdentity creates the request-scoped identity provider
func NewContextIdentity() ContextIdentity {
	return ContextIdentity{}
}

// CurrentOwner implements ports.IdentityProvider
func (ContextIdentity) CurrentOwner(ctx context.Context) (string, bool) {
	user, err := GetUserFromContext(ctx)
	if err != nil || user.UserID == "" {
		return "", false
	}
	return user.UserID, true
}
