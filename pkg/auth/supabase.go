package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/supabase-community/supabase-go"
)

// UserLookup resolves an access token against the auth server
type UserLookup func(token string) (*UserContext, error)

// SupabaseVerifier checks tokens with the Supabase auth API, so revoked
// sessions are rejected even while the token is unexpired.
type SupabaseVerifier struct {
	lookup UserLookup
}

// NewSupabaseVerifier creates a verifier backed by a Supabase client
func NewSupabaseVerifier(client *supabase.Client) *SupabaseVerifier {
	return NewSupabaseVerifierWithLookup(func(token string) (*UserContext, error) {
		user, err := client.Auth.WithToken(token).GetUser()
		if err != nil {
			return nil, err
		}
		return &UserContext{
			UserID: user.ID.String(),
			Email:  user.Email,
			Role:   user.Role,
		}, nil
	})
}

// NewSupabaseVerifierWithLookup creates a verifier around a custom lookup
func NewSupabaseVerifierWithLookup(lookup UserLookup) *SupabaseVerifier {
	return &SupabaseVerifier{lookup: lookup}
}

// Verify implements TokenVerifier
func (v *SupabaseVerifier) Verify(ctx context.Context, token string) (*UserContext, error) {
	token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
	if token == "" {
		return nil, ErrMissingToken
	}

	user, err := v.lookup(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if user == nil || user.UserID == "" {
		return nil, fmt.Errorf("%w: missing user ID", ErrInvalidClaims)
	}
	return user, nil
}
