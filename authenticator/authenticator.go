package authenticator

import (
	"context"
	"fmt"
	"time"
)

// DatabaseScope is the resource scope requested for Azure SQL access tokens
const DatabaseScope = "https://database.windows.net/.default"

// Token represents a bearer token for the database service
type Token struct {
	AccessToken string
	ExpiresAt   time.Time
}

// Expired reports whether the token is unusable at the given instant
func (t *Token) Expired(now time.Time) bool {
	return t == nil || t.AccessToken == "" || !now.Before(t.ExpiresAt)
}

// Provider abstracts bearer token acquisition from the ambient identity
type Provider interface {
	AcquireToken(ctx context.Context, scope string) (*Token, error)
}

// AuthenticationError reports that no token could be obtained for a scope
type AuthenticationError struct {
	Scope string
	Err   error
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("failed to acquire token for %s: %v", e.Scope, e.Err)
}

func (e *AuthenticationError) Unwrap() error {
	return e.Err
}
