package authenticator

import (
	"context"
	"sync"
	"time"

	"golang.org/x/oauth2"
)

type providerTokenSource struct {
	ctx      context.Context
	provider Provider
	scope    string
}

// TokenSource adapts a Provider for a single scope to oauth2.TokenSource
func TokenSource(ctx context.Context, provider Provider, scope string) oauth2.TokenSource {
	return &providerTokenSource{ctx: ctx, provider: provider, scope: scope}
}

func (s *providerTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.provider.AcquireToken(s.ctx, s.scope)
	if err != nil {
		return nil, err
	}
	return &oauth2.Token{
		AccessToken: tok.AccessToken,
		TokenType:   "Bearer",
		Expiry:      tok.ExpiresAt,
	}, nil
}

// CachingProvider reuses tokens from an underlying Provider until they are
// within earlyExpiry of expiring
type CachingProvider struct {
	provider    Provider
	earlyExpiry time.Duration

	mu      sync.Mutex
	sources map[string]oauth2.TokenSource
}

// NewCachingProvider wraps provider with expiry-aware reuse
func NewCachingProvider(provider Provider, earlyExpiry time.Duration) *CachingProvider {
	return &CachingProvider{
		provider:    provider,
		earlyExpiry: earlyExpiry,
		sources:     make(map[string]oauth2.TokenSource),
	}
}

// AcquireToken returns a cached token for scope, refreshing it when stale.
// Refreshes run detached from ctx since the cached source outlives the request.
func (c *CachingProvider) AcquireToken(ctx context.Context, scope string) (*Token, error) {
	c.mu.Lock()
	src, ok := c.sources[scope]
	if !ok {
		src = oauth2.ReuseTokenSourceWithExpiry(nil, TokenSource(context.WithoutCancel(ctx), c.provider, scope), c.earlyExpiry)
		c.sources[scope] = src
	}
	c.mu.Unlock()

	tok, err := src.Token()
	if err != nil {
		return nil, err
	}
	return &Token{AccessToken: tok.AccessToken, ExpiresAt: tok.Expiry}, nil
}
