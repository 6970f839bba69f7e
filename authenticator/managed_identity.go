package authenticator

import (
	"context"
	"errors"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"

	"github.com/blogem/clients-api/metrics"
)

// ManagedIdentityProvider acquires tokens through an Azure credential chain
type ManagedIdentityProvider struct {
	credential azcore.TokenCredential
}

// NewManagedIdentityProvider builds a provider on DefaultAzureCredential, which
// tries environment, workload identity, managed identity and developer logins
func NewManagedIdentityProvider() (*ManagedIdentityProvider, error) {
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, &AuthenticationError{Scope: DatabaseScope, Err: err}
	}
	return NewCredentialProvider(cred), nil
}

// NewCredentialProvider wraps an existing azcore credential
func NewCredentialProvider(cred azcore.TokenCredential) *ManagedIdentityProvider {
	return &ManagedIdentityProvider{credential: cred}
}

// AcquireToken requests a fresh token for scope on every call
func (p *ManagedIdentityProvider) AcquireToken(ctx context.Context, scope string) (*Token, error) {
	accessToken, err := p.credential.GetToken(ctx, policy.TokenRequestOptions{
		Scopes: []string{scope},
	})
	if err != nil {
		metrics.TokenAcquisitions.WithLabelValues("error").Inc()
		return nil, &AuthenticationError{Scope: scope, Err: err}
	}
	if accessToken.Token == "" {
		metrics.TokenAcquisitions.WithLabelValues("error").Inc()
		return nil, &AuthenticationError{Scope: scope, Err: errors.New("credential returned an empty token")}
	}

	metrics.TokenAcquisitions.WithLabelValues("ok").Inc()
	return &Token{
		AccessToken: accessToken.Token,
		ExpiresAt:   accessToken.ExpiresOn,
	}, nil
}
