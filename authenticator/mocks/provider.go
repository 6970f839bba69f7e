package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/blogem/clients-api/authenticator"
)

// MockProvider is a testify mock for authenticator.Provider
type MockProvider struct {
	mock.Mock
}

// NewMockProvider creates a mock that asserts its expectations on cleanup
func NewMockProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockProvider {
	m := &MockProvider{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockProvider) AcquireToken(ctx context.Context, scope string) (*authenticator.Token, error) {
	args := m.Called(ctx, scope)
	tok, _ := args.Get(0).(*authenticator.Token)
	return tok, args.Error(1)
}
