package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/blogem/clients-api/database"
	"github.com/blogem/clients-api/models"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockClientRepository is a testify mock for repositories.ClientRepository
type MockClientRepository struct {
	mock.Mock
}

// NewMockClientRepository creates a mock that asserts its expectations on cleanup
func NewMockClientRepository(t testingT) *MockClientRepository {
	m := &MockClientRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockClientRepository) Create(ctx context.Context, client *models.Client) (int64, error) {
	args := m.Called(ctx, client)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockClientRepository) List(ctx context.Context) (database.RowSet, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).(database.RowSet)
	return rows, args.Error(1)
}

// MockAuditRepository is a testify mock for repositories.AuditRepository
type MockAuditRepository struct {
	mock.Mock
}

// NewMockAuditRepository creates a mock that asserts its expectations on cleanup
func NewMockAuditRepository(t testingT) *MockAuditRepository {
	m := &MockAuditRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAuditRepository) Create(ctx context.Context, entry *models.AuditLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
