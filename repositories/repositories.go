package repositories

import (
	"context"

	"github.com/blogem/clients-api/database"
)

// Executor runs a single parameterized statement
type Executor interface {
	Execute(ctx context.Context, query string, params ...any) (*database.Result, error)
}

// Repositories struct holds all repository interfaces
type Repositories struct {
	Clients ClientRepository
	Audit   AuditRepository
}

// NewRepositories creates and initializes all repositories
func NewRepositories(exec Executor) *Repositories {
	return &Repositories{
		Clients: NewClientRepository(exec),
		Audit:   NewAuditRepository(exec),
	}
}
