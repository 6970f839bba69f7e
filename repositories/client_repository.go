package repositories

import (
	"context"
	"fmt"

	"github.com/blogem/clients-api/database"
	"github.com/blogem/clients-api/models"
)

// ClientRepository interface defines client database operations
type ClientRepository interface {
	Create(ctx context.Context, client *models.Client) (int64, error)
	List(ctx context.Context) (database.RowSet, error)
}

// clientRepository implements ClientRepository interface
type clientRepository struct {
	exec Executor
}

// NewClientRepository creates a new client repository
func NewClientRepository(exec Executor) ClientRepository {
	return &clientRepository{exec: exec}
}

// Create inserts a client and returns the number of rows affected. Zero rows
// is not treated as an error.
func (r *clientRepository) Create(ctx context.Context, client *models.Client) (int64, error) {
	query := `
		INSERT INTO Clients (Name, Email, CreatedBy, CreatedAt)
		VALUES (@p1, @p2, @p3, @p4)
	`

	result, err := r.exec.Execute(ctx, query,
		client.Name,
		client.Email,
		client.CreatedBy,
		client.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create client: %w", err)
	}

	return result.RowsAffected, nil
}

// List retrieves every client, most recently created first
func (r *clientRepository) List(ctx context.Context) (database.RowSet, error) {
	query := `SELECT * FROM Clients ORDER BY CreatedAt DESC`

	result, err := r.exec.Execute(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}

	if result.Rows == nil {
		return database.RowSet{}, nil
	}
	return result.Rows, nil
}
