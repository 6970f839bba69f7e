package services

import (
	"context"
	"time"

	"github.com/blogem/clients-api/database"
	"github.com/blogem/clients-api/models"
	"github.com/blogem/clients-api/repositories"
)

// ClientService interface defines client business logic
type ClientService interface {
	CreateClient(ctx context.Context, user models.AuthenticatedUser, form *models.ClientForm) (*models.Client, error)
	ListClients(ctx context.Context, user models.AuthenticatedUser) (database.RowSet, error)
}

// clientService implements ClientService interface
type clientService struct {
	clientRepo repositories.ClientRepository
	audit      AuditService
	now        func() time.Time
}

// NewClientService creates a new client service
func NewClientService(clientRepo repositories.ClientRepository, audit AuditService, now func() time.Time) ClientService {
	if now == nil {
		now = time.Now
	}
	return &clientService{
		clientRepo: clientRepo,
		audit:      audit,
		now:        now,
	}
}

// CreateClient validates the form, stores the client and records the action.
// Invalid forms return models.ValidationErrors without touching the database.
func (s *clientService) CreateClient(ctx context.Context, user models.AuthenticatedUser, form *models.ClientForm) (*models.Client, error) {
	if errs := form.Validate(); errs.HasErrors() {
		return nil, errs
	}

	client := &models.Client{
		Name:  form.Name,
		Email: form.Email,
		AuditFields: models.AuditFields{
			CreatedBy: user.UserID,
			CreatedAt: s.now().UTC(),
		},
	}

	if _, err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, user.UserID, models.ActionCreateClient, map[string]any{
		"client_name":  client.Name,
		"client_email": client.Email,
	})

	return client, nil
}

// ListClients returns all clients, newest first, and records the row count
func (s *clientService) ListClients(ctx context.Context, user models.AuthenticatedUser) (database.RowSet, error) {
	rows, err := s.clientRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, user.UserID, models.ActionGetClients, map[string]any{
		"record_count": len(rows),
	})

	return rows, nil
}
