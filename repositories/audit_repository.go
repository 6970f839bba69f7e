package repositories

import (
	"context"
	"fmt"

	"github.com/blogem/clients-api/models"
)

// AuditRepository handles audit log persistence
type AuditRepository interface {
	Create(ctx context.Context, entry *models.AuditLogEntry) error
}

type auditRepository struct {
	exec Executor
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(exec Executor) AuditRepository {
	return &auditRepository{exec: exec}
}

// Create inserts a new audit log entry
func (r *auditRepository) Create(ctx context.Context, entry *models.AuditLogEntry) error {
	query := `
		INSERT INTO AuditLogs (UserId, Action, Details, Timestamp)
		VALUES (@p1, @p2, @p3, @p4)
	`

	details, err := entry.DetailsJSON()
	if err != nil {
		return fmt.Errorf("failed to encode audit details: %w", err)
	}

	_, err = r.exec.Execute(ctx, query,
		entry.UserID,
		entry.Action,
		details,
		entry.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}

	return nil
}
