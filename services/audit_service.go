package services

import (
	"context"
	"time"

	"github.com/blogem/clients-api/logger"
	"github.com/blogem/clients-api/metrics"
	"github.com/blogem/clients-api/models"
	"github.com/blogem/clients-api/repositories"
)

// AuditService records actions on a best-effort basis. Audit records are for
// observability only; callers must not rely on them for enforcement.
type AuditService interface {
	Record(ctx context.Context, userID, action string, details map[string]any)
}

type auditService struct {
	repo repositories.AuditRepository
	now  func() time.Time
}

// NewAuditService creates a new audit service
func NewAuditService(repo repositories.AuditRepository, now func() time.Time) AuditService {
	if now == nil {
		now = time.Now
	}
	return &auditService{repo: repo, now: now}
}

// Record writes one audit entry synchronously. Failures, panics included, are
// logged and discarded; they are never retried.
func (s *auditService) Record(ctx context.Context, userID, action string, details map[string]any) {
	defer func() {
		if r := recover(); r != nil {
			metrics.AuditFailures.WithLabelValues(action).Inc()
			logger.Error("audit logging panicked", "action", action, "user_id", userID, "panic", r)
		}
	}()

	entry := &models.AuditLogEntry{
		UserID:    userID,
		Action:    action,
		Details:   details,
		Timestamp: s.now().UTC(),
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		metrics.AuditFailures.WithLabelValues(action).Inc()
		logger.LogError(ctx, err, "audit logging failed", "action", action, "user_id", userID)
	}
}
