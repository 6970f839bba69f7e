package services

import (
	"time"

	"github.com/blogem/clients-api/repositories"
)

// Services holds all service instances
type Services struct {
	Clients ClientService
	Audit   AuditService
}

// NewServices creates and initializes all service instances
func NewServices(repos *repositories.Repositories) *Services {
	return NewServicesWithClock(repos, time.Now)
}

// NewServicesWithClock is NewServices with an explicit time source
func NewServicesWithClock(repos *repositories.Repositories, now func() time.Time) *Services {
	audit := NewAuditService(repos.Audit, now)
	return &Services{
		Clients: NewClientService(repos.Clients, audit, now),
		Audit:   audit,
	}
}
