package services

import (
	"context"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthResult is the body of the health endpoint
type HealthResult struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Error   string `json:"error,omitempty"`
}

// HealthService implements the health service
type HealthService struct {
	service string
	db      Pinger
}

// NewHealthService creates a new health service
func NewHealthService(service string, db Pinger) *HealthService {
	return &HealthService{service: service, db: db}
}

// Check implements the health check method. The error is non-nil when the
// database cannot be reached.
func (s *HealthService) Check(ctx context.Context) (*HealthResult, error) {
	if err := s.db.Ping(ctx); err != nil {
		return &HealthResult{
			Status:  "unhealthy",
			Service: s.service,
			Error:   err.Error(),
		}, err
	}
	return &HealthResult{
		Status:  "healthy",
		Service: s.service,
	}, nil
}
