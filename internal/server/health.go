package server

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"simontech/internal/services"
)

// HealthPath is the liveness endpoint.
const HealthPath = "/health"

// HealthChecker reports service health
type HealthChecker interface {
	Check(ctx context.Context) (*services.HealthResult, error)
}

// HealthHandler serves GET /health
type HealthHandler struct {
	svc    HealthChecker
	logger *zap.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(svc HealthChecker, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{svc: svc, logger: logger.Named("http")}
}

// Check answers 200 when the database is reachable and 503 otherwise.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Check(r.Context())
	status := http.StatusOK
	if err != nil {
		h.logger.Warn("Health check failed", zap.Error(err))
		status = http.StatusServiceUnavailable
	}
	_ = writeJSON(r.Context(), w, status, res)
}
