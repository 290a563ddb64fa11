package http

import (
	"net/http"

	"rental-service/pkg/api"
	"rental-service/pkg/logger"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	Logger logger.LoggerInterface
	API    api.Api
}

// NewHealthHandler creates a new instance of HealthHandler.
func NewHealthHandler(logger logger.LoggerInterface) *HealthHandler {
	return &HealthHandler{
		Logger: logger,
		API:    api.New(),
	}
}

// HealthCheckHandler reports service liveness.
func (h *HealthHandler) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	healthData := map[string]any{
		"status":  "healthy",
		"message": "Service is running",
	}

	h.API.Success(ctx, w, healthData)
}
