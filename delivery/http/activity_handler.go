package http

import (
	"net/http"

	"rental-service/pkg/api"
	"rental-service/pkg/logger"
	"rental-service/usecase"
)

// ActivityHandler handles HTTP requests for the audit trail.
type ActivityHandler struct {
	ActivityUseCase usecase.ActivityUseCase
	Logger          logger.LoggerInterface
	API             api.Api
}

// NewActivityHandler creates a new instance of ActivityHandler.
func NewActivityHandler(activityUseCase usecase.ActivityUseCase, logger logger.LoggerInterface) *ActivityHandler {
	return &ActivityHandler{
		ActivityUseCase: activityUseCase,
		Logger:          logger,
		API:             api.New(),
	}
}

// ListHandler returns a page of audit records, newest first.
func (h *ActivityHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	page, limit, offset := pageParams(r)

	entries, total, err := h.ActivityUseCase.ListActivities(ctx, offset, limit)
	if err != nil {
		handleDomainError(ctx, w, h.API, h.Logger, err)
		return
	}

	h.API.SuccessWithMeta(ctx, w, entries, paginationMeta(page, limit, total))
}
