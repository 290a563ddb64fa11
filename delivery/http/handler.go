package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"rental-service/domain"
	"rental-service/pkg/api"
	"rental-service/pkg/logger"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// pageParams reads ?page= and ?limit= with sane bounds.
func pageParams(r *http.Request) (page, limit, offset int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit, (page - 1) * limit
}

// paginationMeta builds the response meta for a page of total rows.
func paginationMeta(page, limit, total int) *api.Meta {
	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}
	return &api.Meta{
		Pagination: &api.Pagination{
			Page:        page,
			Limit:       limit,
			Total:       total,
			TotalPages:  totalPages,
			HasNextPage: page < totalPages,
			HasPrevPage: page > 1,
		},
	}
}

// handleDomainError maps domain errors onto the response envelope by their
// HTTP code. Unknown errors are logged and become an opaque 500 so internal
// details never leak to clients.
func handleDomainError(ctx context.Context, w http.ResponseWriter, apiClient api.Api, appLogger logger.LoggerInterface, err error) {
	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case http.StatusBadRequest:
			apiClient.BadRequest(ctx, w, appErr.Message)
		case http.StatusNotFound:
			apiClient.NotFound(ctx, w, appErr.Message)
		case http.StatusConflict:
			apiClient.Conflict(ctx, w, appErr.Message)
		case http.StatusBadGateway:
			apiClient.BadGateway(ctx, w, appErr.Message)
		default:
			apiClient.Error(ctx, w, appErr.Code, &api.Error{Code: "ERROR", Message: appErr.Message})
		}
		return
	}

	appLogger.ErrorContext(ctx, "Unhandled error in handler", "error", err)
	apiClient.InternalServerError(ctx, w, "Internal server error")
}

// convertValidationErrors converts validator output to API error details.
func convertValidationErrors(validationErrors map[string]string) []api.ErrorDetail {
	errorDetails := make([]api.ErrorDetail, 0, len(validationErrors))
	for field, message := range validationErrors {
		errorDetails = append(errorDetails, api.ErrorDetail{
			Field:   field,
			Message: message,
		})
	}
	return errorDetails
}
