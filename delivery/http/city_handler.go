package http

import (
	"encoding/json"
	"net/http"

	"rental-service/domain/model"
	"rental-service/pkg/api"
	"rental-service/pkg/logger"
	"rental-service/pkg/validator"
	"rental-service/usecase"

	"github.com/go-chi/chi/v5"
)

// CreateCityRequest is the payload for adding a service area.
type CreateCityRequest struct {
	Name     string `json:"name" validate:"required"`
	Province string `json:"province"`
}

// CityHandler handles HTTP requests for city operations.
type CityHandler struct {
	CityUseCase usecase.CityUseCase
	Logger      logger.LoggerInterface
	API         api.Api
}

// NewCityHandler creates a new instance of CityHandler.
func NewCityHandler(cityUseCase usecase.CityUseCase, logger logger.LoggerInterface) *CityHandler {
	return &CityHandler{
		CityUseCase: cityUseCase,
		Logger:      logger,
		API:         api.New(),
	}
}

// CreateHandler adds a new service area.
func (h *CityHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateCityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.ErrorContext(ctx, "Invalid request body for city creation", "error", err)
		h.API.BadRequest(ctx, w, "Invalid request body")
		return
	}
	if validationErrors := validator.ValidateStruct(&req); validationErrors != nil {
		h.API.ValidationError(ctx, w, convertValidationErrors(validationErrors))
		return
	}

	city := &model.City{
		Name:     req.Name,
		Province: req.Province,
		IsActive: true,
	}
	if err := h.CityUseCase.CreateCity(ctx, city); err != nil {
		handleDomainError(ctx, w, h.API, h.Logger, err)
		return
	}

	h.Logger.InfoContext(ctx, "City created", "id", city.ID, "name", city.Name)
	h.API.Created(ctx, w, city)
}

// ListHandler returns all active cities.
func (h *CityHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cities, err := h.CityUseCase.GetActiveCities(ctx)
	if err != nil {
		handleDomainError(ctx, w, h.API, h.Logger, err)
		return
	}

	h.API.Success(ctx, w, cities)
}

// GetByIDHandler returns a single city.
func (h *CityHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	city, err := h.CityUseCase.GetCityByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		handleDomainError(ctx, w, h.API, h.Logger, err)
		return
	}

	h.API.Success(ctx, w, city)
}
