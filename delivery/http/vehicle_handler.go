package http

import (
	"encoding/json"
	"net/http"

	"rental-service/domain/model"
	"rental-service/domain/repository"
	"rental-service/pkg/api"
	"rental-service/pkg/logger"
	"rental-service/pkg/validator"
	"rental-service/usecase"

	"github.com/go-chi/chi/v5"
)

// CreateVehicleRequest is the payload for adding a vehicle listing.
type CreateVehicleRequest struct {
	VendorID     string  `json:"vendor_id"`
	CityID       string  `json:"city_id" validate:"required"`
	Title        string  `json:"title" validate:"required"`
	Category     string  `json:"category" validate:"required"`
	Seats        int     `json:"seats"`
	Transmission string  `json:"transmission"`
	PricePerDay  float64 `json:"price_per_day" validate:"required,gt=0"`
	WithDriver   bool    `json:"with_driver"`
}

// UpdateVehicleRequest is the payload for editing a vehicle listing.
type UpdateVehicleRequest struct {
	Title        string  `json:"title"`
	Category     string  `json:"category"`
	Seats        int     `json:"seats"`
	Transmission string  `json:"transmission"`
	PricePerDay  float64 `json:"price_per_day"`
	WithDriver   bool    `json:"with_driver"`
	IsActive     *bool   `json:"is_active"`
}

// VehicleHandler handles HTTP requests for the vehicle catalog.
type VehicleHandler struct {
	VehicleUseCase usecase.VehicleUseCase
	Logger         logger.LoggerInterface
	API            api.Api
}

// NewVehicleHandler creates a new instance of VehicleHandler.
func NewVehicleHandler(vehicleUseCase usecase.VehicleUseCase, logger logger.LoggerInterface) *VehicleHandler {
	return &VehicleHandler{
		VehicleUseCase: vehicleUseCase,
		Logger:         logger,
		API:            api.New(),
	}
}

// CreateHandler adds a vehicle. Vendor tokens are pinned to their own fleet;
// admins may set any vendor id.
func (h *VehicleHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.ErrorContext(ctx, "Invalid request body for vehicle creation", "error", err)
		h.API.BadRequest(ctx, w, "Invalid request body")
		return
	}

	if vendorID := vendorIDFromContext(ctx); vendorID != "" {
		req.VendorID = vendorID
	}
	if req.VendorID == "" {
		h.API.BadRequest(ctx, w, "vendor_id is required")
		return
	}
	if validationErrors := validator.ValidateStruct(&req); validationErrors != nil {
		h.API.ValidationError(ctx, w, convertValidationErrors(validationErrors))
		return
	}

	vehicle := &model.Vehicle{
		VendorID:     req.VendorID,
		CityID:       req.CityID,
		Title:        req.Title,
		Category:     req.Category,
		Seats:        req.Seats,
		Transmission: req.Transmission,
		PricePerDay:  req.PricePerDay,
		WithDriver:   req.WithDriver,
		IsActive:     true,
	}
	if err := h.VehicleUseCase.CreateVehicle(ctx, vehicle); err != nil {
		handleDomainError(ctx, w, h.API, h.Logger, err)
		return
	}

	h.Logger.InfoContext(ctx, "Vehicle created", "id", vehicle.ID)
	h.API.Created(ctx, w, vehicle)
}

// ListHandler returns a filtered page of active vehicles.
func (h *VehicleHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	page, limit, offset := pageParams(r)

	filter := repository.VehicleFilter{
		VendorID: r.URL.Query().Get("vendor_id"),
		CityID:   r.URL.Query().Get("city_id"),
		Category: r.URL.Query().Get("category"),
	}

	vehicles, total, err := h.VehicleUseCase.ListVehicles(ctx, filter, offset, limit)
	if err != nil {
		handleDomainError(ctx, w, h.API, h.Logger, err)
		return
	}

	h.API.SuccessWithMeta(ctx, w, vehicles, paginationMeta(page, limit, total))
}

// GetByIDHandler returns a single vehicle.
func (h *VehicleHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	vehicle, err := h.VehicleUseCase.GetVehicleByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		handleDomainError(ctx, w, h.API, h.Logger, err)
		return
	}

	h.API.Success(ctx, w, vehicle)
}

// UpdateHandler edits a vehicle listing.
func (h *VehicleHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req UpdateVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.ErrorContext(ctx, "Invalid request body for vehicle update", "error", err)
		h.API.BadRequest(ctx, w, "Invalid request body")
		return
	}

	vehicle := &model.Vehicle{
		ID:           chi.URLParam(r, "id"),
		Title:        req.Title,
		Category:     req.Category,
		Seats:        req.Seats,
		Transmission: req.Transmission,
		PricePerDay:  req.PricePerDay,
		WithDriver:   req.WithDriver,
	}
	if req.IsActive != nil {
		vehicle.IsActive = *req.IsActive
	}

	if err := h.VehicleUseCase.UpdateVehicle(ctx, vehicle); err != nil {
		handleDomainError(ctx, w, h.API, h.Logger, err)
		return
	}

	h.Logger.InfoContext(ctx, "Vehicle updated", "id", vehicle.ID)
	h.API.Success(ctx, w, vehicle)
}

// DeleteHandler soft-deletes a vehicle.
func (h *VehicleHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id := chi.URLParam(r, "id")
	if err := h.VehicleUseCase.DeleteVehicle(ctx, id); err != nil {
		handleDomainError(ctx, w, h.API, h.Logger, err)
		return
	}

	h.Logger.InfoContext(ctx, "Vehicle deleted", "id", id)
	h.API.Success(ctx, w, map[string]string{"message": "Vehicle deleted successfully"})
}
