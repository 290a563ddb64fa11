package http

import (
	"encoding/json"
	"net/http"
	"time"

	"rental-service/domain/model"
	"rental-service/pkg/api"
	"rental-service/pkg/jwt"
	"rental-service/pkg/logger"
	"rental-service/pkg/validator"
	"rental-service/usecase"

	"github.com/go-chi/chi/v5"
)

// CreateBookingRequest is the public payload for a booking inquiry.
type CreateBookingRequest struct {
	VehicleID     string    `json:"vehicle_id" validate:"required"`
	CustomerName  string    `json:"customer_name" validate:"required"`
	CustomerPhone string    `json:"customer_phone" validate:"required"`
	PickupDate    time.Time `json:"pickup_date" validate:"required"`
	ReturnDate    time.Time `json:"return_date" validate:"required"`
	Notes         string    `json:"notes"`
}

// UpdateBookingStatusRequest is the payload for a booking status change.
type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// BookingHandler handles HTTP requests for booking inquiries.
type BookingHandler struct {
	BookingUseCase usecase.BookingUseCase
	Logger         logger.LoggerInterface
	API            api.Api
}

// NewBookingHandler creates a new instance of BookingHandler.
func NewBookingHandler(bookingUseCase usecase.BookingUseCase, logger logger.LoggerInterface) *BookingHandler {
	return &BookingHandler{
		BookingUseCase: bookingUseCase,
		Logger:         logger,
		API:            api.New(),
	}
}

// CreateHandler records a public booking inquiry.
func (h *BookingHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.ErrorContext(ctx, "Invalid request body for booking creation", "error", err)
		h.API.BadRequest(ctx, w, "Invalid request body")
		return
	}
	if validationErrors := validator.ValidateStruct(&req); validationErrors != nil {
		h.API.ValidationError(ctx, w, convertValidationErrors(validationErrors))
		return
	}
	if !req.ReturnDate.After(req.PickupDate) {
		h.API.BadRequest(ctx, w, "return_date must be after pickup_date")
		return
	}

	booking := &model.Booking{
		VehicleID:     req.VehicleID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		PickupDate:    req.PickupDate,
		ReturnDate:    req.ReturnDate,
		Notes:         req.Notes,
	}
	if err := h.BookingUseCase.CreateBooking(ctx, booking); err != nil {
		handleDomainError(ctx, w, h.API, h.Logger, err)
		return
	}

	h.Logger.InfoContext(ctx, "Booking created", "id", booking.ID, "vehicle_id", booking.VehicleID)
	h.API.Created(ctx, w, booking)
}

// ListByVendorHandler returns a page of the vendor's bookings. Vendor tokens
// see their own bookings; admins pass the vendor id in the path.
func (h *BookingHandler) ListByVendorHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	page, limit, offset := pageParams(r)

	vendorID := chi.URLParam(r, "vendorID")
	if roleFromContext(ctx) == jwt.RoleVendor {
		vendorID = vendorIDFromContext(ctx)
	}
	if vendorID == "" {
		h.API.BadRequest(ctx, w, "vendor id is required")
		return
	}

	bookings, total, err := h.BookingUseCase.ListBookingsByVendor(ctx, vendorID, offset, limit)
	if err != nil {
		handleDomainError(ctx, w, h.API, h.Logger, err)
		return
	}

	h.API.SuccessWithMeta(ctx, w, bookings, paginationMeta(page, limit, total))
}

// GetByIDHandler returns a single booking.
func (h *BookingHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	booking, err := h.BookingUseCase.GetBookingByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		handleDomainError(ctx, w, h.API, h.Logger, err)
		return
	}

	if roleFromContext(ctx) == jwt.RoleVendor && booking.VendorID != vendorIDFromContext(ctx) {
		h.API.Forbidden(ctx, w, "Access denied: booking belongs to another vendor")
		return
	}

	h.API.Success(ctx, w, booking)
}

// UpdateStatusHandler transitions a booking status.
func (h *BookingHandler) UpdateStatusHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req UpdateBookingStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.ErrorContext(ctx, "Invalid request body for booking status update", "error", err)
		h.API.BadRequest(ctx, w, "Invalid request body")
		return
	}
	if validationErrors := validator.ValidateStruct(&req); validationErrors != nil {
		h.API.ValidationError(ctx, w, convertValidationErrors(validationErrors))
		return
	}

	id := chi.URLParam(r, "id")

	if roleFromContext(ctx) == jwt.RoleVendor {
		booking, err := h.BookingUseCase.GetBookingByID(ctx, id)
		if err != nil {
			handleDomainError(ctx, w, h.API, h.Logger, err)
			return
		}
		if booking.VendorID != vendorIDFromContext(ctx) {
			h.API.Forbidden(ctx, w, "Access denied: booking belongs to another vendor")
			return
		}
	}

	if err := h.BookingUseCase.UpdateBookingStatus(ctx, id, req.Status); err != nil {
		handleDomainError(ctx, w, h.API, h.Logger, err)
		return
	}

	h.Logger.InfoContext(ctx, "Booking status updated", "id", id, "status", req.Status)
	h.API.Success(ctx, w, map[string]string{"id": id, "status": req.Status})
}
