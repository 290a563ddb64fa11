package http

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"rental-service/domain/model"
	"rental-service/pkg/api"
	"rental-service/pkg/logger"
	"rental-service/pkg/validator"
	"rental-service/usecase"

	"github.com/go-chi/chi/v5"
)

// maxImportBytes bounds how much CSV an import request may carry.
const maxImportBytes = 10 << 20

// CreateVendorRequest is the payload for registering a single vendor.
type CreateVendorRequest struct {
	BusinessName string `json:"business_name" validate:"required"`
	Email        string `json:"email" validate:"omitempty,email"`
	Phone        string `json:"phone"`
	CityID       string `json:"city_id"`
	Description  string `json:"description"`
}

// UpdateVendorRequest is the payload for editing vendor profile fields.
type UpdateVendorRequest struct {
	BusinessName string `json:"business_name"`
	Phone        string `json:"phone"`
	CityID       string `json:"city_id"`
	Description  string `json:"description"`
}

// UpdateVendorStatusRequest is the payload for a status transition.
type UpdateVendorStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// VendorHandler handles HTTP requests for vendor operations, including
// account provisioning and bulk import.
type VendorHandler struct {
	VendorUseCase  usecase.VendorUseCase
	AccountUseCase usecase.AccountUseCase
	ImportUseCase  usecase.ImportUseCase
	Logger         logger.LoggerInterface
	API            api.Api
}

// NewVendorHandler creates a new instance of VendorHandler.
func NewVendorHandler(vendorUseCase usecase.VendorUseCase, accountUseCase usecase.AccountUseCase, importUseCase usecase.ImportUseCase, logger logger.LoggerInterface) *VendorHandler {
	return &VendorHandler{
		VendorUseCase:  vendorUseCase,
		AccountUseCase: accountUseCase,
		ImportUseCase:  importUseCase,
		Logger:         logger,
		API:            api.New(),
	}
}

// CreateHandler registers a single vendor.
func (h *VendorHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateVendorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.ErrorContext(ctx, "Invalid request body for vendor creation", "error", err)
		h.API.BadRequest(ctx, w, "Invalid request body")
		return
	}

	if validationErrors := validator.ValidateStruct(&req); validationErrors != nil {
		h.Logger.WarnContext(ctx, "Validation failed for vendor creation", "errors", validationErrors)
		h.API.ValidationError(ctx, w, convertValidationErrors(validationErrors))
		return
	}

	vendor := &model.Vendor{
		BusinessName: req.BusinessName,
		Phone:        req.Phone,
		Description:  req.Description,
	}
	if req.Email != "" {
		vendor.Email = &req.Email
	}
	if req.CityID != "" {
		vendor.CityID = &req.CityID
	}

	if err := h.VendorUseCase.CreateVendor(ctx, vendor); err != nil {
		handleDomainError(ctx, w, h.API, h.Logger, err)
		return
	}

	h.Logger.InfoContext(ctx, "Vendor created", "id", vendor.ID)
	h.API.Created(ctx, w, vendor)
}

// ListHandler returns a page of vendors.
func (h *VendorHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	page, limit, offset := pageParams(r)

	vendors, total, err := h.VendorUseCase.ListVendors(ctx, offset, limit)
	if err != nil {
		handleDomainError(ctx, w, h.API, h.Logger, err)
		return
	}

	h.API.SuccessWithMeta(ctx, w, vendors, paginationMeta(page, limit, total))
}

// GetByIDHandler returns a single vendor.
func (h *VendorHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	vendor, err := h.VendorUseCase.GetVendorByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		handleDomainError(ctx, w, h.API, h.Logger, err)
		return
	}

	h.API.Success(ctx, w, vendor)
}

// GetBySlugHandler returns a vendor by its public slug.
func (h *VendorHandler) GetBySlugHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	vendor, err := h.VendorUseCase.GetVendorBySlug(ctx, chi.URLParam(r, "slug"))
	if err != nil {
		handleDomainError(ctx, w, h.API, h.Logger, err)
		return
	}

	h.API.Success(ctx, w, vendor)
}

// UpdateHandler edits vendor profile fields.
func (h *VendorHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req UpdateVendorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.ErrorContext(ctx, "Invalid request body for vendor update", "error", err)
		h.API.BadRequest(ctx, w, "Invalid request body")
		return
	}

	vendor := &model.Vendor{
		ID:           chi.URLParam(r, "id"),
		BusinessName: req.BusinessName,
		Phone:        req.Phone,
		Description:  req.Description,
	}
	if req.CityID != "" {
		vendor.CityID = &req.CityID
	}

	if err := h.VendorUseCase.UpdateVendor(ctx, vendor); err != nil {
		handleDomainError(ctx, w, h.API, h.Logger, err)
		return
	}

	h.Logger.InfoContext(ctx, "Vendor updated", "id", vendor.ID)
	h.API.Success(ctx, w, vendor)
}

// UpdateStatusHandler transitions the registration status.
func (h *VendorHandler) UpdateStatusHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req UpdateVendorStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.ErrorContext(ctx, "Invalid request body for status update", "error", err)
		h.API.BadRequest(ctx, w, "Invalid request body")
		return
	}
	if validationErrors := validator.ValidateStruct(&req); validationErrors != nil {
		h.API.ValidationError(ctx, w, convertValidationErrors(validationErrors))
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.VendorUseCase.UpdateStatus(ctx, id, req.Status, userIDFromContext(ctx)); err != nil {
		handleDomainError(ctx, w, h.API, h.Logger, err)
		return
	}

	h.Logger.InfoContext(ctx, "Vendor status updated", "id", id, "status", req.Status)
	h.API.Success(ctx, w, map[string]string{"id": id, "registration_status": req.Status})
}

// DeleteHandler soft-deletes a vendor.
func (h *VendorHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id := chi.URLParam(r, "id")
	if err := h.VendorUseCase.DeleteVendor(ctx, id); err != nil {
		handleDomainError(ctx, w, h.API, h.Logger, err)
		return
	}

	h.Logger.InfoContext(ctx, "Vendor deleted", "id", id)
	h.API.Success(ctx, w, map[string]string{"message": "Vendor deleted successfully"})
}

// CreateAccountHandler provisions login credentials for a vendor. The
// response is the only place the generated password ever appears.
func (h *VendorHandler) CreateAccountHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	result, err := h.AccountUseCase.CreateAccount(ctx, chi.URLParam(r, "id"), userIDFromContext(ctx))
	if err != nil {
		handleDomainError(ctx, w, h.API, h.Logger, err)
		return
	}

	h.Logger.InfoContext(ctx, "Vendor account created", "vendor_id", result.VendorID, "linked", result.Linked)
	h.API.Created(ctx, w, result)
}

// ResetPasswordHandler rotates a vendor's password.
func (h *VendorHandler) ResetPasswordHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	result, err := h.AccountUseCase.ResetPassword(ctx, chi.URLParam(r, "id"), userIDFromContext(ctx))
	if err != nil {
		handleDomainError(ctx, w, h.API, h.Logger, err)
		return
	}

	h.Logger.InfoContext(ctx, "Vendor password reset", "vendor_id", result.VendorID)
	h.API.Success(ctx, w, result)
}

// ImportHandler bulk-imports vendors from CSV. The file arrives either as a
// multipart "file" field or as the raw request body. Row problems are
// reported in the result with a 200; only whole-batch failures error.
func (h *VendorHandler) ImportHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	csvText, err := h.readImportBody(r)
	if err != nil {
		h.Logger.ErrorContext(ctx, "Failed to read import body", "error", err)
		h.API.BadRequest(ctx, w, "Could not read CSV upload")
		return
	}

	result, err := h.ImportUseCase.ImportFromCSV(ctx, csvText, userIDFromContext(ctx))
	if err != nil {
		handleDomainError(ctx, w, h.API, h.Logger, err)
		return
	}

	h.Logger.InfoContext(ctx, "Vendor import handled", "total", result.Total, "success", result.Success)
	h.API.Success(ctx, w, result)
}

// readImportBody extracts the CSV text from a multipart upload or raw body.
func (h *VendorHandler) readImportBody(r *http.Request) (string, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxImportBytes)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxImportBytes); err != nil {
			return "", err
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			return "", err
		}
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
