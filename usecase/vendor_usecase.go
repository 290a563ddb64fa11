package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"rental-service/domain"
	"rental-service/domain/model"
	"rental-service/domain/repository"
	"rental-service/pkg/logger"
	"rental-service/pkg/slug"
)

// VendorUseCase defines the interface for vendor-related business operations.
type VendorUseCase interface {
	// CreateVendor registers a single vendor.
	CreateVendor(ctx context.Context, vendor *model.Vendor) error
	// GetVendorByID retrieves a vendor by its ID.
	GetVendorByID(ctx context.Context, id string) (*model.Vendor, error)
	// GetVendorBySlug retrieves a vendor by its public slug.
	GetVendorBySlug(ctx context.Context, slug string) (*model.Vendor, error)
	// ListVendors retrieves a page of vendors plus the total count.
	ListVendors(ctx context.Context, offset, limit int) ([]*model.Vendor, int, error)
	// UpdateVendor modifies an existing vendor's profile fields.
	UpdateVendor(ctx context.Context, vendor *model.Vendor) error
	// UpdateStatus transitions the registration status.
	UpdateStatus(ctx context.Context, id, status, actorID string) error
	// DeleteVendor soft-deletes a vendor.
	DeleteVendor(ctx context.Context, id string) error
}

// vendorUseCase implements the VendorUseCase interface.
type vendorUseCase struct {
	vendorRepo   repository.Vendor
	activityRepo repository.ActivityLog
	logger       logger.LoggerInterface
}

// NewVendorUseCase creates a new instance of vendorUseCase.
func NewVendorUseCase(vendorRepo repository.Vendor, activityRepo repository.ActivityLog, appLogger logger.LoggerInterface) VendorUseCase {
	return &vendorUseCase{
		vendorRepo:   vendorRepo,
		activityRepo: activityRepo,
		logger:       appLogger,
	}
}

// CreateVendor registers a single vendor with a tokenized slug.
func (uc *vendorUseCase) CreateVendor(ctx context.Context, vendor *model.Vendor) error {
	if vendor.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*vendor.Email))
		if email == "" {
			vendor.Email = nil
		} else {
			existing, err := uc.vendorRepo.FindByEmails(ctx, []string{email})
			if err != nil {
				return err
			}
			if len(existing) > 0 {
				return domain.ErrEmailAlreadyExists
			}
			vendor.Email = &email
		}
	}

	if vendor.Slug == "" {
		vendor.Slug = slug.WithToken(vendor.BusinessName, 4)
	}
	if vendor.RegistrationStatus == "" {
		vendor.RegistrationStatus = model.StatusNotRegistered
	}

	return uc.vendorRepo.Create(ctx, vendor)
}

// GetVendorByID retrieves a vendor by its ID.
func (uc *vendorUseCase) GetVendorByID(ctx context.Context, id string) (*model.Vendor, error) {
	vendor, err := uc.vendorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrVendorNotFound
		}
		return nil, err
	}
	return vendor, nil
}

// GetVendorBySlug retrieves a vendor by its public slug.
func (uc *vendorUseCase) GetVendorBySlug(ctx context.Context, vendorSlug string) (*model.Vendor, error) {
	vendor, err := uc.vendorRepo.GetBySlug(ctx, vendorSlug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrVendorNotFound
		}
		return nil, err
	}
	return vendor, nil
}

// ListVendors retrieves a page of vendors plus the total count.
func (uc *vendorUseCase) ListVendors(ctx context.Context, offset, limit int) ([]*model.Vendor, int, error) {
	return uc.vendorRepo.List(ctx, offset, limit)
}

// UpdateVendor modifies an existing vendor's profile fields.
func (uc *vendorUseCase) UpdateVendor(ctx context.Context, vendor *model.Vendor) error {
	if _, err := uc.GetVendorByID(ctx, vendor.ID); err != nil {
		return err
	}
	return uc.vendorRepo.Update(ctx, vendor)
}

// UpdateStatus transitions the registration status after validating the enum.
func (uc *vendorUseCase) UpdateStatus(ctx context.Context, id, status, actorID string) error {
	if !model.IsValidStatus(status) {
		return domain.ErrInvalidStatus
	}

	vendor, err := uc.GetVendorByID(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.vendorRepo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	payload, _ := json.Marshal(map[string]any{
		"from": vendor.RegistrationStatus,
		"to":   status,
	})
	entry := &model.ActivityLog{
		Action:     model.ActionStatusChanged,
		EntityType: "vendor",
		EntityID:   id,
		Details:    string(payload),
	}
	if actorID != "" {
		entry.ActorID = &actorID
	}
	if err := uc.activityRepo.Create(ctx, entry); err != nil {
		uc.logger.ErrorContext(ctx, "Failed to write status audit entry", "vendor_id", id, "error", err)
	}
	return nil
}

// DeleteVendor soft-deletes a vendor.
func (uc *vendorUseCase) DeleteVendor(ctx context.Context, id string) error {
	if err := uc.vendorRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrVendorNotFound
		}
		return err
	}
	return nil
}
