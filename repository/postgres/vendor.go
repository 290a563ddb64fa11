// Package postgres provides gorm-backed implementations of the repository interfaces.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"rental-service/domain"
	"rental-service/domain/model"
	"rental-service/domain/repository"
	"rental-service/pkg/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type vendorRepository struct {
	db     *gorm.DB
	logger logger.LoggerInterface
}

// NewVendorRepository creates a gorm-backed vendor repository.
func NewVendorRepository(db *gorm.DB, logger logger.LoggerInterface) repository.Vendor {
	return &vendorRepository{
		db:     db,
		logger: logger,
	}
}

// Create adds a new vendor.
func (r *vendorRepository) Create(ctx context.Context, vendor *model.Vendor) error {
	r.logger.InfoContext(ctx, "Creating vendor", "business_name", vendor.BusinessName)
	if err := r.db.WithContext(ctx).Create(vendor).Error; err != nil {
		r.logger.ErrorContext(ctx, "Failed to create vendor", "business_name", vendor.BusinessName, "error", err)
		return fmt.Errorf("failed to create vendor: %w", err)
	}
	return nil
}

// CreateBatch inserts vendors in one statement, skipping rows that collide on
// a unique index. Returns the number of rows actually inserted, which can be
// lower than len(vendors) if a concurrent import raced this one.
func (r *vendorRepository) CreateBatch(ctx context.Context, vendors []*model.Vendor) (int, error) {
	if len(vendors) == 0 {
		return 0, nil
	}

	r.logger.InfoContext(ctx, "Batch-inserting vendors", "count", len(vendors))
	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&vendors)
	if tx.Error != nil {
		r.logger.ErrorContext(ctx, "Failed to batch-insert vendors", "count", len(vendors), "error", tx.Error)
		return 0, fmt.Errorf("failed to batch-insert vendors: %w", tx.Error)
	}
	return int(tx.RowsAffected), nil
}

// GetByID retrieves a vendor by id.
func (r *vendorRepository) GetByID(ctx context.Context, id string) (*model.Vendor, error) {
	var vendor model.Vendor
	if err := r.db.WithContext(ctx).Preload("City").Where("id = ?", id).First(&vendor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.WarnContext(ctx, "Vendor not found by id", "id", id)
			return nil, domain.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to get vendor by id", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get vendor: %w", err)
	}
	return &vendor, nil
}

// GetBySlug retrieves a vendor by slug.
func (r *vendorRepository) GetBySlug(ctx context.Context, slug string) (*model.Vendor, error) {
	var vendor model.Vendor
	if err := r.db.WithContext(ctx).Preload("City").Where("slug = ?", slug).First(&vendor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to get vendor by slug", "slug", slug, "error", err)
		return nil, fmt.Errorf("failed to get vendor by slug: %w", err)
	}
	return &vendor, nil
}

// FindByEmails returns vendors whose email matches any in the list,
// case-insensitively, in one query.
func (r *vendorRepository) FindByEmails(ctx context.Context, emails []string) ([]*model.Vendor, error) {
	if len(emails) == 0 {
		return nil, nil
	}

	lowered := make([]string, 0, len(emails))
	for _, e := range emails {
		lowered = append(lowered, strings.ToLower(strings.TrimSpace(e)))
	}

	var vendors []*model.Vendor
	if err := r.db.WithContext(ctx).Where("LOWER(email) IN ?", lowered).Find(&vendors).Error; err != nil {
		r.logger.ErrorContext(ctx, "Failed to find vendors by emails", "count", len(emails), "error", err)
		return nil, fmt.Errorf("failed to find vendors by emails: %w", err)
	}
	return vendors, nil
}

// Update persists changes to an existing vendor.
func (r *vendorRepository) Update(ctx context.Context, vendor *model.Vendor) error {
	r.logger.InfoContext(ctx, "Updating vendor", "id", vendor.ID)
	if err := r.db.WithContext(ctx).Model(&model.Vendor{}).Where("id = ?", vendor.ID).Updates(vendor).Error; err != nil {
		r.logger.ErrorContext(ctx, "Failed to update vendor", "id", vendor.ID, "error", err)
		return fmt.Errorf("failed to update vendor: %w", err)
	}
	return nil
}

// UpdateAccount records the provisioned auth identity, the password envelope
// and the status transition in a single update.
func (r *vendorRepository) UpdateAccount(ctx context.Context, id string, authUserID, ciphertext, status string) error {
	r.logger.InfoContext(ctx, "Recording vendor account", "id", id, "status", status)
	now := time.Now()
	updates := map[string]any{
		"auth_user_id":        authUserID,
		"password_ciphertext": ciphertext,
		"registration_status": status,
		"status_changed_at":   &now,
	}
	if err := r.db.WithContext(ctx).Model(&model.Vendor{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		r.logger.ErrorContext(ctx, "Failed to record vendor account", "id", id, "error", err)
		return fmt.Errorf("failed to record vendor account: %w", err)
	}
	return nil
}

// UpdateCiphertext overwrites the stored password envelope.
func (r *vendorRepository) UpdateCiphertext(ctx context.Context, id string, ciphertext string) error {
	r.logger.InfoContext(ctx, "Updating vendor password envelope", "id", id)
	now := time.Now()
	updates := map[string]any{
		"password_ciphertext": ciphertext,
		"status_changed_at":   &now,
	}
	if err := r.db.WithContext(ctx).Model(&model.Vendor{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		r.logger.ErrorContext(ctx, "Failed to update vendor password envelope", "id", id, "error", err)
		return fmt.Errorf("failed to update vendor password envelope: %w", err)
	}
	return nil
}

// UpdateStatus sets the registration status.
func (r *vendorRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	r.logger.InfoContext(ctx, "Updating vendor status", "id", id, "status", status)
	now := time.Now()
	updates := map[string]any{
		"registration_status": status,
		"status_changed_at":   &now,
	}
	if err := r.db.WithContext(ctx).Model(&model.Vendor{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		r.logger.ErrorContext(ctx, "Failed to update vendor status", "id", id, "error", err)
		return fmt.Errorf("failed to update vendor status: %w", err)
	}
	return nil
}

// Delete soft-deletes a vendor.
func (r *vendorRepository) Delete(ctx context.Context, id string) error {
	r.logger.InfoContext(ctx, "Deleting vendor", "id", id)
	result := r.db.WithContext(ctx).Delete(&model.Vendor{ID: id})
	if result.Error != nil {
		r.logger.ErrorContext(ctx, "Failed to delete vendor", "id", id, "error", result.Error)
		return fmt.Errorf("failed to delete vendor: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List retrieves a page of vendors plus the total count.
func (r *vendorRepository) List(ctx context.Context, offset, limit int) ([]*model.Vendor, int, error) {
	var vendors []*model.Vendor
	var total int64

	if err := r.db.WithContext(ctx).Model(&model.Vendor{}).Count(&total).Error; err != nil {
		r.logger.ErrorContext(ctx, "Failed to count vendors", "error", err)
		return nil, 0, fmt.Errorf("failed to count vendors: %w", err)
	}

	if err := r.db.WithContext(ctx).Preload("City").Offset(offset).Limit(limit).Order("id ASC").Find(&vendors).Error; err != nil {
		r.logger.ErrorContext(ctx, "Failed to list vendors", "offset", offset, "limit", limit, "error", err)
		return nil, 0, fmt.Errorf("failed to list vendors: %w", err)
	}

	return vendors, int(total), nil
}
