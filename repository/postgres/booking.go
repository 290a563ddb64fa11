package postgres

import (
	"context"
	"errors"
	"fmt"

	"rental-service/domain"
	"rental-service/domain/model"
	"rental-service/domain/repository"
	"rental-service/pkg/logger"

	"gorm.io/gorm"
)

type bookingRepository struct {
	db     *gorm.DB
	logger logger.LoggerInterface
}

// NewBookingRepository creates a gorm-backed booking repository.
func NewBookingRepository(db *gorm.DB, logger logger.LoggerInterface) repository.Booking {
	return &bookingRepository{
		db:     db,
		logger: logger,
	}
}

// Create adds a new booking inquiry.
func (r *bookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	r.logger.InfoContext(ctx, "Creating booking", "vehicle_id", booking.VehicleID)
	if err := r.db.WithContext(ctx).Create(booking).Error; err != nil {
		r.logger.ErrorContext(ctx, "Failed to create booking", "vehicle_id", booking.VehicleID, "error", err)
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// GetByID retrieves a booking by id.
func (r *bookingRepository) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	var booking model.Booking
	if err := r.db.WithContext(ctx).Preload("Vehicle").Where("id = ?", id).First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to get booking by id", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &booking, nil
}

// ListByVendor retrieves a page of a vendor's bookings plus the total count.
func (r *bookingRepository) ListByVendor(ctx context.Context, vendorID string, offset, limit int) ([]*model.Booking, int, error) {
	query := r.db.WithContext(ctx).Model(&model.Booking{}).Where("vendor_id = ?", vendorID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.ErrorContext(ctx, "Failed to count bookings", "vendor_id", vendorID, "error", err)
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	var bookings []*model.Booking
	if err := query.Preload("Vehicle").Offset(offset).Limit(limit).Order("created_at DESC").Find(&bookings).Error; err != nil {
		r.logger.ErrorContext(ctx, "Failed to list bookings", "vendor_id", vendorID, "error", err)
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}

	return bookings, int(total), nil
}

// UpdateStatus sets the booking status.
func (r *bookingRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	r.logger.InfoContext(ctx, "Updating booking status", "id", id, "status", status)
	result := r.db.WithContext(ctx).Model(&model.Booking{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		r.logger.ErrorContext(ctx, "Failed to update booking status", "id", id, "error", result.Error)
		return fmt.Errorf("failed to update booking status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
