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

type vehicleRepository struct {
	db     *gorm.DB
	logger logger.LoggerInterface
}

// NewVehicleRepository creates a gorm-backed vehicle repository.
func NewVehicleRepository(db *gorm.DB, logger logger.LoggerInterface) repository.Vehicle {
	return &vehicleRepository{
		db:     db,
		logger: logger,
	}
}

// Create adds a new vehicle.
func (r *vehicleRepository) Create(ctx context.Context, vehicle *model.Vehicle) error {
	r.logger.InfoContext(ctx, "Creating vehicle", "title", vehicle.Title, "vendor_id", vehicle.VendorID)
	if err := r.db.WithContext(ctx).Create(vehicle).Error; err != nil {
		r.logger.ErrorContext(ctx, "Failed to create vehicle", "title", vehicle.Title, "error", err)
		return fmt.Errorf("failed to create vehicle: %w", err)
	}
	return nil
}

// GetByID retrieves a vehicle by id.
func (r *vehicleRepository) GetByID(ctx context.Context, id string) (*model.Vehicle, error) {
	var vehicle model.Vehicle
	if err := r.db.WithContext(ctx).Preload("City").Preload("Vendor").Where("id = ?", id).First(&vehicle).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to get vehicle by id", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}
	return &vehicle, nil
}

// List retrieves a filtered page of active vehicles plus the total count.
func (r *vehicleRepository) List(ctx context.Context, filter repository.VehicleFilter, offset, limit int) ([]*model.Vehicle, int, error) {
	query := r.db.WithContext(ctx).Model(&model.Vehicle{}).Where("is_active = ?", true)
	if filter.VendorID != "" {
		query = query.Where("vendor_id = ?", filter.VendorID)
	}
	if filter.CityID != "" {
		query = query.Where("city_id = ?", filter.CityID)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.ErrorContext(ctx, "Failed to count vehicles", "error", err)
		return nil, 0, fmt.Errorf("failed to count vehicles: %w", err)
	}

	var vehicles []*model.Vehicle
	if err := query.Preload("City").Offset(offset).Limit(limit).Order("id ASC").Find(&vehicles).Error; err != nil {
		r.logger.ErrorContext(ctx, "Failed to list vehicles", "offset", offset, "limit", limit, "error", err)
		return nil, 0, fmt.Errorf("failed to list vehicles: %w", err)
	}

	return vehicles, int(total), nil
}

// Update persists changes to an existing vehicle.
func (r *vehicleRepository) Update(ctx context.Context, vehicle *model.Vehicle) error {
	r.logger.InfoContext(ctx, "Updating vehicle", "id", vehicle.ID)
	if err := r.db.WithContext(ctx).Model(&model.Vehicle{}).Where("id = ?", vehicle.ID).Updates(vehicle).Error; err != nil {
		r.logger.ErrorContext(ctx, "Failed to update vehicle", "id", vehicle.ID, "error", err)
		return fmt.Errorf("failed to update vehicle: %w", err)
	}
	return nil
}

// Delete soft-deletes a vehicle.
func (r *vehicleRepository) Delete(ctx context.Context, id string) error {
	r.logger.InfoContext(ctx, "Deleting vehicle", "id", id)
	result := r.db.WithContext(ctx).Delete(&model.Vehicle{ID: id})
	if result.Error != nil {
		r.logger.ErrorContext(ctx, "Failed to delete vehicle", "id", id, "error", result.Error)
		return fmt.Errorf("failed to delete vehicle: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
