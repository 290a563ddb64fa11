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

type cityRepository struct {
	db     *gorm.DB
	logger logger.LoggerInterface
}

// NewCityRepository creates a gorm-backed city repository.
func NewCityRepository(db *gorm.DB, logger logger.LoggerInterface) repository.City {
	return &cityRepository{
		db:     db,
		logger: logger,
	}
}

// Create adds a new city.
func (r *cityRepository) Create(ctx context.Context, city *model.City) error {
	r.logger.InfoContext(ctx, "Creating city", "name", city.Name)
	if err := r.db.WithContext(ctx).Create(city).Error; err != nil {
		r.logger.ErrorContext(ctx, "Failed to create city", "name", city.Name, "error", err)
		return fmt.Errorf("failed to create city: %w", err)
	}
	return nil
}

// GetByID retrieves a city by id.
func (r *cityRepository) GetByID(ctx context.Context, id string) (*model.City, error) {
	var city model.City
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&city).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to get city by id", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get city: %w", err)
	}
	return &city, nil
}

// GetActive returns all active cities.
func (r *cityRepository) GetActive(ctx context.Context) ([]*model.City, error) {
	var cities []*model.City
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("name ASC").Find(&cities).Error; err != nil {
		r.logger.ErrorContext(ctx, "Failed to get active cities", "error", err)
		return nil, fmt.Errorf("failed to get active cities: %w", err)
	}
	return cities, nil
}
