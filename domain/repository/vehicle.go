package repository

import (
	"context"

	"rental-service/domain/model"
)

// VehicleFilter narrows vehicle listings.
type VehicleFilter struct {
	VendorID string
	CityID   string
	Category string
}

// Vehicle defines the contract for vehicle database operations.
type Vehicle interface {
	// Create adds a new vehicle.
	Create(ctx context.Context, vehicle *model.Vehicle) error
	// GetByID retrieves a vehicle by id.
	GetByID(ctx context.Context, id string) (*model.Vehicle, error)
	// List retrieves a filtered page of active vehicles plus the total count.
	List(ctx context.Context, filter VehicleFilter, offset, limit int) ([]*model.Vehicle, int, error)
	// Update persists changes to an existing vehicle.
	Update(ctx context.Context, vehicle *model.Vehicle) error
	// Delete soft-deletes a vehicle.
	Delete(ctx context.Context, id string) error
}
