package usecase

import (
	"context"
	"errors"

	"rental-service/domain"
	"rental-service/domain/model"
	"rental-service/domain/repository"
	"rental-service/pkg/logger"
	"rental-service/pkg/slug"
)

// VehicleUseCase defines the interface for vehicle catalog operations.
type VehicleUseCase interface {
	// CreateVehicle adds a vehicle to a vendor's fleet.
	CreateVehicle(ctx context.Context, vehicle *model.Vehicle) error
	// GetVehicleByID retrieves a vehicle by its ID.
	GetVehicleByID(ctx context.Context, id string) (*model.Vehicle, error)
	// ListVehicles retrieves a filtered page of active vehicles.
	ListVehicles(ctx context.Context, filter repository.VehicleFilter, offset, limit int) ([]*model.Vehicle, int, error)
	// UpdateVehicle modifies an existing vehicle.
	UpdateVehicle(ctx context.Context, vehicle *model.Vehicle) error
	// DeleteVehicle soft-deletes a vehicle.
	DeleteVehicle(ctx context.Context, id string) error
}

// vehicleUseCase implements the VehicleUseCase interface.
type vehicleUseCase struct {
	vehicleRepo repository.Vehicle
	vendorRepo  repository.Vendor
	logger      logger.LoggerInterface
}

// NewVehicleUseCase creates a new instance of vehicleUseCase.
func NewVehicleUseCase(vehicleRepo repository.Vehicle, vendorRepo repository.Vendor, appLogger logger.LoggerInterface) VehicleUseCase {
	return &vehicleUseCase{
		vehicleRepo: vehicleRepo,
		vendorRepo:  vendorRepo,
		logger:      appLogger,
	}
}

// CreateVehicle adds a vehicle after checking the owning vendor exists.
func (uc *vehicleUseCase) CreateVehicle(ctx context.Context, vehicle *model.Vehicle) error {
	if _, err := uc.vendorRepo.GetByID(ctx, vehicle.VendorID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrVendorNotFound
		}
		return err
	}
	if !model.IsValidCategory(vehicle.Category) {
		return domain.ErrInvalidCategory
	}
	if vehicle.Slug == "" {
		vehicle.Slug = slug.WithToken(vehicle.Title, 4)
	}
	return uc.vehicleRepo.Create(ctx, vehicle)
}

// GetVehicleByID retrieves a vehicle by its ID.
func (uc *vehicleUseCase) GetVehicleByID(ctx context.Context, id string) (*model.Vehicle, error) {
	vehicle, err := uc.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrVehicleNotFound
		}
		return nil, err
	}
	return vehicle, nil
}

// ListVehicles retrieves a filtered page of active vehicles.
func (uc *vehicleUseCase) ListVehicles(ctx context.Context, filter repository.VehicleFilter, offset, limit int) ([]*model.Vehicle, int, error) {
	return uc.vehicleRepo.List(ctx, filter, offset, limit)
}

// UpdateVehicle modifies an existing vehicle.
func (uc *vehicleUseCase) UpdateVehicle(ctx context.Context, vehicle *model.Vehicle) error {
	if _, err := uc.GetVehicleByID(ctx, vehicle.ID); err != nil {
		return err
	}
	if vehicle.Category != "" && !model.IsValidCategory(vehicle.Category) {
		return domain.ErrInvalidCategory
	}
	return uc.vehicleRepo.Update(ctx, vehicle)
}

// DeleteVehicle soft-deletes a vehicle.
func (uc *vehicleUseCase) DeleteVehicle(ctx context.Context, id string) error {
	if err := uc.vehicleRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrVehicleNotFound
		}
		return err
	}
	return nil
}
