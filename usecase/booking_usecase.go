package usecase

import (
	"context"
	"errors"

	"rental-service/domain"
	"rental-service/domain/model"
	"rental-service/domain/repository"
	"rental-service/pkg/logger"
)

// BookingUseCase defines the interface for booking inquiry operations.
type BookingUseCase interface {
	// CreateBooking records a public booking inquiry against a vehicle.
	CreateBooking(ctx context.Context, booking *model.Booking) error
	// GetBookingByID retrieves a booking by its ID.
	GetBookingByID(ctx context.Context, id string) (*model.Booking, error)
	// ListBookingsByVendor retrieves a page of a vendor's bookings.
	ListBookingsByVendor(ctx context.Context, vendorID string, offset, limit int) ([]*model.Booking, int, error)
	// UpdateBookingStatus transitions the booking status.
	UpdateBookingStatus(ctx context.Context, id, status string) error
}

// bookingUseCase implements the BookingUseCase interface.
type bookingUseCase struct {
	bookingRepo repository.Booking
	vehicleRepo repository.Vehicle
	logger      logger.LoggerInterface
}

// NewBookingUseCase creates a new instance of bookingUseCase.
func NewBookingUseCase(bookingRepo repository.Booking, vehicleRepo repository.Vehicle, appLogger logger.LoggerInterface) BookingUseCase {
	return &bookingUseCase{
		bookingRepo: bookingRepo,
		vehicleRepo: vehicleRepo,
		logger:      appLogger,
	}
}

// CreateBooking records an inquiry. The vendor is resolved from the vehicle
// so callers cannot book against a mismatched vendor.
func (uc *bookingUseCase) CreateBooking(ctx context.Context, booking *model.Booking) error {
	vehicle, err := uc.vehicleRepo.GetByID(ctx, booking.VehicleID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrVehicleNotFound
		}
		return err
	}

	booking.VendorID = vehicle.VendorID
	booking.Status = model.BookingPending
	return uc.bookingRepo.Create(ctx, booking)
}

// GetBookingByID retrieves a booking by its ID.
func (uc *bookingUseCase) GetBookingByID(ctx context.Context, id string) (*model.Booking, error) {
	booking, err := uc.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

// ListBookingsByVendor retrieves a page of a vendor's bookings.
func (uc *bookingUseCase) ListBookingsByVendor(ctx context.Context, vendorID string, offset, limit int) ([]*model.Booking, int, error) {
	return uc.bookingRepo.ListByVendor(ctx, vendorID, offset, limit)
}

// UpdateBookingStatus transitions the booking status after validating the enum.
func (uc *bookingUseCase) UpdateBookingStatus(ctx context.Context, id, status string) error {
	if !model.IsValidBookingStatus(status) {
		return domain.ErrInvalidStatus
	}
	if err := uc.bookingRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrBookingNotFound
		}
		return err
	}
	return nil
}
