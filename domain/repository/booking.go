package repository

import (
	"context"

	"rental-service/domain/model"
)

// Booking defines the contract for booking database operations.
type Booking interface {
	// Create adds a new booking inquiry.
	Create(ctx context.Context, booking *model.Booking) error
	// GetByID retrieves a booking by id.
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	// ListByVendor retrieves a page of a vendor's bookings plus the total count.
	ListByVendor(ctx context.Context, vendorID string, offset, limit int) ([]*model.Booking, int, error)
	// UpdateStatus sets the booking status.
	UpdateStatus(ctx context.Context, id string, status string) error
}
