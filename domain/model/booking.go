package model

import (
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

// Booking statuses.
const (
	BookingPending   = "PENDING"
	BookingConfirmed = "CONFIRMED"
	BookingCompleted = "COMPLETED"
	BookingCancelled = "CANCELLED"
)

// IsValidBookingStatus reports whether s is a known booking status.
func IsValidBookingStatus(s string) bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// Booking is a customer inquiry for a vehicle.
type Booking struct {
	ID        string   `gorm:"type:char(26);primaryKey" json:"id"`
	VehicleID string   `gorm:"type:char(26);index;not null" json:"vehicle_id"`
	Vehicle   *Vehicle `gorm:"references:ID" json:"vehicle,omitempty"`
	VendorID  string   `gorm:"type:char(26);index;not null" json:"vendor_id"`

	CustomerName  string    `gorm:"not null" json:"customer_name"`
	CustomerPhone string    `gorm:"not null" json:"customer_phone"`
	PickupDate    time.Time `json:"pickup_date"`
	ReturnDate    time.Time `json:"return_date"`
	Status        string    `gorm:"not null;default:PENDING" json:"status"`
	Notes         string    `json:"notes,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = ulid.Make().String()
	}
	return nil
}
