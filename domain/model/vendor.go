// Package model contains the gorm data models for the application.
package model

import (
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

// Vendor registration lifecycle statuses.
const (
	StatusNotRegistered  = "NOT_REGISTERED"
	StatusFormSubmitted  = "FORM_SUBMITTED"
	StatusAccountCreated = "ACCOUNT_CREATED"
	StatusEmailSent      = "EMAIL_SENT"
	StatusActive         = "ACTIVE"
	StatusSuspended      = "SUSPENDED"
)

// ValidStatuses lists every registration status a vendor may hold.
var ValidStatuses = []string{
	StatusNotRegistered,
	StatusFormSubmitted,
	StatusAccountCreated,
	StatusEmailSent,
	StatusActive,
	StatusSuspended,
}

// IsValidStatus reports whether s is a known registration status.
func IsValidStatus(s string) bool {
	for _, v := range ValidStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Vendor represents a rental business account.
type Vendor struct {
	ID string `gorm:"type:char(26);primaryKey" json:"id"`
	// BusinessName is the vendor's display name.
	BusinessName string `gorm:"not null" json:"business_name"`
	// Email is unique when present; vendors imported without an email have none.
	Email *string `gorm:"uniqueIndex" json:"email,omitempty"`
	Phone string  `json:"phone,omitempty"`
	// Slug is the unique URL identifier derived from the business name.
	Slug        string  `gorm:"uniqueIndex;not null" json:"slug"`
	CityID      *string `gorm:"type:char(26);index" json:"city_id,omitempty"`
	City        *City   `gorm:"references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"city,omitempty"`
	Description string  `json:"description,omitempty"`
	// RegistrationStatus tracks the onboarding lifecycle.
	RegistrationStatus string `gorm:"not null;default:NOT_REGISTERED" json:"registration_status"`
	// AuthUserID references the identity in the external auth provider.
	// It is set exactly once when an account is provisioned.
	AuthUserID *string `gorm:"index" json:"-"`
	// PasswordCiphertext is the hex envelope of the encrypted temporary
	// password. Plaintext is never persisted.
	PasswordCiphertext string     `json:"-"`
	StatusChangedAt    *time.Time `json:"status_changed_at,omitempty"`
	CreatedAt          time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

func (v *Vendor) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = ulid.Make().String()
	}
	return nil
}
