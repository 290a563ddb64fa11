package model

import (
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

// Vehicle categories.
const (
	CategoryEconomy = "ECONOMY"
	CategorySedan   = "SEDAN"
	CategorySUV     = "SUV"
	CategoryVan     = "VAN"
	CategoryLuxury  = "LUXURY"
)

// IsValidCategory reports whether c is a known vehicle category.
func IsValidCategory(c string) bool {
	switch c {
	case CategoryEconomy, CategorySedan, CategorySUV, CategoryVan, CategoryLuxury:
		return true
	}
	return false
}

// Vehicle is a rentable listing owned by a vendor.
type Vehicle struct {
	ID       string  `gorm:"type:char(26);primaryKey" json:"id"`
	VendorID string  `gorm:"type:char(26);index;not null" json:"vendor_id"`
	Vendor   *Vendor `gorm:"references:ID" json:"vendor,omitempty"`
	CityID   string  `gorm:"type:char(26);index;not null" json:"city_id"`
	City     *City   `gorm:"references:ID" json:"city,omitempty"`

	Title        string  `gorm:"not null" json:"title"`
	Slug         string  `gorm:"uniqueIndex;not null" json:"slug"`
	Category     string  `gorm:"not null" json:"category"`
	Seats        int     `json:"seats"`
	Transmission string  `json:"transmission,omitempty"`
	PricePerDay  float64 `gorm:"not null" json:"price_per_day"`
	WithDriver   bool    `json:"with_driver"`
	IsActive     bool    `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (v *Vehicle) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = ulid.Make().String()
	}
	return nil
}
