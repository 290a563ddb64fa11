// Package repository defines the interfaces for the data access layer.
package repository

import (
	"context"

	"rental-service/domain/model"
)

// Vendor defines the contract for vendor database operations.
type Vendor interface {
	// Create adds a new vendor.
	Create(ctx context.Context, vendor *model.Vendor) error
	// CreateBatch inserts vendors in one statement with conflicting rows
	// skipped, and returns the number of rows actually inserted.
	CreateBatch(ctx context.Context, vendors []*model.Vendor) (int, error)
	// GetByID retrieves a vendor by id.
	GetByID(ctx context.Context, id string) (*model.Vendor, error)
	// GetBySlug retrieves a vendor by slug.
	GetBySlug(ctx context.Context, slug string) (*model.Vendor, error)
	// FindByEmails returns the vendors whose email is in the given list,
	// matched case-insensitively, in a single query.
	FindByEmails(ctx context.Context, emails []string) ([]*model.Vendor, error)
	// Update persists the given fields of an existing vendor.
	Update(ctx context.Context, vendor *model.Vendor) error
	// UpdateAccount sets the auth identity reference, password ciphertext
	// and registration status in one update.
	UpdateAccount(ctx context.Context, id string, authUserID, ciphertext, status string) error
	// UpdateCiphertext overwrites only the stored password envelope.
	UpdateCiphertext(ctx context.Context, id string, ciphertext string) error
	// UpdateStatus sets the registration status.
	UpdateStatus(ctx context.Context, id string, status string) error
	// Delete soft-deletes a vendor.
	Delete(ctx context.Context, id string) error
	// List retrieves a page of vendors plus the total count.
	List(ctx context.Context, offset, limit int) ([]*model.Vendor, int, error)
}
