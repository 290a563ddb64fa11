package repository

import (
	"context"

	"rental-service/domain/model"
)

// City defines the contract for city database operations.
type City interface {
	// Create adds a new city.
	Create(ctx context.Context, city *model.City) error
	// GetByID retrieves a city by id.
	GetByID(ctx context.Context, id string) (*model.City, error)
	// GetActive returns all active cities in one query.
	GetActive(ctx context.Context) ([]*model.City, error)
}
