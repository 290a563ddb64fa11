package repository

import (
	"context"

	"rental-service/domain/model"
)

// ActivityLog defines the contract for the append-only audit table.
// There is deliberately no update or delete.
type ActivityLog interface {
	// Create appends an audit record.
	Create(ctx context.Context, entry *model.ActivityLog) error
	// List retrieves a page of audit records, newest first, plus the total count.
	List(ctx context.Context, offset, limit int) ([]*model.ActivityLog, int, error)
}
