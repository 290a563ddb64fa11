package postgres

import (
	"context"
	"fmt"

	"rental-service/domain/model"
	"rental-service/domain/repository"
	"rental-service/pkg/logger"

	"gorm.io/gorm"
)

type activityLogRepository struct {
	db     *gorm.DB
	logger logger.LoggerInterface
}

// NewActivityLogRepository creates a gorm-backed activity log repository.
// The audit table is append-only, so only Create and List exist.
func NewActivityLogRepository(db *gorm.DB, logger logger.LoggerInterface) repository.ActivityLog {
	return &activityLogRepository{
		db:     db,
		logger: logger,
	}
}

// Create appends an audit record.
func (r *activityLogRepository) Create(ctx context.Context, entry *model.ActivityLog) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		r.logger.ErrorContext(ctx, "Failed to append activity log", "action", entry.Action, "error", err)
		return fmt.Errorf("failed to append activity log: %w", err)
	}
	return nil
}

// List retrieves a page of audit records, newest first.
func (r *activityLogRepository) List(ctx context.Context, offset, limit int) ([]*model.ActivityLog, int, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.ActivityLog{}).Count(&total).Error; err != nil {
		r.logger.ErrorContext(ctx, "Failed to count activity logs", "error", err)
		return nil, 0, fmt.Errorf("failed to count activity logs: %w", err)
	}

	var entries []*model.ActivityLog
	if err := r.db.WithContext(ctx).Offset(offset).Limit(limit).Order("created_at DESC").Find(&entries).Error; err != nil {
		r.logger.ErrorContext(ctx, "Failed to list activity logs", "error", err)
		return nil, 0, fmt.Errorf("failed to list activity logs: %w", err)
	}

	return entries, int(total), nil
}
