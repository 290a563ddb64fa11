package usecase

import (
	"context"

	"rental-service/domain/model"
	"rental-service/domain/repository"
	"rental-service/pkg/logger"
)

// ActivityUseCase defines the interface for reading the audit trail.
type ActivityUseCase interface {
	// ListActivities retrieves a page of audit records, newest first.
	ListActivities(ctx context.Context, offset, limit int) ([]*model.ActivityLog, int, error)
}

// activityUseCase implements the ActivityUseCase interface.
type activityUseCase struct {
	activityRepo repository.ActivityLog
	logger       logger.LoggerInterface
}

// NewActivityUseCase creates a new instance of activityUseCase.
func NewActivityUseCase(activityRepo repository.ActivityLog, appLogger logger.LoggerInterface) ActivityUseCase {
	return &activityUseCase{
		activityRepo: activityRepo,
		logger:       appLogger,
	}
}

// ListActivities retrieves a page of audit records, newest first.
func (uc *activityUseCase) ListActivities(ctx context.Context, offset, limit int) ([]*model.ActivityLog, int, error) {
	return uc.activityRepo.List(ctx, offset, limit)
}
