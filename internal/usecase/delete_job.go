package usecase

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Harsh-BH/jobtracker/internal/domain"
	"github.com/Harsh-BH/jobtracker/internal/publisher"
	"github.com/Harsh-BH/jobtracker/internal/repository"
)

// DeleteJobUsecase removes a tracked job.
type DeleteJobUsecase struct {
	repo      repository.JobRepository
	publisher publisher.Publisher
	logger    *zap.Logger
}

// NewDeleteJobUsecase creates a new DeleteJobUsecase.
func NewDeleteJobUsecase(repo repository.JobRepository, pub publisher.Publisher, logger *zap.Logger) *DeleteJobUsecase {
	return &DeleteJobUsecase{
		repo:      repo,
		publisher: pub,
		logger:    logger,
	}
}

// Execute deletes the job with the given id.
func (uc *DeleteJobUsecase) Execute(ctx context.Context, id string) error {
	err := uc.repo.Delete(ctx, id)
	if errors.Is(err, domain.ErrJobNotFound) {
		return domain.ErrJobNotFound
	}
	if err != nil {
		uc.logger.Error("Failed to delete job", zap.Error(err), zap.String("job_id", id))
		return fmt.Errorf("delete job: %w", err)
	}

	uc.logger.Info("Job deleted", zap.String("job_id", id))

	afterMutation(ctx, uc.repo, uc.publisher, uc.logger, domain.NewJobEvent(domain.EventJobDeleted, id, nil))
	return nil
}
