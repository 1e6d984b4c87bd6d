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

// UpdateJobUsecase applies a partial update to a tracked job.
type UpdateJobUsecase struct {
	repo      repository.JobRepository
	publisher publisher.Publisher
	logger    *zap.Logger
}

// NewUpdateJobUsecase creates a new UpdateJobUsecase.
func NewUpdateJobUsecase(repo repository.JobRepository, pub publisher.Publisher, logger *zap.Logger) *UpdateJobUsecase {
	return &UpdateJobUsecase{
		repo:      repo,
		publisher: pub,
		logger:    logger,
	}
}

// Execute validates the present fields of req and merges them into the stored job.
// An empty request still refreshes UpdatedAt.
func (uc *UpdateJobUsecase) Execute(ctx context.Context, id string, req *domain.UpdateJobRequest) (*domain.Job, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if req.Status != nil {
		if _, err := domain.ParseJobStatus(string(*req.Status)); err != nil {
			return nil, err
		}
	}

	job, err := uc.repo.Update(ctx, id, req.Patch())
	if errors.Is(err, domain.ErrJobNotFound) {
		return nil, domain.ErrJobNotFound
	}
	if err != nil {
		uc.logger.Error("Failed to update job", zap.Error(err), zap.String("job_id", id))
		return nil, fmt.Errorf("update job: %w", err)
	}

	uc.logger.Info("Job updated",
		zap.String("job_id", id),
		zap.String("status", string(job.Status)),
	)

	afterMutation(ctx, uc.repo, uc.publisher, uc.logger, domain.NewJobEvent(domain.EventJobUpdated, id, job.Clone()))
	return job, nil
}
