package usecase

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Harsh-BH/jobtracker/internal/domain"
	"github.com/Harsh-BH/jobtracker/internal/repository"
)

// GetJobUsecase handles fetching a single tracked job.
type GetJobUsecase struct {
	repo   repository.JobRepository
	logger *zap.Logger
}

// NewGetJobUsecase creates a new GetJobUsecase.
func NewGetJobUsecase(repo repository.JobRepository, logger *zap.Logger) *GetJobUsecase {
	return &GetJobUsecase{
		repo:   repo,
		logger: logger,
	}
}

// Execute retrieves a job by its ID.
func (uc *GetJobUsecase) Execute(ctx context.Context, id string) (*domain.Job, error) {
	job, err := uc.repo.GetByID(ctx, id)
	if errors.Is(err, domain.ErrJobNotFound) {
		uc.logger.Debug("Job not found", zap.String("job_id", id))
		return nil, domain.ErrJobNotFound
	}
	if err != nil {
		uc.logger.Error("Failed to get job", zap.String("job_id", id), zap.Error(err))
		return nil, fmt.Errorf("get job: %w", err)
	}
	return job, nil
}
