package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Harsh-BH/jobtracker/internal/domain"
	"github.com/Harsh-BH/jobtracker/internal/repository"
)

// ListJobsUsecase returns every tracked job, newest first.
type ListJobsUsecase struct {
	repo   repository.JobRepository
	logger *zap.Logger
}

// NewListJobsUsecase creates a new ListJobsUsecase.
func NewListJobsUsecase(repo repository.JobRepository, logger *zap.Logger) *ListJobsUsecase {
	return &ListJobsUsecase{
		repo:   repo,
		logger: logger,
	}
}

// Execute lists all jobs.
func (uc *ListJobsUsecase) Execute(ctx context.Context) ([]*domain.Job, error) {
	jobs, err := uc.repo.List(ctx)
	if err != nil {
		uc.logger.Error("Failed to list jobs", zap.Error(err))
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, nil
}
