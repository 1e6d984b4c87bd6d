package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Harsh-BH/jobtracker/internal/domain"
	"github.com/Harsh-BH/jobtracker/internal/publisher"
	"github.com/Harsh-BH/jobtracker/internal/repository"
)

// CreateJobUsecase validates and stores a new tracked job.
type CreateJobUsecase struct {
	repo      repository.JobRepository
	publisher publisher.Publisher
	logger    *zap.Logger

	newID func() (string, error)
	now   func() time.Time
}

// NewCreateJobUsecase creates a new CreateJobUsecase.
func NewCreateJobUsecase(repo repository.JobRepository, pub publisher.Publisher, logger *zap.Logger) *CreateJobUsecase {
	return &CreateJobUsecase{
		repo:      repo,
		publisher: pub,
		logger:    logger,
		newID:     newUUIDv7,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func newUUIDv7() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Execute validates req, assigns an id and timestamps, stores the job and announces it.
func (uc *CreateJobUsecase) Execute(ctx context.Context, req *domain.CreateJobRequest) (*domain.Job, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if _, err := domain.ParseJobStatus(string(req.Status)); err != nil {
		return nil, err
	}

	// UUIDv7 is time-ordered, so ids never repeat within the process.
	id, err := uc.newID()
	if err != nil {
		return nil, fmt.Errorf("generate UUIDv7: %w", err)
	}

	now := uc.now()
	job := &domain.Job{
		ID:              id,
		Title:           req.Title,
		Company:         req.Company,
		ApplicationLink: req.ApplicationLink,
		Status:          req.Status,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := uc.repo.Create(ctx, job); err != nil {
		uc.logger.Error("Failed to store job", zap.Error(err), zap.String("job_id", id))
		return nil, fmt.Errorf("create job: %w", err)
	}

	uc.logger.Info("Job created",
		zap.String("job_id", id),
		zap.String("company", job.Company),
		zap.String("status", string(job.Status)),
	)

	afterMutation(ctx, uc.repo, uc.publisher, uc.logger, domain.NewJobEvent(domain.EventJobCreated, id, job.Clone()))
	return job, nil
}
