package repository

import (
	"context"
	"time"

	"github.com/Harsh-BH/jobtracker/internal/domain"
)

// JobRepository defines the interface for tracked-job persistence.
// Implementations must be safe for concurrent use.
type JobRepository interface {
	// List returns every job, newest first. Jobs created at the same instant
	// are ordered by insertion, later inserts first.
	List(ctx context.Context) ([]*domain.Job, error)

	// GetByID retrieves a job by its id.
	GetByID(ctx context.Context, id string) (*domain.Job, error)

	// Create stores a job already stamped with its id and timestamps.
	Create(ctx context.Context, job *domain.Job) error

	// Update merges patch into the stored job and refreshes UpdatedAt.
	Update(ctx context.Context, id string, patch domain.JobPatch) (*domain.Job, error)

	// Delete removes a job.
	Delete(ctx context.Context, id string) error

	// Count returns the number of stored jobs.
	Count(ctx context.Context) (int, error)
}

// WindowCounter counts events per key inside fixed time windows.
// Incr returns the count for key in the current window, including this call.
type WindowCounter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}
