package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Harsh-BH/jobtracker/internal/domain"
)

// SeedSampleJobs installs the two demo applications shown on a fresh install.
func SeedSampleJobs(ctx context.Context, repo JobRepository) error {
	now := time.Now().UTC()
	samples := []*domain.Job{
		{
			Title:           "Senior Frontend Developer",
			Company:         "TechCorp",
			ApplicationLink: "https://techcorp.com/careers/senior-frontend",
			Status:          domain.StatusApplied,
		},
		{
			Title:           "Full Stack Engineer",
			Company:         "StartupXYZ",
			ApplicationLink: "https://startupxyz.com/jobs/fullstack",
			Status:          domain.StatusInterviewing,
		},
	}
	for _, job := range samples {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("seed: generate id: %w", err)
		}
		job.ID = id.String()
		job.CreatedAt = now
		job.UpdatedAt = now
		if err := repo.Create(ctx, job); err != nil {
			return fmt.Errorf("seed %q: %w", job.Title, err)
		}
	}
	return nil
}
