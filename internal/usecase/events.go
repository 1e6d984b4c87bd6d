package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/Harsh-BH/jobtracker/internal/domain"
	"github.com/Harsh-BH/jobtracker/internal/metrics"
	"github.com/Harsh-BH/jobtracker/internal/publisher"
	"github.com/Harsh-BH/jobtracker/internal/repository"
)

// afterMutation publishes the event and refreshes the store-size gauge.
// Neither step can fail the request that triggered it.
func afterMutation(ctx context.Context, repo repository.JobRepository, pub publisher.Publisher, logger *zap.Logger, event *domain.JobEvent) {
	if err := pub.Publish(ctx, event); err != nil {
		metrics.EventPublishFailures.Inc()
		logger.Warn("Failed to publish job event",
			zap.Error(err),
			zap.String("type", string(event.Type)),
			zap.String("job_id", event.JobID),
		)
	}

	if n, err := repo.Count(ctx); err == nil {
		metrics.JobsStored.Set(float64(n))
	}
}
