package publisher

import (
	"context"

	"github.com/Harsh-BH/jobtracker/internal/domain"
)

// NopPublisher discards every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, *domain.JobEvent) error { return nil }

func (NopPublisher) Close() error { return nil }
