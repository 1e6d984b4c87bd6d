package mock

import (
	"context"
	"sync"

	"github.com/Harsh-BH/jobtracker/internal/domain"
	"github.com/Harsh-BH/jobtracker/internal/publisher"
)

// Ensure MockPublisher implements publisher.Publisher.
var _ publisher.Publisher = (*MockPublisher)(nil)

// MockPublisher records published events for testing.
type MockPublisher struct {
	mu        sync.Mutex
	Published []*domain.JobEvent
	PublishFn func(ctx context.Context, event *domain.JobEvent) error
}

// NewMockPublisher creates a new mock publisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

func (m *MockPublisher) Publish(ctx context.Context, event *domain.JobEvent) error {
	if m.PublishFn != nil {
		return m.PublishFn(ctx, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Published = append(m.Published, event)
	return nil
}

// Events returns a snapshot of the recorded events.
func (m *MockPublisher) Events() []*domain.JobEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.JobEvent, len(m.Published))
	copy(out, m.Published)
	return out
}

func (m *MockPublisher) Close() error {
	return nil
}
