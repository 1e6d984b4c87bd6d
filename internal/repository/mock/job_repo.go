package mock

import (
	"context"
	"sync"
	"time"

	"github.com/Harsh-BH/jobtracker/internal/domain"
	"github.com/Harsh-BH/jobtracker/internal/repository"
)

// Ensure MockJobRepository implements repository.JobRepository.
var _ repository.JobRepository = (*MockJobRepository)(nil)

// MockJobRepository is an in-memory mock of the job repository for testing.
type MockJobRepository struct {
	mu   sync.RWMutex
	jobs map[string]*domain.Job

	// Hook functions for injecting errors
	ListFunc    func(ctx context.Context) ([]*domain.Job, error)
	GetByIDFunc func(ctx context.Context, id string) (*domain.Job, error)
	CreateFunc  func(ctx context.Context, job *domain.Job) error
	UpdateFunc  func(ctx context.Context, id string, patch domain.JobPatch) (*domain.Job, error)
	DeleteFunc  func(ctx context.Context, id string) error
	CountFunc   func(ctx context.Context) (int, error)
}

// NewMockJobRepository creates a new mock repository.
func NewMockJobRepository() *MockJobRepository {
	return &MockJobRepository{
		jobs: make(map[string]*domain.Job),
	}
}

func (m *MockJobRepository) List(ctx context.Context) ([]*domain.Job, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return m.GetAll(), nil
}

func (m *MockJobRepository) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	job, ok := m.jobs[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	return job.Clone(), nil
}

func (m *MockJobRepository) Create(ctx context.Context, job *domain.Job) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, job)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[job.ID] = job.Clone()
	return nil
}

func (m *MockJobRepository) Update(ctx context.Context, id string, patch domain.JobPatch) (*domain.Job, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, patch)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	patch.Apply(job)
	job.UpdatedAt = time.Now().UTC()
	return job.Clone(), nil
}

func (m *MockJobRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.jobs[id]; !ok {
		return domain.ErrJobNotFound
	}
	delete(m.jobs, id)
	return nil
}

func (m *MockJobRepository) Count(ctx context.Context) (int, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.jobs), nil
}

// GetAll returns all stored jobs (for test assertions).
func (m *MockJobRepository) GetAll() []*domain.Job {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Job, 0, len(m.jobs))
	for _, j := range m.jobs {
		result = append(result, j.Clone())
	}
	return result
}
