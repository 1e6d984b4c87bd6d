package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Harsh-BH/jobtracker/internal/domain"
	"github.com/Harsh-BH/jobtracker/internal/repository"
)

// Ensure JobRepository implements repository.JobRepository.
var _ repository.JobRepository = (*JobRepository)(nil)

type entry struct {
	job *domain.Job
	seq uint64
}

// JobRepository keeps tracked jobs in process memory. Contents are lost on restart.
type JobRepository struct {
	mu      sync.RWMutex
	jobs    map[string]*entry
	nextSeq uint64
	now     func() time.Time
}

// Option configures a JobRepository.
type Option func(*JobRepository)

// WithClock overrides the time source used when refreshing UpdatedAt.
func WithClock(now func() time.Time) Option {
	return func(r *JobRepository) { r.now = now }
}

// NewJobRepository creates an empty in-memory job repository.
func NewJobRepository(opts ...Option) *JobRepository {
	r := &JobRepository{
		jobs: make(map[string]*entry),
		now:  func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *JobRepository) List(ctx context.Context) ([]*domain.Job, error) {
	r.mu.RLock()
	snapshot := make([]entry, 0, len(r.jobs))
	for _, e := range r.jobs {
		snapshot = append(snapshot, entry{job: e.job.Clone(), seq: e.seq})
	}
	r.mu.RUnlock()

	sort.Slice(snapshot, func(i, j int) bool {
		a, b := snapshot[i], snapshot[j]
		if !a.job.CreatedAt.Equal(b.job.CreatedAt) {
			return a.job.CreatedAt.After(b.job.CreatedAt)
		}
		return a.seq > b.seq
	})

	result := make([]*domain.Job, len(snapshot))
	for i, e := range snapshot {
		result[i] = e.job
	}
	return result, nil
}

func (r *JobRepository) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.jobs[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	return e.job.Clone(), nil
}

func (r *JobRepository) Create(ctx context.Context, job *domain.Job) error {
	if job.ID == "" {
		return fmt.Errorf("memory: create job: empty id")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.jobs[job.ID]; exists {
		return domain.ErrDuplicateJobID
	}
	r.nextSeq++
	r.jobs[job.ID] = &entry{job: job.Clone(), seq: r.nextSeq}
	return nil
}

func (r *JobRepository) Update(ctx context.Context, id string, patch domain.JobPatch) (*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.jobs[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}

	// Stored jobs are replaced, never mutated in place.
	updated := e.job.Clone()
	patch.Apply(updated)
	now := r.now()
	if now.Before(updated.UpdatedAt) {
		now = updated.UpdatedAt
	}
	updated.UpdatedAt = now
	e.job = updated
	return updated.Clone(), nil
}

func (r *JobRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[id]; !ok {
		return domain.ErrJobNotFound
	}
	delete(r.jobs, id)
	return nil
}

func (r *JobRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.jobs), nil
}
