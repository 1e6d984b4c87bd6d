package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Harsh-BH/jobtracker/internal/repository"
)

var _ repository.WindowCounter = (*WindowCounter)(nil)

type window struct {
	count int64
	start time.Time
}

// WindowCounter is a single-process fixed-window counter.
type WindowCounter struct {
	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time
}

// NewWindowCounter creates an empty counter. Stale windows are pruned lazily on Incr.
func NewWindowCounter() *WindowCounter {
	return &WindowCounter{
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

func (w *WindowCounter) Incr(ctx context.Context, key string, size time.Duration) (int64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	win, ok := w.windows[key]
	if !ok || now.Sub(win.start) >= size {
		w.prune(now, size)
		win = &window{start: now}
		w.windows[key] = win
	}
	win.count++
	return win.count, nil
}

// prune drops windows older than two window lengths. Caller holds mu.
func (w *WindowCounter) prune(now time.Time, size time.Duration) {
	for k, win := range w.windows {
		if now.Sub(win.start) > 2*size {
			delete(w.windows, k)
		}
	}
}
