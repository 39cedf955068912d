package memory

import (
	"context"
	"sync"
	"time"

	"github.com/circuitlab/circuitlab/api/internal/domain"
	apperrors "github.com/circuitlab/circuitlab/api/internal/pkg/errors"
	"github.com/circuitlab/circuitlab/api/internal/pkg/metrics"
)

const experimentStore = "experiments"

// ExperimentRepository is an in-memory experiment store kept in insertion order
type ExperimentRepository struct {
	mu    sync.RWMutex
	items []domain.Experiment
	ids   *idAllocator
}

// NewExperimentRepository creates a store holding the given seed records
func NewExperimentRepository(strategy IDStrategy, seed ...domain.Experiment) *ExperimentRepository {
	r := &ExperimentRepository{
		items: make([]domain.Experiment, 0, len(seed)),
		ids:   newIDAllocator(strategy),
	}
	for _, e := range seed {
		r.items = append(r.items, e)
		r.ids.observe(e.ID)
	}
	metrics.SetStoreRecords(experimentStore, len(r.items))
	return r
}

// List returns a copy of all experiments
func (r *ExperimentRepository) List(ctx context.Context) ([]domain.Experiment, error) {
	defer track(experimentStore, "list", time.Now(), nil)

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Experiment, len(r.items))
	copy(out, r.items)
	return out, nil
}

// GetByID retrieves an experiment by id
func (r *ExperimentRepository) GetByID(ctx context.Context, id int) (e *domain.Experiment, err error) {
	defer func(start time.Time) { track(experimentStore, "get", start, err) }(time.Now())

	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, apperrors.NotFound("experiment")
	}
	found := r.items[i]
	return &found, nil
}

// Create assigns the next id to the experiment and appends it
func (r *ExperimentRepository) Create(ctx context.Context, e *domain.Experiment) error {
	defer track(experimentStore, "create", time.Now(), nil)

	r.mu.Lock()
	defer r.mu.Unlock()

	e.ID = r.ids.next(len(r.items))
	r.items = append(r.items, *e)
	metrics.SetStoreRecords(experimentStore, len(r.items))
	return nil
}

// Update applies fn to a copy of the stored experiment and writes it back.
// The id is restored after fn runs.
func (r *ExperimentRepository) Update(ctx context.Context, id int, fn func(*domain.Experiment) error) (e *domain.Experiment, err error) {
	defer func(start time.Time) { track(experimentStore, "update", start, err) }(time.Now())

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, apperrors.NotFound("experiment")
	}

	updated := r.items[i]
	if err := fn(&updated); err != nil {
		return nil, err
	}
	updated.ID = id
	r.items[i] = updated
	return &updated, nil
}

// Delete removes an experiment and returns it
func (r *ExperimentRepository) Delete(ctx context.Context, id int) (e *domain.Experiment, err error) {
	defer func(start time.Time) { track(experimentStore, "delete", start, err) }(time.Now())

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, apperrors.NotFound("experiment")
	}

	removed := r.items[i]
	r.items = append(r.items[:i], r.items[i+1:]...)
	metrics.SetStoreRecords(experimentStore, len(r.items))
	return &removed, nil
}

// Count returns the number of stored experiments
func (r *ExperimentRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

func (r *ExperimentRepository) indexOf(id int) int {
	for i := range r.items {
		if r.items[i].ID == id {
			return i
		}
	}
	return -1
}
