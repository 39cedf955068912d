package memory

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/circuitlab/circuitlab/api/internal/domain"
	"github.com/circuitlab/circuitlab/api/internal/pkg/metrics"
)

const progressStore = "progress"

// ProgressRepository is an in-memory progress store kept in insertion order
type ProgressRepository struct {
	mu    sync.RWMutex
	items []domain.ProgressRecord
	ids   *idAllocator
}

// NewProgressRepository creates a store holding the given seed records
func NewProgressRepository(strategy IDStrategy, seed ...domain.ProgressRecord) *ProgressRepository {
	r := &ProgressRepository{
		items: make([]domain.ProgressRecord, 0, len(seed)),
		ids:   newIDAllocator(strategy),
	}
	for _, p := range seed {
		r.items = append(r.items, p.Clone())
		if n, err := strconv.Atoi(p.ID); err == nil {
			r.ids.observe(n)
		}
	}
	metrics.SetStoreRecords(progressStore, len(r.items))
	return r
}

// List returns copies of the records matching the filter, in storage order
func (r *ProgressRepository) List(ctx context.Context, filter *domain.ProgressFilter) ([]domain.ProgressRecord, error) {
	defer track(progressStore, "list", time.Now(), nil)

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.ProgressRecord, 0)
	for i := range r.items {
		if filter.Matches(&r.items[i]) {
			out = append(out, r.items[i].Clone())
		}
	}
	return out, nil
}

// Upsert finds the record for (userID, experimentID) and merges it, or creates
// a new one with the next id. Lookup and write happen under one lock.
// The boolean result reports whether a record was created.
func (r *ProgressRepository) Upsert(
	ctx context.Context,
	userID string,
	experimentID int,
	create func(id string) domain.ProgressRecord,
	merge func(*domain.ProgressRecord),
) (*domain.ProgressRecord, bool, error) {
	defer track(progressStore, "upsert", time.Now(), nil)

	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		existing := &r.items[i]
		if existing.UserID != userID || existing.ExperimentID != experimentID {
			continue
		}
		merged := existing.Clone()
		merge(&merged)
		merged.ID = existing.ID
		merged.UserID = userID
		merged.ExperimentID = experimentID
		r.items[i] = merged.Clone()
		return &merged, false, nil
	}

	rec := create(strconv.Itoa(r.ids.next(len(r.items))))
	r.items = append(r.items, rec.Clone())
	metrics.SetStoreRecords(progressStore, len(r.items))
	return &rec, true, nil
}

// Count returns the number of stored records
func (r *ProgressRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}
