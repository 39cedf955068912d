// Package memory provides the mutex guarded in-memory stores backing the
// experiment, user and progress services.
package memory

import (
	"fmt"
	"time"

	"github.com/circuitlab/circuitlab/api/internal/pkg/metrics"
)

// IDStrategy selects how a store allocates ids for new records
type IDStrategy string

const (
	// IDSequence hands out strictly increasing ids that are never reused
	IDSequence IDStrategy = "sequence"
	// IDLength uses current length + 1. Ids repeat after a deletion.
	IDLength IDStrategy = "length"
)

// ParseIDStrategy validates a strategy name
func ParseIDStrategy(s string) (IDStrategy, error) {
	switch IDStrategy(s) {
	case IDSequence, IDLength:
		return IDStrategy(s), nil
	case "":
		return IDSequence, nil
	}
	return "", fmt.Errorf("unknown id strategy %q", s)
}

// idAllocator must only be used while holding the owning store's write lock
type idAllocator struct {
	strategy IDStrategy
	last     int
}

func newIDAllocator(strategy IDStrategy) *idAllocator {
	if strategy == "" {
		strategy = IDSequence
	}
	return &idAllocator{strategy: strategy}
}

// observe records an id already present in the store
func (a *idAllocator) observe(id int) {
	if id > a.last {
		a.last = id
	}
}

// next returns the id for a new record given the current store size
func (a *idAllocator) next(size int) int {
	if a.strategy == IDLength {
		id := size + 1
		a.observe(id)
		return id
	}
	a.last++
	return a.last
}

// track records metrics for one store operation
func track(store, operation string, start time.Time, err error) {
	metrics.RecordStoreOp(store, operation, time.Since(start))
	if err != nil {
		metrics.RecordStoreError(store, operation)
	}
}
