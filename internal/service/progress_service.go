package service

import (
	"context"
	"time"

	"github.com/circuitlab/circuitlab/api/internal/domain"
	"github.com/circuitlab/circuitlab/api/internal/validator"
)

// ProgressRepository defines progress repository operations
type ProgressRepository interface {
	List(ctx context.Context, filter *domain.ProgressFilter) ([]domain.ProgressRecord, error)
	Upsert(
		ctx context.Context,
		userID string,
		experimentID int,
		create func(id string) domain.ProgressRecord,
		merge func(*domain.ProgressRecord),
	) (*domain.ProgressRecord, bool, error)
}

// ProgressService handles per-user experiment progress
type ProgressService struct {
	repo ProgressRepository
	now  func() time.Time
}

// NewProgressService creates a new progress service
func NewProgressService(repo ProgressRepository) *ProgressService {
	return &ProgressService{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the clock used to stamp completedAt
func (s *ProgressService) WithClock(now func() time.Time) *ProgressService {
	s.now = now
	return s
}

// List returns the records matching the filter in storage order
func (s *ProgressService) List(ctx context.Context, filter *domain.ProgressFilter) ([]domain.ProgressRecord, error) {
	return s.repo.List(ctx, filter)
}

// Upsert merges the input into the record for (userId, experimentId) or
// creates one. The boolean result reports whether a record was created.
func (s *ProgressService) Upsert(ctx context.Context, input *domain.ProgressInput) (*domain.ProgressRecord, bool, error) {
	if err := validator.ValidateInput(input); err != nil {
		return nil, false, err
	}

	now := s.now()
	return s.repo.Upsert(ctx, input.UserID, input.ExperimentID,
		func(id string) domain.ProgressRecord {
			return input.NewRecord(id, now)
		},
		func(r *domain.ProgressRecord) {
			input.Apply(r, now)
		},
	)
}
