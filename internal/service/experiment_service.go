package service

import (
	"context"
	"fmt"

	"github.com/circuitlab/circuitlab/api/internal/domain"
	"github.com/circuitlab/circuitlab/api/internal/validator"
)

// ExperimentRepository defines experiment repository operations
type ExperimentRepository interface {
	List(ctx context.Context) ([]domain.Experiment, error)
	GetByID(ctx context.Context, id int) (*domain.Experiment, error)
	Create(ctx context.Context, e *domain.Experiment) error
	Update(ctx context.Context, id int, fn func(*domain.Experiment) error) (*domain.Experiment, error)
	Delete(ctx context.Context, id int) (*domain.Experiment, error)
}

// ExperimentService handles the experiment catalogue
type ExperimentService struct {
	repo          ExperimentRepository
	embedTemplate string
}

// NewExperimentService creates a new experiment service.
// An empty template falls back to domain.DefaultEmbedURLTemplate.
func NewExperimentService(repo ExperimentRepository, embedTemplate string) *ExperimentService {
	if embedTemplate == "" {
		embedTemplate = domain.DefaultEmbedURLTemplate
	}
	return &ExperimentService{
		repo:          repo,
		embedTemplate: embedTemplate,
	}
}

// List returns all experiments in insertion order
func (s *ExperimentService) List(ctx context.Context) ([]domain.Experiment, error) {
	return s.repo.List(ctx)
}

// Get retrieves an experiment by ID
func (s *ExperimentService) Get(ctx context.Context, id int) (*domain.Experiment, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates the input and stores a new experiment
func (s *ExperimentService) Create(ctx context.Context, input *domain.ExperimentInput) (*domain.Experiment, error) {
	if err := validator.ValidateInput(input); err != nil {
		return nil, err
	}

	experiment := &domain.Experiment{
		Title:         input.Title,
		Description:   input.Description,
		EmbedID:       input.EmbedID,
		Aim:           input.Aim,
		Completed:     input.Completed,
		TotalStudents: input.TotalStudents,
	}

	if err := s.repo.Create(ctx, experiment); err != nil {
		return nil, fmt.Errorf("failed to create experiment: %w", err)
	}

	return experiment, nil
}

// Update applies a partial update to an experiment
func (s *ExperimentService) Update(ctx context.Context, id int, patch *domain.ExperimentPatch) (*domain.Experiment, error) {
	return s.repo.Update(ctx, id, func(e *domain.Experiment) error {
		patch.Apply(e)
		return nil
	})
}

// Delete removes an experiment and returns it
func (s *ExperimentService) Delete(ctx context.Context, id int) (*domain.Experiment, error) {
	return s.repo.Delete(ctx, id)
}

// EmbedURL resolves the simulator iframe URL of an experiment
func (s *ExperimentService) EmbedURL(ctx context.Context, id int) (*domain.ExperimentEmbed, error) {
	experiment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &domain.ExperimentEmbed{
		ExperimentID: experiment.ID,
		EmbedID:      experiment.EmbedID,
		URL:          domain.EmbedURL(s.embedTemplate, experiment.EmbedID),
	}, nil
}
