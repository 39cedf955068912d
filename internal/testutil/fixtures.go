package testutil

import (
	"github.com/circuitlab/circuitlab/api/internal/domain"
	"github.com/circuitlab/circuitlab/api/internal/repository/memory"
)

// Stores groups fresh in-memory repositories for one test
type Stores struct {
	Experiments *memory.ExperimentRepository
	Users       *memory.UserRepository
	Progress    *memory.ProgressRepository
}

// NewSeededStores returns repositories loaded with the demo seed data
func NewSeededStores() *Stores {
	return &Stores{
		Experiments: memory.NewExperimentRepository(memory.IDSequence, memory.SeedExperiments()...),
		Users:       memory.NewUserRepository(memory.IDSequence, memory.SeedUsers()...),
		Progress:    memory.NewProgressRepository(memory.IDSequence, memory.SeedProgress()...),
	}
}

// NewEmptyStores returns repositories with no records
func NewEmptyStores() *Stores {
	return &Stores{
		Experiments: memory.NewExperimentRepository(memory.IDSequence),
		Users:       memory.NewUserRepository(memory.IDSequence),
		Progress:    memory.NewProgressRepository(memory.IDSequence),
	}
}

// NewTestExperimentInput creates an experiment payload with required fields set
func NewTestExperimentInput() *domain.ExperimentInput {
	return &domain.ExperimentInput{
		Title:       "Ohm's Law",
		Description: "Measure current through a resistor at several voltages.",
	}
}

// NewTestUserInput creates a student registration payload
func NewTestUserInput(email string) *domain.UserInput {
	return &domain.UserInput{
		Name:     "Test Student",
		Email:    email,
		Password: "circuit-pass",
	}
}

// NewTestProgressInput creates an upsert payload for the pair
func NewTestProgressInput(userID string, experimentID int) *domain.ProgressInput {
	return &domain.ProgressInput{
		UserID:       userID,
		ExperimentID: experimentID,
	}
}
