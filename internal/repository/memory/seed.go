package memory

import (
	"time"

	"github.com/circuitlab/circuitlab/api/internal/domain"
)

// SeedExperiments returns the lab catalogue loaded at start-up
func SeedExperiments() []domain.Experiment {
	return []domain.Experiment{
		{
			ID:            1,
			Title:         "Voltage Divider",
			Description:   "Build a two-resistor divider and compare the measured output voltage with the calculated ratio.",
			EmbedID:       "3bmCuDXyNw5",
			Aim:           "To verify the voltage divider rule for series resistors.",
			Completed:     18,
			TotalStudents: 30,
		},
		{
			ID:            2,
			Title:         "Kirchhoff's Voltage and Current Laws",
			Description:   "Measure branch currents and loop voltages in a two-loop resistive network.",
			EmbedID:       "a5Jgk0T8QeB",
			Aim:           "To verify KVL and KCL in a multi-loop circuit.",
			Completed:     12,
			TotalStudents: 30,
		},
		{
			ID:            3,
			Title:         "RC Circuit Charging",
			Description:   "Observe the capacitor voltage while charging through a resistor and extract the time constant.",
			EmbedID:       "fHq2LwX9rZc",
			Aim:           "To determine the time constant of an RC circuit.",
			Completed:     9,
			TotalStudents: 28,
		},
		{
			ID:            4,
			Title:         "RL Circuit Transient",
			Description:   "Switch a DC source into a series RL circuit and record the inductor current rise.",
			EmbedID:       "kP7nVd3sYtM",
			Aim:           "To study the transient response of a series RL circuit.",
			Completed:     6,
			TotalStudents: 28,
		},
		{
			ID:            5,
			Title:         "Series RLC Resonance",
			Description:   "Sweep the source frequency across a series RLC circuit and locate the resonant peak.",
			EmbedID:       "Wc4eZr1uHoJ",
			Aim:           "To find the resonant frequency and bandwidth of a series RLC circuit.",
			Completed:     4,
			TotalStudents: 25,
		},
		{
			ID:            6,
			Title:         "Half-Wave Rectifier",
			Description:   "Rectify a sinusoidal input with a single diode and observe the output with and without a filter capacitor.",
			EmbedID:       "Nx8bQm2LaGs",
			Aim:           "To study half-wave rectification and ripple reduction.",
			Completed:     2,
			TotalStudents: 25,
		},
	}
}

// SeedUsers returns the demo users loaded at start-up
func SeedUsers() []domain.User {
	return []domain.User{
		{
			ID:                   "1",
			Name:                 "Asha Verma",
			Email:                "asha@student.circuitlab.dev",
			Role:                 domain.RoleStudent,
			CompletedExperiments: []int{1, 3},
		},
		{
			ID:                 "2",
			Name:               "Dr. Rahul Mehta",
			Email:              "rahul@faculty.circuitlab.dev",
			Role:               domain.RoleTeacher,
			ManagedExperiments: []int{1, 2, 3, 4, 5, 6},
		},
		{
			ID:                   "3",
			Name:                 "Kiran Rao",
			Email:                "kiran@student.circuitlab.dev",
			Role:                 domain.RoleStudent,
			CompletedExperiments: []int{1},
		},
	}
}

// SeedProgress returns the demo progress records loaded at start-up
func SeedProgress() []domain.ProgressRecord {
	at := func(s string) *time.Time {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			panic(err)
		}
		return &t
	}
	return []domain.ProgressRecord{
		{
			ID:           "1",
			UserID:       "1",
			ExperimentID: 1,
			Completed:    true,
			Score:        85,
			TimeSpent:    45,
			CompletedAt:  at("2024-01-15T10:30:00Z"),
		},
		{
			ID:           "2",
			UserID:       "1",
			ExperimentID: 2,
			Completed:    false,
			Score:        0,
			TimeSpent:    20,
		},
		{
			ID:           "3",
			UserID:       "3",
			ExperimentID: 1,
			Completed:    true,
			Score:        92,
			TimeSpent:    38,
			CompletedAt:  at("2024-01-16T14:05:00Z"),
		},
	}
}
