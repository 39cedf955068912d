package domain

import "strings"

// Experiment is a catalogue entry describing one simulated lab exercise
type Experiment struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	EmbedID       string `json:"embedId"`
	Aim           string `json:"aim"`
	Completed     int    `json:"completed"`
	TotalStudents int    `json:"totalStudents"`
}

// ExperimentInput represents input for creating an experiment
type ExperimentInput struct {
	Title         string `json:"title" validate:"required"`
	Description   string `json:"description" validate:"required"`
	EmbedID       string `json:"embedId,omitempty"`
	Aim           string `json:"aim,omitempty"`
	Completed     int    `json:"completed,omitempty"`
	TotalStudents int    `json:"totalStudents,omitempty"`
}

// ExperimentPatch represents a partial update of an experiment
type ExperimentPatch struct {
	Title         *string `json:"title,omitempty"`
	Description   *string `json:"description,omitempty"`
	EmbedID       *string `json:"embedId,omitempty"`
	Aim           *string `json:"aim,omitempty"`
	Completed     *int    `json:"completed,omitempty"`
	TotalStudents *int    `json:"totalStudents,omitempty"`
}

// Apply merges the patch over the experiment, field by field
func (p *ExperimentPatch) Apply(e *Experiment) {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.EmbedID != nil {
		e.EmbedID = *p.EmbedID
	}
	if p.Aim != nil {
		e.Aim = *p.Aim
	}
	if p.Completed != nil {
		e.Completed = *p.Completed
	}
	if p.TotalStudents != nil {
		e.TotalStudents = *p.TotalStudents
	}
}

// EmbedPlaceholder is replaced by the embed id in simulator URL templates
const EmbedPlaceholder = "{embedId}"

// DefaultEmbedURLTemplate points at the third-party circuit simulator
const DefaultEmbedURLTemplate = "https://www.tinkercad.com/embed/{embedId}?editbtn=1"

// ExperimentEmbed describes the simulator iframe of an experiment
type ExperimentEmbed struct {
	ExperimentID int    `json:"experimentId"`
	EmbedID      string `json:"embedId"`
	URL          string `json:"url"`
}

// EmbedURL builds the simulator iframe URL for an embed id.
// The embed id is opaque; it is inserted verbatim.
func EmbedURL(template, embedID string) string {
	return strings.ReplaceAll(template, EmbedPlaceholder, embedID)
}
