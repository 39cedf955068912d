package domain

import (
	"bytes"
	"encoding/json"
	"time"
)

// ProgressRecord holds the completion state of one (user, experiment) pair.
//
// A record is Incomplete (completed=false, completedAt=null) or Complete
// (completed=true, completedAt set when the record became complete).
type ProgressRecord struct {
	ID           string     `json:"id"`
	UserID       string     `json:"userId"`
	ExperimentID int        `json:"experimentId"`
	Completed    bool       `json:"completed"`
	Score        float64    `json:"score"`
	TimeSpent    float64    `json:"timeSpent"`
	CompletedAt  *time.Time `json:"completedAt"`
}

// Clone returns a deep copy of the record
func (r *ProgressRecord) Clone() ProgressRecord {
	c := *r
	if r.CompletedAt != nil {
		t := *r.CompletedAt
		c.CompletedAt = &t
	}
	return c
}

// ProgressInput represents an upsert payload keyed by (UserID, ExperimentID).
// Absent fields leave an existing record untouched.
type ProgressInput struct {
	UserID       string       `json:"userId" validate:"required"`
	ExperimentID int          `json:"experimentId" validate:"required"`
	Completed    *bool        `json:"completed,omitempty"`
	Score        *float64     `json:"score,omitempty"`
	TimeSpent    *float64     `json:"timeSpent,omitempty"`
	CompletedAt  NullableTime `json:"completedAt,omitzero"`
}

// Apply merges the payload over an existing record.
// Marking a record complete stamps completedAt with now unless the record
// already has one or the payload sets it explicitly. Un-completing keeps
// completedAt; only an explicit "completedAt": null clears it.
func (in *ProgressInput) Apply(r *ProgressRecord, now time.Time) {
	if in.Completed != nil {
		r.Completed = *in.Completed
	}
	if in.Score != nil {
		r.Score = *in.Score
	}
	if in.TimeSpent != nil {
		r.TimeSpent = *in.TimeSpent
	}
	switch {
	case in.CompletedAt.Set:
		r.CompletedAt = in.CompletedAt.Ptr()
	case in.Completed != nil && *in.Completed && r.CompletedAt == nil:
		r.CompletedAt = &now
	}
}

// NewRecord builds a fresh record from the payload with defaults applied
func (in *ProgressInput) NewRecord(id string, now time.Time) ProgressRecord {
	r := ProgressRecord{
		ID:           id,
		UserID:       in.UserID,
		ExperimentID: in.ExperimentID,
	}
	in.Apply(&r, now)
	return r
}

// ProgressFilter represents filter options for listing progress records.
// Nil fields do not constrain the result.
type ProgressFilter struct {
	UserID       *string
	ExperimentID *int
}

// Matches reports whether the record satisfies every set constraint
func (f *ProgressFilter) Matches(r *ProgressRecord) bool {
	if f == nil {
		return true
	}
	if f.UserID != nil && r.UserID != *f.UserID {
		return false
	}
	if f.ExperimentID != nil && r.ExperimentID != *f.ExperimentID {
		return false
	}
	return true
}

// NullableTime distinguishes an absent JSON field from an explicit null
type NullableTime struct {
	Set   bool
	Value *time.Time
}

// UnmarshalJSON implements json.Unmarshaler. It only runs when the field is present.
func (n *NullableTime) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var t time.Time
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	n.Value = &t
	return nil
}

// MarshalJSON implements json.Marshaler
func (n NullableTime) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// Ptr returns a copy of the held time, nil when null
func (n NullableTime) Ptr() *time.Time {
	if n.Value == nil {
		return nil
	}
	t := *n.Value
	return &t
}

// NewNullableTime returns a set NullableTime holding t
func NewNullableTime(t time.Time) NullableTime {
	return NullableTime{Set: true, Value: &t}
}
