package domain

// Role is the role of a platform user
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
)

// IsValid checks if the role is valid
func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleTeacher:
		return true
	}
	return false
}

// User represents a platform user.
// CompletedExperiments is meaningful for students, ManagedExperiments for teachers.
type User struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Role                 Role   `json:"role"`
	CompletedExperiments []int  `json:"completedExperiments,omitempty"`
	ManagedExperiments   []int  `json:"managedExperiments,omitempty"`
}

// UserInput represents input for creating a user.
// Password is required but never stored.
type UserInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     Role   `json:"role,omitempty" validate:"omitempty,oneof=student teacher"`
}

// UserPatch represents a partial update of a user
type UserPatch struct {
	Name                 *string `json:"name,omitempty"`
	Email                *string `json:"email,omitempty"`
	Role                 *Role   `json:"role,omitempty" validate:"omitempty,oneof=student teacher"`
	CompletedExperiments *[]int  `json:"completedExperiments,omitempty"`
	ManagedExperiments   *[]int  `json:"managedExperiments,omitempty"`
}

// Apply merges the patch over the user, field by field
func (p *UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.CompletedExperiments != nil {
		u.CompletedExperiments = cloneInts(*p.CompletedExperiments)
	}
	if p.ManagedExperiments != nil {
		u.ManagedExperiments = cloneInts(*p.ManagedExperiments)
	}
}

// UserSummary is the public projection used by list, create and delete
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// UserDetail is the projection used by get and update.
// Experiment lists are always present, empty when unset.
type UserDetail struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Role                 Role   `json:"role"`
	CompletedExperiments []int  `json:"completedExperiments"`
	ManagedExperiments   []int  `json:"managedExperiments"`
}

// Summary projects the user to its public fields
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}

// Detail projects the user including its experiment lists
func (u *User) Detail() UserDetail {
	d := UserDetail{
		ID:                   u.ID,
		Name:                 u.Name,
		Email:                u.Email,
		Role:                 u.Role,
		CompletedExperiments: cloneInts(u.CompletedExperiments),
		ManagedExperiments:   cloneInts(u.ManagedExperiments),
	}
	if d.CompletedExperiments == nil {
		d.CompletedExperiments = []int{}
	}
	if d.ManagedExperiments == nil {
		d.ManagedExperiments = []int{}
	}
	return d
}

// Clone returns a deep copy of the user
func (u *User) Clone() User {
	c := *u
	c.CompletedExperiments = cloneInts(u.CompletedExperiments)
	c.ManagedExperiments = cloneInts(u.ManagedExperiments)
	return c
}

func cloneInts(s []int) []int {
	if s == nil {
		return nil
	}
	out := make([]int, len(s))
	copy(out, s)
	return out
}
