package service

import (
	"context"

	"github.com/circuitlab/circuitlab/api/internal/domain"
	"github.com/circuitlab/circuitlab/api/internal/validator"
)

// UserRepository defines user repository operations
type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, id string, fn func(*domain.User) error) (*domain.User, error)
	Delete(ctx context.Context, id string) (*domain.User, error)
}

// UserService handles platform users
type UserService struct {
	repo UserRepository
}

// NewUserService creates a new user service
func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

// List returns the public summaries of all users
func (s *UserService) List(ctx context.Context) ([]domain.UserSummary, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.UserSummary, len(users))
	for i := range users {
		summaries[i] = users[i].Summary()
	}
	return summaries, nil
}

// Get retrieves the detail view of a user
func (s *UserService) Get(ctx context.Context, id string) (*domain.UserDetail, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := user.Detail()
	return &detail, nil
}

// Create registers a user. The password is checked for presence and dropped.
func (s *UserService) Create(ctx context.Context, input *domain.UserInput) (*domain.UserSummary, error) {
	if err := validator.ValidateInput(input); err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = domain.RoleStudent
	}

	user := &domain.User{
		Name:  input.Name,
		Email: input.Email,
		Role:  role,
	}

	// the repository reports duplicate emails as conflicts
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	summary := user.Summary()
	return &summary, nil
}

// Update merges a partial update into a user and returns the detail view
func (s *UserService) Update(ctx context.Context, id string, patch *domain.UserPatch) (*domain.UserDetail, error) {
	if err := validator.ValidateInput(patch); err != nil {
		return nil, err
	}

	user, err := s.repo.Update(ctx, id, func(u *domain.User) error {
		patch.Apply(u)
		return nil
	})
	if err != nil {
		return nil, err
	}

	detail := user.Detail()
	return &detail, nil
}

// Delete removes a user and returns its summary
func (s *UserService) Delete(ctx context.Context, id string) (*domain.UserSummary, error) {
	user, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	summary := user.Summary()
	return &summary, nil
}
