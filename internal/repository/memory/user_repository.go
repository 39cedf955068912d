package memory

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/circuitlab/circuitlab/api/internal/domain"
	apperrors "github.com/circuitlab/circuitlab/api/internal/pkg/errors"
	"github.com/circuitlab/circuitlab/api/internal/pkg/metrics"
)

const userStore = "users"

// UserRepository is an in-memory user store kept in insertion order
type UserRepository struct {
	mu    sync.RWMutex
	items []domain.User
	ids   *idAllocator
}

// NewUserRepository creates a store holding the given seed records
func NewUserRepository(strategy IDStrategy, seed ...domain.User) *UserRepository {
	r := &UserRepository{
		items: make([]domain.User, 0, len(seed)),
		ids:   newIDAllocator(strategy),
	}
	for _, u := range seed {
		r.items = append(r.items, u.Clone())
		if n, err := strconv.Atoi(u.ID); err == nil {
			r.ids.observe(n)
		}
	}
	metrics.SetStoreRecords(userStore, len(r.items))
	return r
}

// List returns a copy of all users
func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	defer track(userStore, "list", time.Now(), nil)

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.User, len(r.items))
	for i := range r.items {
		out[i] = r.items[i].Clone()
	}
	return out, nil
}

// GetByID retrieves a user by id
func (r *UserRepository) GetByID(ctx context.Context, id string) (u *domain.User, err error) {
	defer func(start time.Time) { track(userStore, "get", start, err) }(time.Now())

	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, apperrors.NotFound("user")
	}
	found := r.items[i].Clone()
	return &found, nil
}

// Create assigns the next id to the user and appends it.
// Returns a conflict error when the email is already taken (exact match).
func (r *UserRepository) Create(ctx context.Context, u *domain.User) (err error) {
	defer func(start time.Time) { track(userStore, "create", start, err) }(time.Now())

	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].Email == u.Email {
			return apperrors.Conflict("user with this email already exists").WithDetail("email", u.Email)
		}
	}

	u.ID = strconv.Itoa(r.ids.next(len(r.items)))
	r.items = append(r.items, u.Clone())
	metrics.SetStoreRecords(userStore, len(r.items))
	return nil
}

// Update applies fn to a copy of the stored user and writes it back.
// The id is restored after fn runs; email uniqueness is not re-checked.
func (r *UserRepository) Update(ctx context.Context, id string, fn func(*domain.User) error) (u *domain.User, err error) {
	defer func(start time.Time) { track(userStore, "update", start, err) }(time.Now())

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, apperrors.NotFound("user")
	}

	updated := r.items[i].Clone()
	if err := fn(&updated); err != nil {
		return nil, err
	}
	updated.ID = id
	r.items[i] = updated.Clone()
	return &updated, nil
}

// Delete removes a user and returns it
func (r *UserRepository) Delete(ctx context.Context, id string) (u *domain.User, err error) {
	defer func(start time.Time) { track(userStore, "delete", start, err) }(time.Now())

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, apperrors.NotFound("user")
	}

	removed := r.items[i]
	r.items = append(r.items[:i], r.items[i+1:]...)
	metrics.SetStoreRecords(userStore, len(r.items))
	return &removed, nil
}

// Count returns the number of stored users
func (r *UserRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

func (r *UserRepository) indexOf(id string) int {
	for i := range r.items {
		if r.items[i].ID == id {
			return i
		}
	}
	return -1
}
