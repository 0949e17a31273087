// Package memory stores tracker records in process memory for local
// development and tests.
package memory

import (
	"context"
	"sync"

	"github.com/Rhman101/fcc0404/internal/domain"
)

// UserRepository keeps users in a map guarded by an RWMutex; the HTTP
// server handles requests concurrently.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]domain.User
	order []string
	names map[string]struct{}
}

// NewUserRepository constructs an empty UserRepository.
func NewUserRepository() *UserRepository {
	return &UserRepository{
		users: make(map[string]domain.User),
		names: make(map[string]struct{}),
	}
}

// Create stores the user, enforcing username uniqueness.
func (r *UserRepository) Create(ctx context.Context, user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.names[user.Username]; taken {
		return domain.Validation("username already exists")
	}

	r.users[user.ID] = user
	r.order = append(r.order, user.ID)
	r.names[user.Username] = struct{}{}
	return nil
}

// FindByID returns the user or nil when the id is unknown.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

// List returns all users in creation order.
func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.User, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.users[id])
	}
	return out, nil
}

// ExerciseRepository keeps exercises grouped by owning user id.
type ExerciseRepository struct {
	mu        sync.RWMutex
	exercises map[string][]domain.Exercise
}

// NewExerciseRepository constructs an empty ExerciseRepository.
func NewExerciseRepository() *ExerciseRepository {
	return &ExerciseRepository{exercises: make(map[string][]domain.Exercise)}
}

// Create appends the exercise to its user's log.
func (r *ExerciseRepository) Create(ctx context.Context, exercise domain.Exercise) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.exercises[exercise.UserID] = append(r.exercises[exercise.UserID], exercise)
	return nil
}

// ListByUser returns a copy of the user's exercises in insertion order.
func (r *ExerciseRepository) ListByUser(ctx context.Context, userID string) ([]domain.Exercise, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.exercises[userID]
	out := make([]domain.Exercise, len(stored))
	copy(out, stored)
	return out, nil
}
