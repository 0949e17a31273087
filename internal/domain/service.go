package domain

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/Rhman101/fcc0404/internal/observability"
)

// Service orchestrates the tracker workflows on top of the repositories.
type Service struct {
	users     UserRepository
	exercises ExerciseRepository
	now       func() time.Time
}

// NewService constructs a Service.
func NewService(users UserRepository, exercises ExerciseRepository) *Service {
	return &Service{users: users, exercises: exercises, now: time.Now}
}

// CreateUser registers a username and returns the stored record.
func (s *Service) CreateUser(ctx context.Context, username string) (*User, error) {
	if username == "" {
		return nil, Validation("Please add a username.")
	}

	user := User{
		ID:       uuid.NewString(),
		Username: username,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	observability.RecordUserCreated()
	return &user, nil
}

// ListUsers returns every registered user.
func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	return s.users.List(ctx)
}

// AddExerciseInput captures the payload from the API layer. A nil Date
// means the caller supplied none and the call time is used.
type AddExerciseInput struct {
	UserID      string
	Description string
	Duration    float64
	Date        *time.Time
}

// AddExercise records an exercise against an existing user. An unknown
// user id stops the operation before anything is persisted.
func (s *Service) AddExercise(ctx context.Context, input AddExerciseInput) (*User, *Exercise, error) {
	user, err := s.users.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, NotFound("Invalid UserId.")
	}

	date := s.now().UTC()
	if input.Date != nil {
		date = input.Date.UTC()
	}

	exercise := Exercise{
		ID:          uuid.NewString(),
		UserID:      user.ID,
		Description: input.Description,
		Duration:    input.Duration,
		Date:        date,
	}
	if err := s.exercises.Create(ctx, exercise); err != nil {
		return nil, nil, err
	}

	observability.RecordExerciseCreated()
	return user, &exercise, nil
}

// LogQuery carries the optional filters of the log endpoint. Nil fields
// were absent from the request.
type LogQuery struct {
	From  *time.Time
	To    *time.Time
	Limit *int
}

// ExerciseLog returns the user's exercises filtered by the query:
// strictly after From, strictly before To, sorted ascending by date
// (stable for equal dates), truncated to Limit entries after sorting.
func (s *Service) ExerciseLog(ctx context.Context, userID string, query LogQuery) (*User, []Exercise, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, NotFound("Invalid UserId.")
	}

	exercises, err := s.exercises.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	if query.From != nil {
		exercises = filterExercises(exercises, func(e Exercise) bool {
			return e.Date.After(*query.From)
		})
	}
	if query.To != nil {
		exercises = filterExercises(exercises, func(e Exercise) bool {
			return e.Date.Before(*query.To)
		})
	}

	sort.SliceStable(exercises, func(i, j int) bool {
		return exercises[i].Date.Before(exercises[j].Date)
	})

	if query.Limit != nil && len(exercises) > *query.Limit {
		exercises = exercises[:*query.Limit]
	}

	return user, exercises, nil
}

func filterExercises(exercises []Exercise, keep func(Exercise) bool) []Exercise {
	out := exercises[:0]
	for _, e := range exercises {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}
