// Package postgres provides pgx-backed persistence for tracker records.
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Rhman101/fcc0404/internal/domain"
)

const uniqueViolation = "23505"

// UserRepository persists users in the users table.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository constructs a UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create inserts the user. The unique index on username surfaces a
// duplicate as a validation error.
func (r *UserRepository) Create(ctx context.Context, user domain.User) error {
	const stmt = `INSERT INTO users (user_id, username) VALUES ($1, $2)`

	if _, err := r.pool.Exec(ctx, stmt, user.ID, user.Username); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.Validation("username already exists")
		}
		return domain.Internal(err)
	}
	return nil
}

// FindByID returns the user or nil when the id is unknown.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `SELECT user_id, username FROM users WHERE user_id = $1`

	var user domain.User
	if err := r.pool.QueryRow(ctx, query, id).Scan(&user.ID, &user.Username); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.Internal(err)
	}
	return &user, nil
}

// List returns all users in creation order.
func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	const query = `SELECT user_id, username FROM users ORDER BY created_at, user_id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, domain.Internal(err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(&user.ID, &user.Username); err != nil {
			return nil, domain.Internal(err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err)
	}
	return users, nil
}

// ExerciseRepository persists exercises in the exercises table.
type ExerciseRepository struct {
	pool *pgxpool.Pool
}

// NewExerciseRepository constructs an ExerciseRepository.
func NewExerciseRepository(pool *pgxpool.Pool) *ExerciseRepository {
	return &ExerciseRepository{pool: pool}
}

// Create inserts the exercise.
func (r *ExerciseRepository) Create(ctx context.Context, exercise domain.Exercise) error {
	const stmt = `INSERT INTO exercises (exercise_id, user_id, description, duration_min, exercised_at)
        VALUES ($1, $2, $3, $4, $5)`

	_, err := r.pool.Exec(ctx, stmt,
		exercise.ID,
		exercise.UserID,
		exercise.Description,
		exercise.Duration,
		exercise.Date,
	)
	if err != nil {
		return domain.Internal(err)
	}
	return nil
}

// ListByUser returns the user's exercises in insertion order. Filtering
// and sorting happen in the domain layer on the full result set.
func (r *ExerciseRepository) ListByUser(ctx context.Context, userID string) ([]domain.Exercise, error) {
	const query = `SELECT exercise_id, user_id, description, duration_min, exercised_at
        FROM exercises WHERE user_id = $1 ORDER BY created_at, exercise_id`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, domain.Internal(err)
	}
	defer rows.Close()

	var exercises []domain.Exercise
	for rows.Next() {
		var exercise domain.Exercise
		if err := rows.Scan(&exercise.ID, &exercise.UserID, &exercise.Description, &exercise.Duration, &exercise.Date); err != nil {
			return nil, domain.Internal(err)
		}
		exercises = append(exercises, exercise)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err)
	}
	return exercises, nil
}
