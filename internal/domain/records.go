// Package domain defines the business logic for the exercise tracker.
package domain

import (
	"context"
	"time"
)

// User is a registered account exercises are recorded against.
type User struct {
	ID       string
	Username string
}

// Exercise is a single recorded workout entry. UserID is a soft
// reference: it is checked by lookup when the exercise is created, not
// enforced by the store afterwards.
type Exercise struct {
	ID          string
	UserID      string
	Description string
	Duration    float64
	Date        time.Time
}

// UserRepository captures persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user User) error
	FindByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context) ([]User, error)
}

// ExerciseRepository captures persistence operations for exercises.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise Exercise) error
	ListByUser(ctx context.Context, userID string) ([]Exercise, error)
}

// DateLayout is the wire format for calendar dates in responses.
const DateLayout = "2006-01-02"

var dateLayouts = []string{DateLayout, time.RFC3339, time.RFC3339Nano}

// ParseDate interprets a caller-supplied date string. Comparison and
// sorting always go through the parsed time, never the raw string.
func ParseDate(raw string) (time.Time, error) {
	var err error
	for _, layout := range dateLayouts {
		var ts time.Time
		if ts, err = time.Parse(layout, raw); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, err
}
