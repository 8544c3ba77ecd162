package goal

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Repository defines goal persistence operations
type Repository interface {
	Create(ctx context.Context, g *Goal) error
	GetByID(ctx context.Context, id uuid.UUID) (*Goal, error)
	List(ctx context.Context, limit, offset int) ([]*Goal, error)

	// AddToTotal atomically increments the goal's running total by amount
	// cents and returns the state observed by that single update, so
	// target-crossing detection can be evaluated exactly once per request
	// from locally known before/after values.
	AddToTotal(ctx context.Context, id uuid.UUID, amount int64) (*Progress, error)

	WithTx(tx pgx.Tx) Repository
}

// ErrGoalNotFound indicates a missing goal
type ErrGoalNotFound struct {
	GoalID uuid.UUID
}

func (e ErrGoalNotFound) Error() string {
	return "goal not found: " + e.GoalID.String()
}

// Is implements errors.Is matching; a target with a nil ID matches any
// ErrGoalNotFound.
func (e ErrGoalNotFound) Is(target error) bool {
	t, ok := target.(ErrGoalNotFound)
	if !ok {
		return false
	}
	if t.GoalID == uuid.Nil {
		return true
	}
	return e.GoalID == t.GoalID
}
