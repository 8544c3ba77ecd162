package contribution

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidAmount = errors.New("contribution amount must be positive")

// Source defines where a contribution originated
type Source string

const (
	SourceManual    Source = "manual"
	SourceScheduled Source = "scheduled"
)

// Contribution is a single user's monetary addition toward a goal. A
// contribution is born complete and is append-only: it is never mutated or
// deleted by any flow.
type Contribution struct {
	ID          uuid.UUID `json:"id"`
	GoalID      uuid.UUID `json:"goal_id"`
	UserID      uuid.UUID `json:"user_id"`
	AmountCents int64     `json:"amount_cents"`
	Source      Source    `json:"source"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// New creates a contribution record. Amount is in cents and must be positive.
func New(goalID, userID uuid.UUID, amountCents int64, notes string) (*Contribution, error) {
	if amountCents <= 0 {
		return nil, ErrInvalidAmount
	}

	return &Contribution{
		ID:          uuid.New(),
		GoalID:      goalID,
		UserID:      userID,
		AmountCents: amountCents,
		Source:      SourceManual,
		Notes:       notes,
		CreatedAt:   time.Now(),
	}, nil
}
