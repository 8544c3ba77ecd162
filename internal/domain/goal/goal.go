package goal

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/investbuddy/circles-api/internal/domain/shared"
)

// Common errors
var (
	ErrEmptyTitle    = errors.New("goal title cannot be empty")
	ErrInvalidTarget = errors.New("goal target must be positive")
)

// Status defines goal lifecycle states
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusArchived  Status = "archived"
)

// Goal is a shared savings target owned by a circle. CurrentCents is the
// running sum of all contributions and only ever moves through the atomic
// increment in the repository.
type Goal struct {
	ID                    uuid.UUID          `json:"id"`
	CircleID              uuid.UUID          `json:"circle_id"`
	CreatedBy             uuid.UUID          `json:"created_by"`
	Title                 string             `json:"title"`
	Description           string             `json:"description,omitempty"`
	TargetCents           int64              `json:"target_amount_cents"`
	CurrentCents          int64              `json:"current_amount_cents"`
	Portfolio             string             `json:"portfolio,omitempty"`
	ContributionCents     int64              `json:"contribution_per_period_cents,omitempty"`
	ContributionFrequency string             `json:"contribution_frequency,omitempty"`
	WithdrawalAccount     shared.AccountKind `json:"withdrawal_account,omitempty"`
	Status                Status             `json:"status"`
	TargetDate            *time.Time         `json:"target_date,omitempty"`
	CreatedAt             time.Time          `json:"created_at"`
	UpdatedAt             time.Time          `json:"updated_at"`
}

// NewGoal creates a goal in its initial state with a zero running total.
func NewGoal(circleID, createdBy uuid.UUID, title string, targetCents int64) (*Goal, error) {
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if targetCents <= 0 {
		return nil, ErrInvalidTarget
	}

	now := time.Now()
	return &Goal{
		ID:           uuid.New(),
		CircleID:     circleID,
		CreatedBy:    createdBy,
		Title:        title,
		TargetCents:  targetCents,
		CurrentCents: 0,
		Status:       StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// Progress is the goal state observed by a single total update: the title
// plus the target and the running total immediately after the increment.
type Progress struct {
	Title        string
	TargetCents  int64
	CurrentCents int64
}

// CrossedTarget reports whether a total update moved the goal from below its
// target to at or above it. Goals without a configured target never cross,
// and a goal that starts and ends above target does not re-cross.
func CrossedTarget(target, previous, current int64) bool {
	return target > 0 && previous < target && current >= target
}
