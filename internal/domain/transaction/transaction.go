package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/investbuddy/circles-api/internal/domain/shared"
)

// Type defines audit record categories
type Type string

const (
	TypeContribution Type = "contribution"
	TypeTransfer     Type = "transfer"
)

// ToGoal is the destination label used when money moves into a goal total.
const ToGoal = "goal"

// Record is an audit log entry describing a money movement. Records are
// best-effort telemetry: a missing record for a given contribution is
// legitimate, and writes must never fail the flow that produced them.
type Record struct {
	ID          uuid.UUID `json:"id" bson:"id"`
	UserID      uuid.UUID `json:"user_id" bson:"user_id"`
	GoalID      uuid.UUID `json:"goal_id" bson:"goal_id"`
	Type        Type      `json:"type" bson:"type"`
	AmountCents int64     `json:"amount_cents" bson:"amount_cents"`
	FromAccount string    `json:"from_account" bson:"from_account"`
	ToAccount   string    `json:"to_account" bson:"to_account"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// NewContributionRecord builds the audit record for a goal contribution.
// When no source account was specified the original client attributed the
// movement to chequing; that attribution is kept.
func NewContributionRecord(userID, goalID uuid.UUID, amountCents int64, from shared.AccountKind, description string) *Record {
	if from == "" {
		from = shared.AccountChequing
	}

	return &Record{
		ID:          uuid.New(),
		UserID:      userID,
		GoalID:      goalID,
		Type:        TypeContribution,
		AmountCents: amountCents,
		FromAccount: string(from),
		ToAccount:   ToGoal,
		Description: description,
		CreatedAt:   time.Now(),
	}
}
