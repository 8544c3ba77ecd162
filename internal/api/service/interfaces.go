package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/investbuddy/circles-api/internal/domain/contribution"
	"github.com/investbuddy/circles-api/internal/domain/goal"
	"github.com/investbuddy/circles-api/internal/domain/profile"
	"github.com/investbuddy/circles-api/internal/domain/shared"
	"github.com/investbuddy/circles-api/internal/domain/transaction"
)

// ErrUnauthenticated indicates no user could be resolved for the request:
// the identity header was absent or malformed and the development fallback
// was disabled or found no profile.
var ErrUnauthenticated = errors.New("no user could be resolved")

// ContributeCommand carries one contribution request through the pipeline.
// AmountCents is already converted from the client's decimal dollars. An
// empty SourceAccount means the contribution does not debit a balance.
type ContributeCommand struct {
	GoalID          uuid.UUID
	UserID          uuid.UUID
	AmountCents     int64
	SourceAccount   shared.AccountKind
	InvestmentLabel string
}

// ContributionService runs the goal-contribution pipeline
type ContributionService interface {
	// Contribute validates the request, debits the source account, records
	// the contribution, updates the goal total, writes an audit record, and
	// announces target crossings. Validation errors and store failures in
	// the transactional steps are returned; audit and notification failures
	// never are.
	Contribute(ctx context.Context, cmd *ContributeCommand) error
}

// CreateGoalCommand carries the goal creation form: the goal itself plus the
// private circle that will own it and the invited members.
type CreateGoalCommand struct {
	Name              string
	CreatedBy         uuid.UUID
	TargetCents       int64
	Portfolio         string
	ContributionCents int64
	Frequency         string
	WithdrawalAccount shared.AccountKind
	DurationMonths    int
	FriendIDs         []uuid.UUID
}

// GoalService defines goal and circle operations
type GoalService interface {
	// CreateGoal creates the circle, the goal, and the member rows in a
	// single atomic unit
	CreateGoal(ctx context.Context, cmd *CreateGoalCommand) (*goal.Goal, error)

	// GetGoalByID retrieves a goal and its most recent contributions
	GetGoalByID(ctx context.Context, id uuid.UUID) (*goal.Goal, []*contribution.Contribution, error)

	// ListGoals retrieves a paginated list of goals, newest first
	ListGoals(ctx context.Context, page, perPage int) ([]*goal.Goal, error)
}

// ProfileService defines profile and user resolution operations
type ProfileService interface {
	// ResolveUser maps the identity header value to a profile ID. An empty
	// value falls back to an arbitrary existing profile when the development
	// fallback is enabled; otherwise ErrUnauthenticated is returned.
	ResolveUser(ctx context.Context, headerValue string) (uuid.UUID, error)

	// GetProfileByID retrieves a profile by its ID
	GetProfileByID(ctx context.Context, id uuid.UUID) (*profile.Profile, error)

	// ListProfiles retrieves profiles with their balances
	ListProfiles(ctx context.Context) ([]*profile.Profile, error)

	// GetAuditHistory retrieves a paginated audit trail for a user.
	// Returns records, total count, and any error.
	GetAuditHistory(ctx context.Context, userID uuid.UUID, page, perPage int) ([]*transaction.Record, int64, error)
}

// EventPublisher is the notification seam used by services. It matches
// notify.Publisher; redeclared here so service tests can mock it without
// importing the transport packages.
type EventPublisher interface {
	Publish(ctx context.Context, key string, event interface{}) error
	Close() error
}
