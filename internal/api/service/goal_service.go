package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/investbuddy/circles-api/internal/domain/circle"
	"github.com/investbuddy/circles-api/internal/domain/contribution"
	"github.com/investbuddy/circles-api/internal/domain/goal"
	"github.com/investbuddy/circles-api/internal/platform/persistence"
)

const recentContributions = 20

type goalService struct {
	db               persistence.TxRunner
	circleRepo       circle.Repository
	goalRepo         goal.Repository
	contributionRepo contribution.Repository
	log              *slog.Logger
}

// NewGoalService creates a new goal service
func NewGoalService(
	db persistence.TxRunner,
	circleRepo circle.Repository,
	goalRepo goal.Repository,
	contributionRepo contribution.Repository,
	log *slog.Logger,
) GoalService {
	return &goalService{
		db:               db,
		circleRepo:       circleRepo,
		goalRepo:         goalRepo,
		contributionRepo: contributionRepo,
		log:              log,
	}
}

// CreateGoal provisions the circle that owns the goal, the goal itself, and
// the membership rows for the creator and every invited friend, all in one
// transaction. A failure on any row leaves nothing behind.
func (s *goalService) CreateGoal(ctx context.Context, cmd *CreateGoalCommand) (*goal.Goal, error) {
	c, err := circle.NewCircle(cmd.Name, cmd.CreatedBy)
	if err != nil {
		return nil, err
	}

	g, err := goal.NewGoal(c.ID, cmd.CreatedBy, cmd.Name, cmd.TargetCents)
	if err != nil {
		return nil, err
	}
	g.Portfolio = cmd.Portfolio
	g.ContributionCents = cmd.ContributionCents
	g.ContributionFrequency = cmd.Frequency
	g.WithdrawalAccount = cmd.WithdrawalAccount
	if cmd.DurationMonths > 0 {
		target := time.Now().UTC().AddDate(0, cmd.DurationMonths, 0)
		g.TargetDate = &target
	}

	members := circle.NewMembers(c.ID, cmd.CreatedBy, cmd.FriendIDs)

	err = s.db.ExecuteTx(ctx, func(tx pgx.Tx) error {
		if err := s.circleRepo.WithTx(tx).Create(ctx, c); err != nil {
			return err
		}
		if err := s.goalRepo.WithTx(tx).Create(ctx, g); err != nil {
			return err
		}
		return s.circleRepo.WithTx(tx).AddMembers(ctx, members)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Goal created",
		"goal_id", g.ID,
		"circle_id", c.ID,
		"members", len(members))

	return g, nil
}

func (s *goalService) GetGoalByID(ctx context.Context, id uuid.UUID) (*goal.Goal, []*contribution.Contribution, error) {
	g, err := s.goalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	contribs, err := s.contributionRepo.GetByGoalID(ctx, id, recentContributions, 0)
	if err != nil {
		return nil, nil, err
	}

	return g, contribs, nil
}

func (s *goalService) ListGoals(ctx context.Context, page, perPage int) ([]*goal.Goal, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	offset := (page - 1) * perPage
	return s.goalRepo.List(ctx, perPage, offset)
}
