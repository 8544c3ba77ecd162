package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/investbuddy/circles-api/internal/domain/contribution"
	"github.com/investbuddy/circles-api/internal/domain/goal"
	"github.com/investbuddy/circles-api/internal/domain/profile"
	"github.com/investbuddy/circles-api/internal/domain/transaction"
	"github.com/investbuddy/circles-api/internal/notify"
	"github.com/investbuddy/circles-api/internal/platform/persistence"
)

type contributionService struct {
	db               persistence.TxRunner
	profileRepo      profile.Repository
	goalRepo         goal.Repository
	contributionRepo contribution.Repository
	auditRepo        transaction.Repository
	events           EventPublisher
	log              *slog.Logger
}

// NewContributionService creates a new contribution service
func NewContributionService(
	db persistence.TxRunner,
	profileRepo profile.Repository,
	goalRepo goal.Repository,
	contributionRepo contribution.Repository,
	auditRepo transaction.Repository,
	events EventPublisher,
	log *slog.Logger,
) ContributionService {
	return &contributionService{
		db:               db,
		profileRepo:      profileRepo,
		goalRepo:         goalRepo,
		contributionRepo: contributionRepo,
		auditRepo:        auditRepo,
		events:           events,
		log:              log,
	}
}

func (s *contributionService) Contribute(ctx context.Context, cmd *ContributeCommand) error {
	if cmd.AmountCents <= 0 {
		return profile.ErrInvalidAmount
	}
	if cmd.SourceAccount != "" && !cmd.SourceAccount.Valid() {
		return profile.ErrInvalidAccount
	}

	// Pre-check the balance so an underfunded request reports the available
	// amount. The conditional debit inside the transaction still guards
	// against a concurrent spend between this read and the update.
	if cmd.SourceAccount != "" {
		p, err := s.profileRepo.GetByID(ctx, cmd.UserID)
		if err != nil {
			return err
		}
		if !p.CanDebit(cmd.SourceAccount, cmd.AmountCents) {
			return profile.ErrInsufficientFunds{
				Account:   cmd.SourceAccount,
				Available: p.Balance(cmd.SourceAccount),
			}
		}
	}

	contrib, err := contribution.New(cmd.GoalID, cmd.UserID, cmd.AmountCents, contributionNotes(cmd))
	if err != nil {
		return err
	}

	var progress *goal.Progress
	err = s.db.ExecuteTx(ctx, func(tx pgx.Tx) error {
		if cmd.SourceAccount != "" {
			if err := s.profileRepo.WithTx(tx).DebitBalance(ctx, cmd.UserID, cmd.SourceAccount, cmd.AmountCents); err != nil {
				return err
			}
		}
		if err := s.contributionRepo.WithTx(tx).Create(ctx, contrib); err != nil {
			return err
		}
		var txErr error
		progress, txErr = s.goalRepo.WithTx(tx).AddToTotal(ctx, cmd.GoalID, cmd.AmountCents)
		return txErr
	})
	if err != nil {
		return err
	}

	s.recordAudit(ctx, cmd)
	s.maybeAnnounceCompletion(ctx, cmd, progress)

	return nil
}

func contributionNotes(cmd *ContributeCommand) string {
	if cmd.InvestmentLabel == "" {
		return ""
	}
	return fmt.Sprintf("From %s", cmd.InvestmentLabel)
}

// recordAudit writes the audit trail entry. The contribution is already
// committed, so a failure here is logged and swallowed.
func (s *contributionService) recordAudit(ctx context.Context, cmd *ContributeCommand) {
	rec := transaction.NewContributionRecord(
		cmd.UserID,
		cmd.GoalID,
		cmd.AmountCents,
		cmd.SourceAccount,
		"Contribution to goal",
	)
	if err := s.auditRepo.Create(ctx, rec); err != nil {
		s.log.Warn("Failed to record audit transaction",
			"goal_id", cmd.GoalID,
			"user_id", cmd.UserID,
			"error", err)
	}
}

// maybeAnnounceCompletion publishes a goal_complete event when this
// contribution moved the total from below the target to at or above it.
// Later contributions to an already-complete goal stay quiet.
func (s *contributionService) maybeAnnounceCompletion(ctx context.Context, cmd *ContributeCommand, progress *goal.Progress) {
	previous := progress.CurrentCents - cmd.AmountCents
	if !goal.CrossedTarget(progress.TargetCents, previous, progress.CurrentCents) {
		return
	}

	event := notify.NewGoalComplete(cmd.GoalID.String(), progress.Title)
	if err := s.events.Publish(ctx, cmd.GoalID.String(), event); err != nil {
		s.log.Warn("Failed to publish goal completion event",
			"goal_id", cmd.GoalID,
			"error", err)
	}
}
