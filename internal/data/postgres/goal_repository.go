package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/investbuddy/circles-api/internal/domain/goal"
	"github.com/investbuddy/circles-api/internal/platform/persistence"
	"github.com/jackc/pgx/v5"
)

const goalColumns = "id, circle_id, created_by, title, description, target_amount_cents, current_amount_cents, portfolio, contribution_per_period_cents, contribution_frequency, withdrawal_account, status, target_date, created_at, updated_at"

// GoalRepository implements the goal.Repository interface for PostgreSQL
type GoalRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewGoalRepository creates a new PostgreSQL goal repository
func NewGoalRepository(logger *slog.Logger, db *persistence.PostgresDB) goal.Repository {
	return &GoalRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx returns a repository bound to the given transaction
func (r *GoalRepository) WithTx(tx pgx.Tx) goal.Repository {
	return &GoalRepository{
		querier: tx,
		logger:  r.logger,
	}
}

func scanGoal(row pgx.Row) (*goal.Goal, error) {
	var g goal.Goal
	err := row.Scan(
		&g.ID,
		&g.CircleID,
		&g.CreatedBy,
		&g.Title,
		&g.Description,
		&g.TargetCents,
		&g.CurrentCents,
		&g.Portfolio,
		&g.ContributionCents,
		&g.ContributionFrequency,
		&g.WithdrawalAccount,
		&g.Status,
		&g.TargetDate,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// Create stores a new goal
func (r *GoalRepository) Create(ctx context.Context, g *goal.Goal) error {
	query := `
		INSERT INTO goals (id, circle_id, created_by, title, description, target_amount_cents, current_amount_cents, portfolio, contribution_per_period_cents, contribution_frequency, withdrawal_account, status, target_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.querier.Exec(ctx, query,
		g.ID,
		g.CircleID,
		g.CreatedBy,
		g.Title,
		g.Description,
		g.TargetCents,
		g.CurrentCents,
		g.Portfolio,
		g.ContributionCents,
		g.ContributionFrequency,
		g.WithdrawalAccount,
		g.Status,
		g.TargetDate,
		g.CreatedAt,
		g.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create goal", "error", err)
		return fmt.Errorf("failed to create goal: %w", err)
	}

	return nil
}

// GetByID retrieves a goal by its ID
func (r *GoalRepository) GetByID(ctx context.Context, id uuid.UUID) (*goal.Goal, error) {
	query := `
		SELECT ` + goalColumns + `
		FROM goals
		WHERE id = $1
	`

	g, err := scanGoal(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, goal.ErrGoalNotFound{GoalID: id}
		}
		r.logger.Error("Failed to get goal", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}

	return g, nil
}

// List retrieves goals ordered by creation time, newest first
func (r *GoalRepository) List(ctx context.Context, limit, offset int) ([]*goal.Goal, error) {
	query := `
		SELECT ` + goalColumns + `
		FROM goals
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.querier.Query(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list goals", "error", err)
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	defer rows.Close()

	var goals []*goal.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}

	return goals, nil
}

// AddToTotal atomically increments the goal's running total and returns the
// state produced by that single statement. The caller derives the previous
// total as current - amount, so crossing detection never needs a second read.
func (r *GoalRepository) AddToTotal(ctx context.Context, id uuid.UUID, amount int64) (*goal.Progress, error) {
	query := `
		UPDATE goals
		SET current_amount_cents = current_amount_cents + $1, updated_at = NOW()
		WHERE id = $2
		RETURNING title, target_amount_cents, current_amount_cents
	`

	var p goal.Progress
	err := r.querier.QueryRow(ctx, query, amount, id).Scan(&p.Title, &p.TargetCents, &p.CurrentCents)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, goal.ErrGoalNotFound{GoalID: id}
		}
		r.logger.Error("Failed to update goal total", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to update goal total: %w", err)
	}

	return &p, nil
}
