package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/investbuddy/circles-api/internal/domain/contribution"
	"github.com/investbuddy/circles-api/internal/platform/persistence"
	"github.com/jackc/pgx/v5"
)

// ContributionRepository implements the contribution.Repository interface for PostgreSQL
type ContributionRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewContributionRepository creates a new PostgreSQL contribution repository
func NewContributionRepository(logger *slog.Logger, db *persistence.PostgresDB) contribution.Repository {
	return &ContributionRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx returns a repository bound to the given transaction
func (r *ContributionRepository) WithTx(tx pgx.Tx) contribution.Repository {
	return &ContributionRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Create stores a new contribution row. Contributions are append-only; there
// is no update or delete counterpart.
func (r *ContributionRepository) Create(ctx context.Context, c *contribution.Contribution) error {
	query := `
		INSERT INTO contributions (id, goal_id, user_id, amount_cents, source, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.querier.Exec(ctx, query,
		c.ID,
		c.GoalID,
		c.UserID,
		c.AmountCents,
		c.Source,
		c.Notes,
		c.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create contribution", "goal_id", c.GoalID.String(), "error", err)
		return fmt.Errorf("failed to create contribution: %w", err)
	}

	return nil
}

// GetByGoalID retrieves paginated contributions for a goal, newest first
func (r *ContributionRepository) GetByGoalID(ctx context.Context, goalID uuid.UUID, limit, offset int) ([]*contribution.Contribution, error) {
	query := `
		SELECT id, goal_id, user_id, amount_cents, source, notes, created_at
		FROM contributions
		WHERE goal_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.querier.Query(ctx, query, goalID, limit, offset)
	if err != nil {
		r.logger.Error("Failed to get contributions", "goal_id", goalID.String(), "error", err)
		return nil, fmt.Errorf("failed to get contributions: %w", err)
	}
	defer rows.Close()

	var contributions []*contribution.Contribution
	for rows.Next() {
		var c contribution.Contribution
		if err := rows.Scan(&c.ID, &c.GoalID, &c.UserID, &c.AmountCents, &c.Source, &c.Notes, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan contribution: %w", err)
		}
		contributions = append(contributions, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to get contributions: %w", err)
	}

	return contributions, nil
}

// CountByGoalID counts the total number of contributions toward a goal
func (r *ContributionRepository) CountByGoalID(ctx context.Context, goalID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM contributions WHERE goal_id = $1`

	var count int64
	if err := r.querier.QueryRow(ctx, query, goalID).Scan(&count); err != nil {
		r.logger.Error("Failed to count contributions", "goal_id", goalID.String(), "error", err)
		return 0, fmt.Errorf("failed to count contributions: %w", err)
	}

	return count, nil
}
