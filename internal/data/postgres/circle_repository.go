package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/investbuddy/circles-api/internal/domain/circle"
	"github.com/investbuddy/circles-api/internal/platform/persistence"
	"github.com/jackc/pgx/v5"
)

// CircleRepository implements the circle.Repository interface for PostgreSQL
type CircleRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewCircleRepository creates a new PostgreSQL circle repository
func NewCircleRepository(logger *slog.Logger, db *persistence.PostgresDB) circle.Repository {
	return &CircleRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx returns a repository bound to the given transaction
func (r *CircleRepository) WithTx(tx pgx.Tx) circle.Repository {
	return &CircleRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Create stores a new circle
func (r *CircleRepository) Create(ctx context.Context, c *circle.Circle) error {
	query := `
		INSERT INTO circles (id, name, owner_id, is_private, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.querier.Exec(ctx, query,
		c.ID,
		c.Name,
		c.OwnerID,
		c.IsPrivate,
		c.IsActive,
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create circle", "error", err)
		return fmt.Errorf("failed to create circle: %w", err)
	}

	return nil
}

// GetByID retrieves a circle by its ID
func (r *CircleRepository) GetByID(ctx context.Context, id uuid.UUID) (*circle.Circle, error) {
	query := `
		SELECT id, name, owner_id, is_private, is_active, created_at, updated_at
		FROM circles
		WHERE id = $1
	`

	var c circle.Circle
	err := r.querier.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.Name,
		&c.OwnerID,
		&c.IsPrivate,
		&c.IsActive,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, circle.ErrCircleNotFound{CircleID: id}
		}
		r.logger.Error("Failed to get circle", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get circle: %w", err)
	}

	return &c, nil
}

// AddMembers inserts the given member rows
func (r *CircleRepository) AddMembers(ctx context.Context, members []*circle.Member) error {
	query := `
		INSERT INTO circle_members (circle_id, user_id, role, is_active, joined_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	for _, m := range members {
		if _, err := r.querier.Exec(ctx, query, m.CircleID, m.UserID, m.Role, m.IsActive, m.JoinedAt); err != nil {
			r.logger.Error("Failed to add circle member", "circle_id", m.CircleID.String(), "user_id", m.UserID.String(), "error", err)
			return fmt.Errorf("failed to add circle member: %w", err)
		}
	}

	return nil
}
