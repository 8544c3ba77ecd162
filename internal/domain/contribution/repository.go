package contribution

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Repository defines contribution persistence operations
type Repository interface {
	Create(ctx context.Context, c *Contribution) error
	GetByGoalID(ctx context.Context, goalID uuid.UUID, limit, offset int) ([]*Contribution, error)
	CountByGoalID(ctx context.Context, goalID uuid.UUID) (int64, error)
	WithTx(tx pgx.Tx) Repository
}
