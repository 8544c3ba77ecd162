package circle

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Repository defines circle persistence operations
type Repository interface {
	Create(ctx context.Context, c *Circle) error
	GetByID(ctx context.Context, id uuid.UUID) (*Circle, error)
	AddMembers(ctx context.Context, members []*Member) error
	WithTx(tx pgx.Tx) Repository
}

// ErrCircleNotFound indicates a missing circle
type ErrCircleNotFound struct {
	CircleID uuid.UUID
}

func (e ErrCircleNotFound) Error() string {
	return "circle not found: " + e.CircleID.String()
}
