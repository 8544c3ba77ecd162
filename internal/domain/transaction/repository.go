package transaction

import (
	"context"

	"github.com/google/uuid"
)

// Repository manages audit record persistence. Implementations live outside
// the transactional store; callers treat every write as best-effort.
type Repository interface {
	Create(ctx context.Context, record *Record) error
	GetByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Record, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
}
