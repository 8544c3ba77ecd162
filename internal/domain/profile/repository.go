package profile

import (
	"context"

	"github.com/google/uuid"
	"github.com/investbuddy/circles-api/internal/domain/shared"
	"github.com/jackc/pgx/v5"
)

// Repository defines profile persistence operations
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Profile, error)
	List(ctx context.Context, limit int) ([]*Profile, error)

	// First returns an arbitrary existing profile. Used only by the
	// development fallback when no authenticated user is present.
	First(ctx context.Context) (*Profile, error)

	// DebitBalance atomically subtracts amount cents from the named balance,
	// guarded so the balance can never go negative. Returns
	// ErrInsufficientFunds when the guard rejects the debit.
	DebitBalance(ctx context.Context, id uuid.UUID, account shared.AccountKind, amount int64) error

	WithTx(tx pgx.Tx) Repository
}

// ErrProfileNotFound indicates a missing profile
type ErrProfileNotFound struct {
	ProfileID uuid.UUID
}

func (e ErrProfileNotFound) Error() string {
	return "profile not found: " + e.ProfileID.String()
}

// Is implements errors.Is matching; a target with a nil ID matches any
// ErrProfileNotFound.
func (e ErrProfileNotFound) Is(target error) bool {
	t, ok := target.(ErrProfileNotFound)
	if !ok {
		return false
	}
	if t.ProfileID == uuid.Nil {
		return true
	}
	return e.ProfileID == t.ProfileID
}

// ErrInsufficientFunds indicates the requested debit exceeds the available
// balance for the chosen account. The available balance is surfaced so the
// caller can include it in the rejection message.
type ErrInsufficientFunds struct {
	Account   shared.AccountKind
	Available int64 // cents
}

func (e ErrInsufficientFunds) Error() string {
	return "insufficient funds in " + string(e.Account) + ". Available: " + shared.FormatCents(e.Available)
}

// Is implements errors.Is matching on the error type regardless of the
// account or balance carried.
func (e ErrInsufficientFunds) Is(target error) bool {
	_, ok := target.(ErrInsufficientFunds)
	return ok
}
