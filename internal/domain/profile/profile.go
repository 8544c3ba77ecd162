package profile

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/investbuddy/circles-api/internal/domain/shared"
)

// Common errors
var (
	ErrInvalidAmount  = errors.New("amount must be positive")
	ErrInvalidAccount = errors.New("source account must be chequing or savings")
)

// Profile represents a user of the platform together with their internal
// chequing/savings balances. Balances are stored in cents/minor units and
// must never go negative.
type Profile struct {
	ID              uuid.UUID `json:"id"`
	Username        string    `json:"username"`
	FullName        string    `json:"full_name"`
	Email           string    `json:"email"`
	FriendCode      string    `json:"friend_code,omitempty"`
	BalanceChequing int64     `json:"balance_chequing"` // Stored in cents/minor units
	BalanceSavings  int64     `json:"balance_savings"`  // Stored in cents/minor units
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Balance returns the balance for the named account.
func (p *Profile) Balance(kind shared.AccountKind) int64 {
	if kind == shared.AccountSavings {
		return p.BalanceSavings
	}
	return p.BalanceChequing
}

// CanDebit checks whether the named account holds at least amount cents.
func (p *Profile) CanDebit(kind shared.AccountKind, amount int64) bool {
	return p.Balance(kind) >= amount
}
